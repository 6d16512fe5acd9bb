package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Константы для ключей конфигурации
const (
	envKey            = "service_params.env"
	apiBaseURLKey     = "api_params.base_url"
	apiTimeoutKey     = "api_params.timeout_seconds"
	apiRetryKey       = "api_params.retry_attempts"
	pageLimitKey      = "pagination_params.default_limit"
	pageMaxLimitKey   = "pagination_params.max_limit"
	searchDebounceKey = "ui_params.search_debounce_ms"
	sessionTTLKey     = "session_params.ttl_hours"
	sessionBackendKey = "session_params.backend"
	sessionPathKey    = "session_params.file_path"
	sessionRedisKey   = "session_params.redis_url"
)

// Адреса API по умолчанию: локальная заглушка для разработки
// и размещенный бекенд для продакшена
const (
	localAPIURL  = "http://localhost:3000/api/v1"
	hostedAPIURL = "https://backend-foodierank.onrender.com/api/v1"
)

// AppConfig представляет конфигурацию всего приложения
type AppConfig struct {
	Service    ServiceParams    `mapstructure:"service_params" validate:"required"`
	API        APIParams        `mapstructure:"api_params" validate:"required"`
	Pagination PaginationParams `mapstructure:"pagination_params" validate:"required"`
	UI         UIParams         `mapstructure:"ui_params" validate:"required"`
	Session    SessionParams    `mapstructure:"session_params" validate:"required"`
}

// ServiceParams содержит общие параметры приложения
type ServiceParams struct {
	Env string `mapstructure:"env" validate:"required,oneof=dev prod test"`
}

// APIParams описывает подключение к удаленному API
type APIParams struct {
	BaseURL        string `mapstructure:"base_url" validate:"omitempty,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,min=1,max=120"`
	RetryAttempts  int    `mapstructure:"retry_attempts" validate:"min=0,max=10"`
}

// PaginationParams задает размеры страниц списочных выборок
type PaginationParams struct {
	DefaultLimit int `mapstructure:"default_limit" validate:"required,min=1,max=50"`
	MaxLimit     int `mapstructure:"max_limit" validate:"required,min=1,max=100"`
}

// UIParams содержит настройки поведения интерфейса
type UIParams struct {
	SearchDebounceMs int `mapstructure:"search_debounce_ms" validate:"required,min=50,max=5000"`
}

// SessionParams описывает постоянное хранилище сессии
type SessionParams struct {
	TTLHours int    `mapstructure:"ttl_hours" validate:"required,min=1,max=720"`
	Backend  string `mapstructure:"backend" validate:"required,oneof=file redis memory"`
	FilePath string `mapstructure:"file_path"`
	RedisURL string `mapstructure:"redis_url"`
}

// ResolveBaseURL возвращает адрес API: явно заданный в конфигурации,
// иначе выбранный по окружению
func (c *AppConfig) ResolveBaseURL() string {
	if c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	if c.Service.Env == "prod" {
		return hostedAPIURL
	}
	return localAPIURL
}

// RequestTimeout возвращает таймаут запроса в виде Duration
func (a *APIParams) RequestTimeout() time.Duration {
	return time.Second * time.Duration(a.TimeoutSeconds)
}

// SessionTTL возвращает время жизни сессии в виде Duration
func (s *SessionParams) SessionTTL() time.Duration {
	return time.Hour * time.Duration(s.TTLHours)
}

// StorePath возвращает путь к файлу сессии; по умолчанию файл лежит
// в пользовательской директории конфигурации
func (s *SessionParams) StorePath() (string, error) {
	if s.FilePath != "" {
		return s.FilePath, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}

	return filepath.Join(dir, "foodierank", "session.json"), nil
}

// SearchDebounce возвращает задержку поискового ввода в виде Duration
func (u *UIParams) SearchDebounce() time.Duration {
	return time.Millisecond * time.Duration(u.SearchDebounceMs)
}

// envBindings возвращает мапу ключей конфигурации и соответствующих им переменных окружения
func envBindings() map[string]string {
	return map[string]string{
		envKey:            "FOODIERANK_ENV",
		apiBaseURLKey:     "FOODIERANK_API_URL",
		apiTimeoutKey:     "FOODIERANK_API_TIMEOUT",
		apiRetryKey:       "FOODIERANK_API_RETRIES",
		pageLimitKey:      "FOODIERANK_PAGE_LIMIT",
		pageMaxLimitKey:   "FOODIERANK_PAGE_MAX_LIMIT",
		searchDebounceKey: "FOODIERANK_SEARCH_DEBOUNCE_MS",
		sessionTTLKey:     "FOODIERANK_SESSION_TTL_HOURS",
		sessionBackendKey: "FOODIERANK_SESSION_BACKEND",
		sessionPathKey:    "FOODIERANK_SESSION_FILE",
		sessionRedisKey:   "FOODIERANK_REDIS_URL",
	}
}

// defaults возвращает значения конфигурации по умолчанию;
// клиент должен работать и без конфигурационного файла
func defaults() map[string]any {
	return map[string]any{
		envKey:            "dev",
		apiBaseURLKey:     "",
		apiTimeoutKey:     30,
		apiRetryKey:       3,
		pageLimitKey:      10,
		pageMaxLimitKey:   50,
		searchDebounceKey: 300,
		sessionTTLKey:     24,
		sessionBackendKey: "file",
		sessionPathKey:    "",
		sessionRedisKey:   "",
	}
}

// New загружает конфигурацию из файла и переменных окружения
func New() (*AppConfig, error) {
	v := viper.New()

	// Получаем рабочую директорию
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	v.AddConfigPath(filepath.Join(cwd, "internal", "config"))
	v.AddConfigPath(cwd)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	// Привязка переменных окружения
	for configKey, envVar := range envBindings() {
		if err := v.BindEnv(configKey, envVar); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", envVar, err)
		}
	}

	// Чтение конфигурации; отсутствие файла не ошибка, есть значения по умолчанию
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}
	}

	var config AppConfig

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	// Валидация конфигурации
	validate := validator.New()

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
