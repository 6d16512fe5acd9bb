package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Jefersonlopezr/foodierank/internal/api"
	"github.com/Jefersonlopezr/foodierank/internal/logger"
)

// Surface обозначает экран клиента, на который выполняется переход
type Surface string

const (
	SurfaceLogin Surface = "login"
	SurfaceHome  Surface = "home"
)

// Navigator выполняет переходы между экранами клиента
type Navigator interface {
	NavigateTo(surface Surface)
}

// Level - уровень пользовательского уведомления
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier показывает уведомления пользователю
type Notifier interface {
	Notify(level Level, message string)
}

// authAPI - часть каталога эндпоинтов, нужная менеджеру сессии
type authAPI interface {
	Login(ctx context.Context, creds api.Credentials) (*api.AuthData, error)
	Register(ctx context.Context, data api.RegisterData) (*api.AuthData, error)
	Profile(ctx context.Context) (*api.User, error)
	UpdateProfile(ctx context.Context, data api.ProfileUpdate) (*api.User, error)
}

// Manager владеет жизненным циклом сессии:
// Anonymous -> Authenticated при входе или регистрации,
// Authenticated -> Anonymous при выходе, обнаружении истекшего срока
// или сигнале сервера об истекшем токене. Промежуточных состояний нет
type Manager struct {
	store    Store
	auth     authAPI
	nav      Navigator
	notifier Notifier
	ttl      time.Duration
	now      func() time.Time
	log      logger.Logger
}

// NewManager создает менеджер сессии поверх хранилища
func NewManager(store Store, nav Navigator, notifier Notifier, ttl time.Duration, log logger.Logger) *Manager {
	return &Manager{
		store:    store,
		nav:      nav,
		notifier: notifier,
		ttl:      ttl,
		now:      time.Now,
		log:      log,
	}
}

// BindAuthAPI связывает менеджер с каталогом эндпоинтов.
// Менеджер и API клиент ссылаются друг на друга, поэтому привязка
// выполняется после создания обоих
func (m *Manager) BindAuthAPI(a authAPI) {
	m.auth = a
}

// GetToken возвращает сохраненный токен как есть, без проверок
func (m *Manager) GetToken(ctx context.Context) (string, bool) {
	token, err := m.store.Get(ctx, KeyToken)
	if err != nil {
		return "", false
	}
	return token, true
}

// GetUser возвращает сохраненного пользователя.
// Поврежденные данные трактуются как отсутствие пользователя,
// чтобы битая запись не валила клиент
func (m *Manager) GetUser(ctx context.Context) *api.User {
	raw, err := m.store.Get(ctx, KeyUser)
	if err != nil {
		return nil
	}

	var user api.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		m.log.Warn("Stored user record is malformed, treating as absent", "error", err)
		return nil
	}
	return &user
}

// IsAuthenticated проверяет наличие токена и срок его действия.
// Обнаружив истекший срок, уничтожает сессию целиком - это
// единственный механизм принудительного истечения, фоновых таймеров нет
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	if _, ok := m.GetToken(ctx); !ok {
		return false
	}

	raw, err := m.store.Get(ctx, KeyExpiry)
	if err != nil {
		return true
	}

	expiry, err := strconv.ParseInt(raw, 10, 64)
	if err == nil && m.now().UnixMilli() > expiry {
		m.log.Info("Stored token expired, destroying session")
		m.teardown(ctx)
		return false
	}

	return true
}

// IsAdmin сообщает, аутентифицирован ли пользователь с ролью администратора
func (m *Manager) IsAdmin(ctx context.Context) bool {
	if !m.IsAuthenticated(ctx) {
		return false
	}
	user := m.GetUser(ctx)
	return user != nil && user.Role == api.RoleAdmin
}

// StoreSession сохраняет токен и пользователя, вычисляя срок действия
// как now + TTL. Клиент не декодирует содержимое самого токена
func (m *Manager) StoreSession(ctx context.Context, token string, user api.User) error {
	userData, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	expiry := m.now().Add(m.ttl).UnixMilli()
	values := map[string]string{
		KeyToken:  token,
		KeyUser:   string(userData),
		KeyExpiry: strconv.FormatInt(expiry, 10),
	}

	if err := m.store.SetAll(ctx, values); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Login выполняет вход и сохраняет полученную сессию.
// Ошибка сервера отдается вызывающей стороне без изменений
func (m *Manager) Login(ctx context.Context, creds api.Credentials) (*api.AuthData, error) {
	data, err := m.auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	if err := m.StoreSession(ctx, data.Token, data.User); err != nil {
		return nil, err
	}

	m.log.Info("User logged in", "username", data.User.Username)
	return data, nil
}

// Register регистрирует пользователя и сохраняет полученную сессию
func (m *Manager) Register(ctx context.Context, input api.RegisterData) (*api.AuthData, error) {
	data, err := m.auth.Register(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := m.StoreSession(ctx, data.Token, data.User); err != nil {
		return nil, err
	}

	m.log.Info("User registered", "username", data.User.Username)
	return data, nil
}

// Logout безусловно очищает все три ключа и возвращает на экран входа.
// Идемпотентен: безопасен при отсутствии сессии
func (m *Manager) Logout(ctx context.Context) {
	m.teardown(ctx)
	m.nav.NavigateTo(SurfaceLogin)
}

// RefreshProfile запрашивает профиль с сервера и обновляет только
// сохраненного пользователя, не трогая токен и срок действия
func (m *Manager) RefreshProfile(ctx context.Context) (*api.User, error) {
	user, err := m.auth.Profile(ctx)
	if err != nil {
		return nil, err
	}

	if err := m.storeUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile отправляет изменения профиля и обновляет
// сохраненного пользователя
func (m *Manager) UpdateProfile(ctx context.Context, data api.ProfileUpdate) (*api.User, error) {
	user, err := m.auth.UpdateProfile(ctx, data)
	if err != nil {
		return nil, err
	}

	if err := m.storeUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// RequireAuthenticated - guard в начале защищенных сценариев
func (m *Manager) RequireAuthenticated(ctx context.Context) bool {
	if !m.IsAuthenticated(ctx) {
		m.nav.NavigateTo(SurfaceLogin)
		return false
	}
	return true
}

// RequireAdmin дополнительно требует права администратора.
// Без прав показывается уведомление и выполняется переход на главный экран
func (m *Manager) RequireAdmin(ctx context.Context) bool {
	if !m.RequireAuthenticated(ctx) {
		return false
	}

	if !m.IsAdmin(ctx) {
		if m.notifier != nil {
			m.notifier.Notify(LevelError, "Admin privileges required")
		}
		m.nav.NavigateTo(SurfaceHome)
		return false
	}
	return true
}

// Token реализует api.SessionHooks: пайплайн читает токен через менеджер
func (m *Manager) Token(ctx context.Context) (string, bool) {
	return m.GetToken(ctx)
}

// HandleExpired реализует api.SessionHooks: принудительный выход
// по сигналу сервера об истекшем токене
func (m *Manager) HandleExpired(ctx context.Context) {
	m.teardown(ctx)
	if m.notifier != nil {
		m.notifier.Notify(LevelWarning, "Session expired, please log in again")
	}
	m.nav.NavigateTo(SurfaceLogin)
}

// teardown очищает все три ключа сессии
func (m *Manager) teardown(ctx context.Context) {
	if err := m.store.Delete(ctx, KeyToken, KeyUser, KeyExpiry); err != nil {
		m.log.Error("Failed to clear session store", "error", err)
	}
}

// storeUser перезаписывает только сохраненного пользователя
func (m *Manager) storeUser(ctx context.Context, user api.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := m.store.SetAll(ctx, map[string]string{KeyUser: string(raw)}); err != nil {
		return fmt.Errorf("failed to persist user record: %w", err)
	}
	return nil
}
