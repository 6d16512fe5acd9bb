package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Jefersonlopezr/foodierank/internal/logger"
)

// ErrCodeTokenExpired - код ошибки сервера для истекшего токена
const ErrCodeTokenExpired = "TOKEN_EXPIRED"

// defaultFailureMessage показывается, когда сервер не прислал сообщение об ошибке
const defaultFailureMessage = "request failed"

// SessionHooks - то, что пайплайну нужно от менеджера сессии:
// чтение токена и реакция на истекший токен
type SessionHooks interface {
	Token(ctx context.Context) (string, bool)
	HandleExpired(ctx context.Context)
}

// Client - единая точка всех сетевых вызовов к API.
// Каждый запрос проходит через execute: состав адреса, учетные данные,
// разбор конверта и классификация ошибок
type Client struct {
	baseURL       string
	httpClient    *http.Client
	session       SessionHooks
	retryAttempts int
	log           logger.Logger
}

// NewClient создает API клиент. retryAttempts - сконфигурированная
// константа для вызывающей стороны; сам пайплайн запросы не повторяет
func NewClient(baseURL string, timeout time.Duration, retryAttempts int, log logger.Logger) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: timeout},
		retryAttempts: retryAttempts,
		log:           log,
	}
}

// BindSession связывает пайплайн с менеджером сессии.
// Без привязки запросы уходят неаутентифицированными
func (c *Client) BindSession(s SessionHooks) {
	c.session = s
}

// RetryAttempts возвращает сконфигурированное число повторов
func (c *Client) RetryAttempts() int {
	return c.retryAttempts
}

// execute выполняет один вызов API. Отмена и таймаут управляются
// переданным контекстом - это единственная точка ожидания пайплайна
func (c *Client) execute(ctx context.Context, method, path string, body any, query url.Values) (*Envelope, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	// Токен прикладывается только при его наличии
	if c.session != nil {
		if token, ok := c.session.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.log.Debug("API request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	var envelope Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		if ok {
			return nil, &NetworkError{Err: fmt.Errorf("failed to decode response: %w", err)}
		}
		envelope = Envelope{}
	}

	// Истекший токен обрабатывается до общей проверки ошибок:
	// принудительный выход и переход на экран входа
	if resp.StatusCode == http.StatusUnauthorized && envelope.Error != nil && envelope.Error.Code == ErrCodeTokenExpired {
		c.log.Warn("Server signaled expired token", "path", path)
		if c.session != nil {
			c.session.HandleExpired(ctx)
		}
		return nil, &ExpiredSessionError{}
	}

	if !ok || !envelope.Success {
		failure := &RequestFailedError{Status: resp.StatusCode, Message: defaultFailureMessage}
		if envelope.Error != nil {
			failure.Code = envelope.Error.Code
			if envelope.Error.Message != "" {
				failure.Message = envelope.Error.Message
			}
		}
		return nil, failure
	}

	return &envelope, nil
}

// decodeData разбирает поле data конверта в типизированную структуру
func decodeData(env *Envelope, out any) error {
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	env, err := c.execute(ctx, http.MethodGet, path, nil, query)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	env, err := c.execute(ctx, http.MethodPost, path, body, nil)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	env, err := c.execute(ctx, http.MethodPut, path, body, nil)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	env, err := c.execute(ctx, http.MethodPatch, path, body, nil)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.execute(ctx, http.MethodDelete, path, nil, nil)
	return err
}
