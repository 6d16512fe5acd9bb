package api

import (
	"errors"
	"fmt"
)

// NetworkError означает, что ответ от сервера не был получен.
// Вызывающая сторона может повторить запрос сама; пайплайн
// никогда не повторяет запросы автоматически
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RequestFailedError означает, что сервер вернул конверт с ошибкой.
// Message показывается пользователю как есть
type RequestFailedError struct {
	Status  int
	Code    string
	Message string
}

func (e *RequestFailedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// ExpiredSessionError означает, что сервер сообщил об истечении токена.
// К моменту получения этой ошибки сессия уже уничтожена пайплайном
type ExpiredSessionError struct{}

func (e *ExpiredSessionError) Error() string {
	return "session expired, please log in again"
}

// IsNetworkError сообщает, является ли ошибка сетевой
func IsNetworkError(err error) bool {
	var target *NetworkError
	return errors.As(err, &target)
}

// IsRequestFailed сообщает, вернул ли сервер конверт с ошибкой
func IsRequestFailed(err error) bool {
	var target *RequestFailedError
	return errors.As(err, &target)
}

// IsExpiredSession сообщает, была ли сессия принудительно завершена
func IsExpiredSession(err error) bool {
	var target *ExpiredSessionError
	return errors.As(err, &target)
}
