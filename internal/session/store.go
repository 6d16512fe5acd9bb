package session

import (
	"context"
	"errors"
)

// Ключи постоянного хранилища сессии
const (
	KeyToken  = "token"
	KeyUser   = "user"
	KeyExpiry = "tokenExpiry"
)

// ErrKeyNotFound возвращается при чтении отсутствующего ключа
var ErrKeyNotFound = errors.New("session key not found")

// Store определяет интерфейс постоянного хранилища сессии.
// SetAll записывает все переданные ключи атомарно: читатель никогда
// не увидит токен без соответствующих ему пользователя и срока действия
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	SetAll(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
