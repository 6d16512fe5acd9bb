package session

import (
	"context"
	"sync"
)

// MemStore хранит сессию в памяти процесса. Используется в тестах
// и как backend "memory" для одноразовых запусков без следов на диске
type MemStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemStore создает пустое хранилище в памяти
func NewMemStore() *MemStore {
	return &MemStore{values: map[string]string{}}
}

func (s *MemStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (s *MemStore) SetAll(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range values {
		s.values[key] = value
	}
	return nil
}

func (s *MemStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *MemStore) Close() error {
	return nil
}

// Len возвращает число сохраненных ключей
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}
