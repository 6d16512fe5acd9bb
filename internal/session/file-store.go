package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore хранит сессию в JSON-файле в пользовательской директории.
// Файл переживает перезапуски клиента и играет роль браузерного
// localStorage из веб-версии
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore создает файловое хранилище по указанному пути
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", err
	}

	value, ok := values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (s *FileStore) SetAll(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return err
	}

	for key, value := range values {
		current[key] = value
	}
	return s.flush(current)
}

func (s *FileStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return err
	}

	for _, key := range keys {
		delete(current, key)
	}
	return s.flush(current)
}

func (s *FileStore) Close() error {
	return nil
}

// load читает файл целиком. Поврежденное содержимое равносильно
// отсутствию сессии, а не ошибке
func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return map[string]string{}, nil
	}
	return values, nil
}

// flush записывает файл атомарно через временный файл и переименование
func (s *FileStore) flush(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session values: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}
