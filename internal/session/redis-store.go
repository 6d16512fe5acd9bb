package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "foodierank:session:"

// RedisStore хранит сессию в Redis под общим префиксом.
// TTL ключей совпадает со сроком жизни сессии, так что Redis
// сам вычищает просроченные данные
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore создает новое хранилище Redis
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Проверка соединения с Redis
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		ttl:    ttl,
	}, nil
}

// Client возвращает клиент Redis для проверок здоровья
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if err == redis.Nil {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session key from Redis: %w", err)
	}
	return value, nil
}

// SetAll записывает ключи одной транзакцией, чтобы сессия
// не была видна частично записанной
func (s *RedisStore) SetAll(ctx context.Context, values map[string]string) error {
	pipe := s.client.TxPipeline()
	for key, value := range values {
		pipe.Set(ctx, redisKeyPrefix+key, value, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session to Redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, redisKeyPrefix+key)
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete session keys from Redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
