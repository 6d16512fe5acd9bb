package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
)

// APIChecker проверяет доступность удаленного API по базовому адресу
func APIChecker(baseURL string) Checker {
	return CheckerFunc(func(ctx context.Context) CheckResult {
		start := time.Now()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return CheckResult{Status: StatusDown, Error: err.Error()}
		}

		resp, err := http.DefaultClient.Do(req)
		duration := time.Since(start)

		if err != nil {
			return CheckResult{
				Status: StatusDown,
				Error:  err.Error(),
				Details: map[string]any{
					"duration_ms": duration.Milliseconds(),
				},
			}
		}
		resp.Body.Close()

		return CheckResult{
			Status: StatusUp,
			Details: map[string]any{
				"duration_ms": duration.Milliseconds(),
				"http_status": resp.StatusCode,
			},
		}
	})
}

// RedisChecker проверяет соединение с Redis-хранилищем сессии
func RedisChecker(client *redis.Client) Checker {
	return CheckerFunc(func(ctx context.Context) CheckResult {
		start := time.Now()

		// Пингуем Redis
		_, err := client.Ping(ctx).Result()
		duration := time.Since(start)

		if err != nil {
			return CheckResult{
				Status: StatusDown,
				Error:  err.Error(),
				Details: map[string]any{
					"duration_ms": duration.Milliseconds(),
				},
			}
		}

		return CheckResult{
			Status: StatusUp,
			Details: map[string]any{
				"duration_ms": duration.Milliseconds(),
			},
		}
	})
}
