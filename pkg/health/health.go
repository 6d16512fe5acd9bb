package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Status - состояние проверяемого компонента
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// CheckResult - результат одной проверки
type CheckResult struct {
	Status  Status         `json:"status"`
	Error   string         `json:"error,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Checker выполняет одну проверку здоровья
type Checker interface {
	Check(ctx context.Context) CheckResult
}

// CheckerFunc - адаптер функции к интерфейсу Checker
type CheckerFunc func(ctx context.Context) CheckResult

func (f CheckerFunc) Check(ctx context.Context) CheckResult {
	return f(ctx)
}

// Report прогоняет все проверки и возвращает общий статус с деталями
func Report(ctx context.Context, checkers map[string]Checker) (Status, map[string]CheckResult) {
	overall := StatusUp
	results := make(map[string]CheckResult, len(checkers))

	for name, checker := range checkers {
		result := checker.Check(ctx)
		if result.Status == StatusDown {
			overall = StatusDown
		}
		results[name] = result
	}

	return overall, results
}

// Handler отдает JSON-отчет по зарегистрированным проверкам
func Handler(checkers map[string]Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		overall, results := Report(ctx, checkers)

		code := http.StatusOK
		if overall == StatusDown {
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]any{
			"status": overall,
			"checks": results,
		})
	}
}
