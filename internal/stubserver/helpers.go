package stubserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Jefersonlopezr/foodierank/internal/api"
	"github.com/Jefersonlopezr/foodierank/pkg/health"
)

// Коды ошибок, которые знает клиент
const (
	codeUnauthorized = "UNAUTHORIZED"
	codeForbidden    = "FORBIDDEN"
	codeNotFound     = "NOT_FOUND"
	codeBadRequest   = "VALIDATION_ERROR"
	codeConflict     = "CONFLICT"
	codeInternal     = "INTERNAL_ERROR"
)

// Структура для передачи пользователя в контекст запроса
type authContextKey struct{}

// requestUser возвращает пользователя, установленного authMiddleware
func requestUser(r *http.Request) (api.User, bool) {
	user, ok := r.Context().Value(authContextKey{}).(api.User)
	return user, ok
}

func withUser(ctx context.Context, user api.User) context.Context {
	return context.WithValue(ctx, authContextKey{}, user)
}

// writeData отправляет успешный конверт с указанным статусом
func (s *Server) writeData(w http.ResponseWriter, statusCode int, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		s.log.Error("Failed to marshal response data", "error", err)
		s.writeError(w, http.StatusInternalServerError, codeInternal, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(api.Envelope{Success: true, Data: raw})
}

// writeError отправляет конверт с ошибкой
func (s *Server) writeError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(api.Envelope{
		Success: false,
		Error:   &api.ErrorBody{Code: code, Message: message},
	})
}

// decodeBody разбирает JSON-тело запроса
func decodeBody(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}

// stateChecker отчитывается о размере состояния заглушки
func (s *Server) stateChecker() health.Checker {
	return health.CheckerFunc(func(ctx context.Context) health.CheckResult {
		s.mu.Lock()
		defer s.mu.Unlock()

		return health.CheckResult{
			Status: health.StatusUp,
			Details: map[string]any{
				"users":       len(s.users),
				"restaurants": len(s.restaurants),
				"reviews":     len(s.reviews),
			},
		}
	})
}

func (s *Server) userByEmailLocked(email string) *userRecord {
	for _, record := range s.users {
		if record.user.Email == email {
			return record
		}
	}
	return nil
}
