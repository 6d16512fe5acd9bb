package stubserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Jefersonlopezr/foodierank/internal/api"
)

// authMiddleware проверяет токен в заголовке Authorization.
// Истекший токен отличается от невалидного: клиент по коду
// TOKEN_EXPIRED выполняет принудительный выход
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.writeError(w, http.StatusUnauthorized, codeUnauthorized, "authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			s.writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid authorization header format")
			return
		}

		claims, err := s.verifyToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				s.writeError(w, http.StatusUnauthorized, api.ErrCodeTokenExpired, "token has expired")
				return
			}
			s.log.Warn("Invalid token", "error", err)
			s.writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid token")
			return
		}

		s.mu.Lock()
		record, ok := s.users[claims.UserID]
		s.mu.Unlock()
		if !ok {
			s.writeError(w, http.StatusUnauthorized, codeUnauthorized, "unknown user")
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), record.user)))
	})
}

// adminMiddleware проверяет, является ли пользователь администратором
func (s *Server) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := requestUser(r)
		if !ok {
			s.writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
			return
		}

		if user.Role != api.RoleAdmin {
			s.log.Warn("Access denied: user is not admin", "email", user.Email)
			s.writeError(w, http.StatusForbidden, codeForbidden, "admin privileges required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
