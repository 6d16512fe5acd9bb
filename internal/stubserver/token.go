package stubserver

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Jefersonlopezr/foodierank/internal/api"
)

// userClaims - полезная нагрузка токена заглушки
type userClaims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// createToken выписывает подписанный HS256 токен для пользователя
func (s *Server) createToken(user api.User, ttl time.Duration) (string, error) {
	claims := &userClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return signed, nil
}

// verifyToken проверяет подпись и срок действия токена
func (s *Server) verifyToken(raw string) (*userClaims, error) {
	claims := &userClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// TokenFor выписывает токен для существующего пользователя по email.
// Отрицательный ttl дает уже истекший токен; используется в тестах
// сценария принудительного выхода
func (s *Server) TokenFor(email string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	record := s.userByEmailLocked(email)
	s.mu.Unlock()

	if record == nil {
		return "", fmt.Errorf("user not found with email: %s", email)
	}
	return s.createToken(record.user, ttl)
}

// newID генерирует идентификатор сущности
func newID() string {
	return uuid.NewString()
}
