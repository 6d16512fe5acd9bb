package stubserver

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Jefersonlopezr/foodierank/internal/api"
)

// handleRegister обрабатывает регистрацию нового пользователя
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterData
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if len(req.Username) < 3 {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "username must be at least 3 characters")
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < 8 {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, codeInternal, "failed to hash password")
		return
	}

	s.mu.Lock()
	if s.userByEmailLocked(req.Email) != nil {
		s.mu.Unlock()
		s.writeError(w, http.StatusConflict, codeConflict, "email is already registered")
		return
	}

	record := &userRecord{
		user: api.User{
			ID:       newID(),
			Username: req.Username,
			Email:    req.Email,
			Role:     api.RoleUser,
		},
		passwordHash: hash,
	}
	s.users[record.user.ID] = record
	s.mu.Unlock()

	token, err := s.createToken(record.user, s.tokenTTL)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, codeInternal, "failed to create token")
		return
	}

	s.log.Info("User registered", "username", record.user.Username)
	s.writeData(w, http.StatusCreated, api.AuthData{Token: token, User: record.user})
}

// handleLogin обрабатывает вход пользователя
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.Credentials
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	record := s.userByEmailLocked(strings.TrimSpace(req.Email))
	s.mu.Unlock()

	if record == nil || bcrypt.CompareHashAndPassword(record.passwordHash, []byte(req.Password)) != nil {
		s.writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid credentials")
		return
	}

	token, err := s.createToken(record.user, s.tokenTTL)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, codeInternal, "failed to create token")
		return
	}

	s.log.Info("User logged in", "username", record.user.Username)
	s.writeData(w, http.StatusOK, api.AuthData{Token: token, User: record.user})
}

// handleProfile возвращает профиль текущего пользователя
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := requestUser(r)
	s.writeData(w, http.StatusOK, map[string]any{"user": user})
}

// handleUpdateProfile изменяет профиль текущего пользователя
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := requestUser(r)

	var req api.ProfileUpdate
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	record, ok := s.users[user.ID]
	if !ok {
		s.mu.Unlock()
		s.writeError(w, http.StatusNotFound, codeNotFound, "user not found")
		return
	}
	if req.Username != "" {
		record.user.Username = req.Username
	}
	if req.Email != "" {
		record.user.Email = req.Email
	}
	updated := record.user
	s.mu.Unlock()

	s.writeData(w, http.StatusOK, map[string]any{"user": updated})
}

// handleLogout подтверждает выход; заглушка не ведет черный список токенов
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, http.StatusOK, map[string]any{})
}
