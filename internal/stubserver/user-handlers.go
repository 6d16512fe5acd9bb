package stubserver

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/Jefersonlopezr/foodierank/internal/api"
)

// handleUsers возвращает всех пользователей (только администратор)
func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := make([]api.User, 0, len(s.users))
	for _, record := range s.users {
		users = append(users, record.user)
	}
	s.mu.Unlock()

	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})
	s.writeData(w, http.StatusOK, map[string]any{"users": users})
}

// handleUser возвращает пользователя по идентификатору
func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")

	s.mu.Lock()
	record, ok := s.users[id]
	s.mu.Unlock()

	if !ok {
		s.writeError(w, http.StatusNotFound, codeNotFound, "user not found")
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"user": record.user})
}

// handleUpdateUser изменяет пользователя, включая его роль
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")

	var req api.UserUpdate
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}
	if req.Role != "" && req.Role != api.RoleUser && req.Role != api.RoleAdmin {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "unknown role")
		return
	}

	s.mu.Lock()
	record, ok := s.users[id]
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
	if req.Role != "" {
		record.user.Role = req.Role
	}
	updated := record.user
	s.mu.Unlock()

	s.log.Info("User updated", "username", updated.Username, "role", updated.Role)
	s.writeData(w, http.StatusOK, map[string]any{"user": updated})
}

// handleDeleteUser удаляет пользователя
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	admin, _ := requestUser(r)
	id := chi.URLParam(r, "userID")

	if admin.ID == id {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "cannot delete your own account")
		return
	}

	s.mu.Lock()
	if _, ok := s.users[id]; !ok {
		s.mu.Unlock()
		s.writeError(w, http.StatusNotFound, codeNotFound, "user not found")
		return
	}
	delete(s.users, id)
	s.mu.Unlock()

	s.writeData(w, http.StatusOK, map[string]any{})
}
