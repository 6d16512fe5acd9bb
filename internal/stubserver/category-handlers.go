package stubserver

import (
	"net/http"
	"strings"

	"github.com/Jefersonlopezr/foodierank/internal/api"
)

// handleCategories возвращает список категорий кухни
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	categories := make([]api.Category, len(s.categories))
	copy(categories, s.categories)
	s.mu.Unlock()

	s.writeData(w, http.StatusOK, map[string]any{"categories": categories})
}

// handleCreateCategory добавляет категорию кухни
func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req api.CategoryInput
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "category name is required")
		return
	}

	s.mu.Lock()
	for _, existing := range s.categories {
		if strings.EqualFold(existing.Name, req.Name) {
			s.mu.Unlock()
			s.writeError(w, http.StatusConflict, codeConflict, "category already exists")
			return
		}
	}

	category := api.Category{
		ID:          newID(),
		Name:        req.Name,
		Description: req.Description,
	}
	s.categories = append(s.categories, category)
	s.mu.Unlock()

	s.log.Info("Category created", "name", category.Name)
	s.writeData(w, http.StatusCreated, map[string]any{"category": category})
}
