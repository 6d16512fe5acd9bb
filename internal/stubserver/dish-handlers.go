package stubserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Jefersonlopezr/foodierank/internal/api"
)

// handleDishes возвращает меню ресторана
func (s *Server) handleDishes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "restaurantID")

	s.mu.Lock()
	record, ok := s.restaurants[id]
	if !ok {
		s.mu.Unlock()
		s.writeError(w, http.StatusNotFound, codeNotFound, "restaurant not found")
		return
	}
	dishes := make([]api.Dish, len(record.dishes))
	copy(dishes, record.dishes)
	s.mu.Unlock()

	s.writeData(w, http.StatusOK, map[string]any{"dishes": dishes})
}

// handleCreateDish добавляет блюдо в меню; доступно владельцу и администратору
func (s *Server) handleCreateDish(w http.ResponseWriter, r *http.Request) {
	user, _ := requestUser(r)
	id := chi.URLParam(r, "restaurantID")

	var req api.DishInput
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "dish name is required")
		return
	}
	if req.Price < 0 {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "price must not be negative")
		return
	}

	s.mu.Lock()
	record, ok := s.restaurants[id]
	if !ok {
		s.mu.Unlock()
		s.writeError(w, http.StatusNotFound, codeNotFound, "restaurant not found")
		return
	}
	if record.restaurant.OwnerID != user.ID && user.Role != api.RoleAdmin {
		s.mu.Unlock()
		s.writeError(w, http.StatusForbidden, codeForbidden, "not allowed to modify this menu")
		return
	}

	dish := api.Dish{
		ID:          newID(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}
	record.dishes = append(record.dishes, dish)
	s.mu.Unlock()

	s.writeData(w, http.StatusCreated, map[string]any{"dish": dish})
}

// handleUpdateDish изменяет блюдо; доступно владельцу и администратору
func (s *Server) handleUpdateDish(w http.ResponseWriter, r *http.Request) {
	user, _ := requestUser(r)
	restaurantID := chi.URLParam(r, "restaurantID")
	dishID := chi.URLParam(r, "dishID")

	var req api.DishInput
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	record, ok := s.restaurants[restaurantID]
	if !ok {
		s.mu.Unlock()
		s.writeError(w, http.StatusNotFound, codeNotFound, "restaurant not found")
		return
	}
	if record.restaurant.OwnerID != user.ID && user.Role != api.RoleAdmin {
		s.mu.Unlock()
		s.writeError(w, http.StatusForbidden, codeForbidden, "not allowed to modify this menu")
		return
	}

	for i := range record.dishes {
		if record.dishes[i].ID != dishID {
			continue
		}
		if req.Name != "" {
			record.dishes[i].Name = req.Name
		}
		if req.Description != "" {
			record.dishes[i].Description = req.Description
		}
		if req.Price > 0 {
			record.dishes[i].Price = req.Price
		}
		if req.ImageURL != "" {
			record.dishes[i].ImageURL = req.ImageURL
		}
		updated := record.dishes[i]
		s.mu.Unlock()
		s.writeData(w, http.StatusOK, map[string]any{"dish": updated})
		return
	}
	s.mu.Unlock()

	s.writeError(w, http.StatusNotFound, codeNotFound, "dish not found")
}

// handleDeleteDish удаляет блюдо из меню
func (s *Server) handleDeleteDish(w http.ResponseWriter, r *http.Request) {
	user, _ := requestUser(r)
	restaurantID := chi.URLParam(r, "restaurantID")
	dishID := chi.URLParam(r, "dishID")

	s.mu.Lock()
	record, ok := s.restaurants[restaurantID]
	if !ok {
		s.mu.Unlock()
		s.writeError(w, http.StatusNotFound, codeNotFound, "restaurant not found")
		return
	}
	if record.restaurant.OwnerID != user.ID && user.Role != api.RoleAdmin {
		s.mu.Unlock()
		s.writeError(w, http.StatusForbidden, codeForbidden, "not allowed to modify this menu")
		return
	}

	for i := range record.dishes {
		if record.dishes[i].ID == dishID {
			record.dishes = append(record.dishes[:i], record.dishes[i+1:]...)
			s.mu.Unlock()
			s.writeData(w, http.StatusOK, map[string]any{})
			return
		}
	}
	s.mu.Unlock()

	s.writeError(w, http.StatusNotFound, codeNotFound, "dish not found")
}
