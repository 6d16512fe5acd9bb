package stubserver

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Jefersonlopezr/foodierank/internal/api"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

// handleRestaurants обрабатывает списочную выборку с фильтрами,
// сортировкой и пагинацией. Блок pagination присутствует в каждом
// ответе, totalPages никогда не меньше единицы
func (s *Server) handleRestaurants(w http.ResponseWriter, r *http.Request) {
	params := api.RestaurantListParamsFromValues(r.URL.Query())

	s.mu.Lock()
	matched := s.filterRestaurantsLocked(params)
	s.mu.Unlock()

	sortRestaurants(matched, params.Sort)

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	total := len(matched)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	s.writeData(w, http.StatusOK, api.RestaurantList{
		Restaurants: matched[start:end],
		Pagination: api.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// filterRestaurantsLocked применяет набор фильтров; вызывается под мьютексом
func (s *Server) filterRestaurantsLocked(params api.RestaurantListParams) []api.Restaurant {
	matched := make([]api.Restaurant, 0, len(s.restaurants))

	search := strings.ToLower(strings.TrimSpace(params.Search))
	city := strings.ToLower(strings.TrimSpace(params.City))

	for _, record := range s.restaurants {
		rest := record.restaurant

		if search != "" &&
			!strings.Contains(strings.ToLower(rest.Name), search) &&
			!strings.Contains(strings.ToLower(rest.Description), search) {
			continue
		}
		if params.Category != "" && rest.CategoryID != params.Category {
			continue
		}
		if city != "" && strings.ToLower(rest.Location.City) != city {
			continue
		}
		if params.Approved != nil && rest.IsApproved != *params.Approved {
			continue
		}

		matched = append(matched, rest)
	}

	return matched
}

func sortRestaurants(items []api.Restaurant, key string) {
	switch key {
	case "name":
		sort.Slice(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	case "reviews":
		sort.Slice(items, func(i, j int) bool {
			return items[i].TotalReviews > items[j].TotalReviews
		})
	default:
		// Сортировка по рейтингу, при равенстве по имени для стабильности
		sort.Slice(items, func(i, j int) bool {
			if items[i].AverageRating != items[j].AverageRating {
				return items[i].AverageRating > items[j].AverageRating
			}
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	}
}

// handleRestaurant возвращает один ресторан по идентификатору
func (s *Server) handleRestaurant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "restaurantID")

	s.mu.Lock()
	record, ok := s.restaurants[id]
	s.mu.Unlock()

	if !ok {
		s.writeError(w, http.StatusNotFound, codeNotFound, "restaurant not found")
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"restaurant": record.restaurant})
}

// handleRanking возвращает лучшие одобренные рестораны по рейтингу
func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	limit := defaultPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	approved := true
	s.mu.Lock()
	matched := s.filterRestaurantsLocked(api.RestaurantListParams{Approved: &approved})
	s.mu.Unlock()

	sortRestaurants(matched, "rating")
	if limit < len(matched) {
		matched = matched[:limit]
	}

	s.writeData(w, http.StatusOK, map[string]any{"restaurants": matched})
}

// handleStats возвращает сводную статистику сервиса
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats := api.Stats{
		TotalRestaurants: len(s.restaurants),
		TotalReviews:     len(s.reviews),
		TotalUsers:       len(s.users),
	}
	var ratingSum float64
	var rated int
	for _, record := range s.restaurants {
		if record.restaurant.TotalReviews > 0 {
			ratingSum += record.restaurant.AverageRating
			rated++
		}
	}
	s.mu.Unlock()

	if rated > 0 {
		stats.AverageRating = ratingSum / float64(rated)
	}
	s.writeData(w, http.StatusOK, map[string]any{"stats": stats})
}

// handleCities возвращает отсортированный список городов без повторов
func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	seen := map[string]bool{}
	cities := []string{}
	for _, record := range s.restaurants {
		city := record.restaurant.Location.City
		if city != "" && !seen[city] {
			seen[city] = true
			cities = append(cities, city)
		}
	}
	s.mu.Unlock()

	sort.Strings(cities)
	s.writeData(w, http.StatusOK, map[string]any{"cities": cities})
}

// handleMyRestaurants возвращает рестораны текущего пользователя
func (s *Server) handleMyRestaurants(w http.ResponseWriter, r *http.Request) {
	user, _ := requestUser(r)

	s.mu.Lock()
	owned := []api.Restaurant{}
	for _, record := range s.restaurants {
		if record.restaurant.OwnerID == user.ID {
			owned = append(owned, record.restaurant)
		}
	}
	s.mu.Unlock()

	sortRestaurants(owned, "name")
	s.writeData(w, http.StatusOK, map[string]any{"restaurants": owned})
}

// handleCreateRestaurant создает ресторан; новые рестораны ждут одобрения
func (s *Server) handleCreateRestaurant(w http.ResponseWriter, r *http.Request) {
	user, _ := requestUser(r)

	var req api.RestaurantInput
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "restaurant name is required")
		return
	}

	s.mu.Lock()
	categoryName := s.categoryNameLocked(req.CategoryID)
	record := &restaurantRecord{
		restaurant: api.Restaurant{
			ID:           newID(),
			Name:         req.Name,
			Description:  req.Description,
			CategoryID:   req.CategoryID,
			CategoryName: categoryName,
			Location:     req.Location,
			ImageURL:     req.ImageURL,
			OwnerID:      user.ID,
		},
	}
	s.restaurants[record.restaurant.ID] = record
	s.mu.Unlock()

	s.log.Info("Restaurant created", "name", record.restaurant.Name, "owner", user.Username)
	s.writeData(w, http.StatusCreated, map[string]any{"restaurant": record.restaurant})
}

// handleUpdateRestaurant изменяет ресторан; доступно владельцу и администратору
func (s *Server) handleUpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	user, _ := requestUser(r)
	id := chi.URLParam(r, "restaurantID")

	var req api.RestaurantInput
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
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
		s.writeError(w, http.StatusForbidden, codeForbidden, "not allowed to modify this restaurant")
		return
	}

	if req.Name != "" {
		record.restaurant.Name = req.Name
	}
	if req.Description != "" {
		record.restaurant.Description = req.Description
	}
	if req.CategoryID != "" {
		record.restaurant.CategoryID = req.CategoryID
		record.restaurant.CategoryName = s.categoryNameLocked(req.CategoryID)
	}
	if req.Location.City != "" || req.Location.Address != "" {
		record.restaurant.Location = req.Location
	}
	if req.ImageURL != "" {
		record.restaurant.ImageURL = req.ImageURL
	}
	updated := record.restaurant
	s.mu.Unlock()

	s.writeData(w, http.StatusOK, map[string]any{"restaurant": updated})
}

// handleApproveRestaurant одобряет ресторан (только администратор)
func (s *Server) handleApproveRestaurant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "restaurantID")

	s.mu.Lock()
	record, ok := s.restaurants[id]
	if !ok {
		s.mu.Unlock()
		s.writeError(w, http.StatusNotFound, codeNotFound, "restaurant not found")
		return
	}
	record.restaurant.IsApproved = true
	updated := record.restaurant
	s.mu.Unlock()

	s.log.Info("Restaurant approved", "name", updated.Name)
	s.writeData(w, http.StatusOK, map[string]any{"restaurant": updated})
}

// handleDeleteRestaurant удаляет ресторан вместе с его отзывами
func (s *Server) handleDeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	user, _ := requestUser(r)
	id := chi.URLParam(r, "restaurantID")

	s.mu.Lock()
	record, ok := s.restaurants[id]
	if !ok {
		s.mu.Unlock()
		s.writeError(w, http.StatusNotFound, codeNotFound, "restaurant not found")
		return
	}
	if record.restaurant.OwnerID != user.ID && user.Role != api.RoleAdmin {
		s.mu.Unlock()
		s.writeError(w, http.StatusForbidden, codeForbidden, "not allowed to delete this restaurant")
		return
	}

	delete(s.restaurants, id)
	for reviewID, review := range s.reviews {
		if review.review.RestaurantID == id {
			delete(s.reviews, reviewID)
		}
	}
	s.mu.Unlock()

	s.writeData(w, http.StatusOK, map[string]any{})
}

func (s *Server) categoryNameLocked(categoryID string) string {
	for _, category := range s.categories {
		if category.ID == categoryID {
			return category.Name
		}
	}
	return ""
}
