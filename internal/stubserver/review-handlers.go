package stubserver

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Jefersonlopezr/foodierank/internal/api"
)

// handleReviews возвращает отзывы ресторана, новые первыми
func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "restaurantID")

	s.mu.Lock()
	if _, ok := s.restaurants[id]; !ok {
		s.mu.Unlock()
		s.writeError(w, http.StatusNotFound, codeNotFound, "restaurant not found")
		return
	}
	reviews := []api.Review{}
	for _, record := range s.reviews {
		if record.review.RestaurantID == id {
			reviews = append(reviews, record.review)
		}
	}
	s.mu.Unlock()

	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	s.writeData(w, http.StatusOK, map[string]any{"reviews": reviews})
}

// handleReview возвращает один отзыв по идентификатору
func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reviewID")

	s.mu.Lock()
	record, ok := s.reviews[id]
	s.mu.Unlock()

	if !ok {
		s.writeError(w, http.StatusNotFound, codeNotFound, "review not found")
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"review": record.review})
}

// handleCreateReview создает отзыв и пересчитывает рейтинг ресторана.
// Один пользователь оставляет не больше одного отзыва на ресторан
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	user, _ := requestUser(r)
	restaurantID := chi.URLParam(r, "restaurantID")

	var req api.ReviewInput
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "rating must be between 1 and 5")
		return
	}
	if strings.TrimSpace(req.Comment) == "" {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "comment is required")
		return
	}

	s.mu.Lock()
	if _, ok := s.restaurants[restaurantID]; !ok {
		s.mu.Unlock()
		s.writeError(w, http.StatusNotFound, codeNotFound, "restaurant not found")
		return
	}
	for _, existing := range s.reviews {
		if existing.review.RestaurantID == restaurantID && existing.review.UserID == user.ID {
			s.mu.Unlock()
			s.writeError(w, http.StatusConflict, codeConflict, "you have already reviewed this restaurant")
			return
		}
	}

	record := &reviewRecord{
		review: api.Review{
			ID:           newID(),
			RestaurantID: restaurantID,
			UserID:       user.ID,
			Username:     user.Username,
			Rating:       req.Rating,
			Comment:      req.Comment,
			CreatedAt:    time.Now().UTC(),
		},
		likedBy:    map[string]bool{},
		dislikedBy: map[string]bool{},
	}
	s.reviews[record.review.ID] = record
	s.recalcRatingLocked(restaurantID)
	s.mu.Unlock()

	s.writeData(w, http.StatusCreated, map[string]any{"review": record.review})
}

// handleUpdateReview изменяет отзыв его автора
func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	user, _ := requestUser(r)
	id := chi.URLParam(r, "reviewID")

	var req api.ReviewInput
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	record, ok := s.reviews[id]
	if !ok {
		s.mu.Unlock()
		s.writeError(w, http.StatusNotFound, codeNotFound, "review not found")
		return
	}
	if record.review.UserID != user.ID && user.Role != api.RoleAdmin {
		s.mu.Unlock()
		s.writeError(w, http.StatusForbidden, codeForbidden, "not allowed to modify this review")
		return
	}

	if req.Rating >= 1 && req.Rating <= 5 {
		record.review.Rating = req.Rating
	}
	if strings.TrimSpace(req.Comment) != "" {
		record.review.Comment = req.Comment
	}
	s.recalcRatingLocked(record.review.RestaurantID)
	updated := record.review
	s.mu.Unlock()

	s.writeData(w, http.StatusOK, map[string]any{"review": updated})
}

// handleDeleteReview удаляет отзыв и пересчитывает рейтинг
func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	user, _ := requestUser(r)
	id := chi.URLParam(r, "reviewID")

	s.mu.Lock()
	record, ok := s.reviews[id]
	if !ok {
		s.mu.Unlock()
		s.writeError(w, http.StatusNotFound, codeNotFound, "review not found")
		return
	}
	if record.review.UserID != user.ID && user.Role != api.RoleAdmin {
		s.mu.Unlock()
		s.writeError(w, http.StatusForbidden, codeForbidden, "not allowed to delete this review")
		return
	}

	delete(s.reviews, id)
	s.recalcRatingLocked(record.review.RestaurantID)
	s.mu.Unlock()

	s.writeData(w, http.StatusOK, map[string]any{})
}

// handleLike переключает лайк текущего пользователя.
// Лайк снимает ранее поставленный дизлайк
func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	s.toggleReaction(w, r, true)
}

// handleDislike переключает дизлайк текущего пользователя
func (s *Server) handleDislike(w http.ResponseWriter, r *http.Request) {
	s.toggleReaction(w, r, false)
}

func (s *Server) toggleReaction(w http.ResponseWriter, r *http.Request, like bool) {
	user, _ := requestUser(r)
	id := chi.URLParam(r, "reviewID")

	s.mu.Lock()
	record, ok := s.reviews[id]
	if !ok {
		s.mu.Unlock()
		s.writeError(w, http.StatusNotFound, codeNotFound, "review not found")
		return
	}

	if like {
		if record.likedBy[user.ID] {
			delete(record.likedBy, user.ID)
		} else {
			record.likedBy[user.ID] = true
			delete(record.dislikedBy, user.ID)
		}
	} else {
		if record.dislikedBy[user.ID] {
			delete(record.dislikedBy, user.ID)
		} else {
			record.dislikedBy[user.ID] = true
			delete(record.likedBy, user.ID)
		}
	}
	record.review.Likes = len(record.likedBy)
	record.review.Dislikes = len(record.dislikedBy)
	updated := record.review
	s.mu.Unlock()

	s.writeData(w, http.StatusOK, map[string]any{"review": updated})
}

// recalcRatingLocked пересчитывает средний рейтинг и счетчик отзывов
// ресторана; вызывается под мьютексом после каждого изменения отзывов
func (s *Server) recalcRatingLocked(restaurantID string) {
	record, ok := s.restaurants[restaurantID]
	if !ok {
		return
	}

	var sum, count int
	for _, review := range s.reviews {
		if review.review.RestaurantID == restaurantID {
			sum += review.review.Rating
			count++
		}
	}

	record.restaurant.TotalReviews = count
	if count == 0 {
		record.restaurant.AverageRating = 0
		return
	}
	record.restaurant.AverageRating = float64(sum) / float64(count)
}
