// Package stubserver реализует локальную заглушку API сервиса рейтинга
// ресторанов. Используется для разработки клиента без удаленного бекенда
// и в сквозных тестах. Протокол полностью совпадает с боевым API:
// конверт success/data/error, Bearer-токены, коды ошибок.
package stubserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jefersonlopezr/foodierank/internal/api"
	"github.com/Jefersonlopezr/foodierank/internal/logger"
	"github.com/Jefersonlopezr/foodierank/pkg/health"
)

// Server держит все состояние заглушки в памяти
type Server struct {
	secret   []byte
	tokenTTL time.Duration
	log      logger.Logger

	mu          sync.Mutex
	users       map[string]*userRecord
	categories  []api.Category
	restaurants map[string]*restaurantRecord
	reviews     map[string]*reviewRecord
}

type userRecord struct {
	user         api.User
	passwordHash []byte
}

type restaurantRecord struct {
	restaurant api.Restaurant
	dishes     []api.Dish
}

type reviewRecord struct {
	review     api.Review
	likedBy    map[string]bool
	dislikedBy map[string]bool
}

// NewServer создает пустую заглушку с указанным секретом подписи токенов
func NewServer(secret string, tokenTTL time.Duration, log logger.Logger) *Server {
	return &Server{
		secret:      []byte(secret),
		tokenTTL:    tokenTTL,
		log:         log,
		users:       map[string]*userRecord{},
		restaurants: map[string]*restaurantRecord{},
		reviews:     map[string]*reviewRecord{},
	}
}

// SeedAdmin добавляет администратора с известным паролем
func (s *Server) SeedAdmin(username, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := &userRecord{
		user: api.User{
			ID:       newID(),
			Username: username,
			Email:    email,
			Role:     api.RoleAdmin,
		},
		passwordHash: hash,
	}
	s.users[record.user.ID] = record
	return nil
}

// Router собирает все маршруты заглушки
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	// Общие middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", health.Handler(map[string]health.Checker{
		"state": s.stateChecker(),
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Публичные эндпоинты аутентификации
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// Защищенные эндпоинты профиля
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/auth/profile", s.handleProfile)
			r.Put("/auth/profile", s.handleUpdateProfile)
			r.Post("/auth/logout", s.handleLogout)
		})

		r.Get("/categories", s.handleCategories)
		r.With(s.authMiddleware).Post("/categories", s.handleCreateCategory)

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", s.handleRestaurants)
			r.Get("/ranking", s.handleRanking)
			r.Get("/stats", s.handleStats)
			r.Get("/cities", s.handleCities)
			r.With(s.authMiddleware).Get("/my-restaurants", s.handleMyRestaurants)
			r.With(s.authMiddleware).Post("/", s.handleCreateRestaurant)

			r.Route("/{restaurantID}", func(r chi.Router) {
				r.Get("/", s.handleRestaurant)
				r.With(s.authMiddleware).Put("/", s.handleUpdateRestaurant)
				r.With(s.authMiddleware).Delete("/", s.handleDeleteRestaurant)
				r.With(s.authMiddleware, s.adminMiddleware).Patch("/approve", s.handleApproveRestaurant)

				r.Get("/dishes", s.handleDishes)
				r.With(s.authMiddleware).Post("/dishes", s.handleCreateDish)
				r.With(s.authMiddleware).Put("/dishes/{dishID}", s.handleUpdateDish)
				r.With(s.authMiddleware).Delete("/dishes/{dishID}", s.handleDeleteDish)

				r.Get("/reviews", s.handleReviews)
				r.With(s.authMiddleware).Post("/reviews", s.handleCreateReview)
			})
		})

		r.Route("/reviews/{reviewID}", func(r chi.Router) {
			r.Get("/", s.handleReview)

			r.Group(func(r chi.Router) {
				r.Use(s.authMiddleware)
				r.Put("/", s.handleUpdateReview)
				r.Delete("/", s.handleDeleteReview)
				r.Post("/like", s.handleLike)
				r.Post("/dislike", s.handleDislike)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(s.authMiddleware, s.adminMiddleware)
			r.Get("/", s.handleUsers)
			r.Get("/{userID}", s.handleUser)
			r.Put("/{userID}", s.handleUpdateUser)
			r.Delete("/{userID}", s.handleDeleteUser)
		})
	})

	return r
}

// Start запускает HTTP сервер заглушки
func Start(addr string, router *chi.Mux) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return server.ListenAndServe()
}
