package api

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"
)

// Envelope - единый формат ответа API: либо success и data,
// либо success=false и error
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorBody      `json:"error,omitempty"`
}

// ErrorBody представляет тело ошибки в конверте
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Роли пользователей
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет пользователя сервиса
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Location представляет адрес ресторана
type Location struct {
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
}

// Category представляет категорию кухни
type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Restaurant представляет ресторан в каталоге
type Restaurant struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	CategoryID    string   `json:"categoryId,omitempty"`
	CategoryName  string   `json:"categoryName,omitempty"`
	Location      Location `json:"location"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	AverageRating float64  `json:"averageRating"`
	TotalReviews  int      `json:"totalReviews"`
	IsApproved    bool     `json:"isApproved"`
	OwnerID       string   `json:"ownerId,omitempty"`
}

// Dish представляет блюдо ресторана
type Dish struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// Review представляет отзыв о ресторане
type Review struct {
	ID           string    `json:"_id"`
	RestaurantID string    `json:"restaurantId,omitempty"`
	UserID       string    `json:"userId,omitempty"`
	Username     string    `json:"username,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Likes        int       `json:"likes"`
	Dislikes     int       `json:"dislikes"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// Stats представляет сводную статистику сервиса
type Stats struct {
	TotalRestaurants int     `json:"totalRestaurants"`
	TotalReviews     int     `json:"totalReviews"`
	TotalUsers       int     `json:"totalUsers"`
	AverageRating    float64 `json:"averageRating"`
}

// Pagination - блок пагинации в списочных ответах сервера
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// AuthData - данные успешного входа или регистрации
type AuthData struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Credentials - данные для входа
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterData - данные для регистрации
type RegisterData struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate - изменяемые поля профиля
type ProfileUpdate struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// UserUpdate - изменяемые администратором поля пользователя
type UserUpdate struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// CategoryInput - данные для создания категории
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RestaurantInput - данные для создания или изменения ресторана
type RestaurantInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CategoryID  string   `json:"categoryId"`
	Location    Location `json:"location"`
	ImageURL    string   `json:"imageUrl,omitempty"`
}

// DishInput - данные для создания или изменения блюда
type DishInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// ReviewInput - данные для создания или изменения отзыва
type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// RestaurantList - ответ списочной выборки ресторанов
type RestaurantList struct {
	Restaurants []Restaurant `json:"restaurants"`
	Pagination  Pagination   `json:"pagination"`
}

// RestaurantListParams - параметры списочной выборки ресторанов
type RestaurantListParams struct {
	Page     int
	Limit    int
	Search   string
	Category string
	City     string
	Sort     string
	Approved *bool
}

// Values сериализует параметры в query-строку, пропуская пустые значения
func (p RestaurantListParams) Values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.City != "" {
		q.Set("city", p.City)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Approved != nil {
		q.Set("isApproved", strconv.FormatBool(*p.Approved))
	}
	return q
}

// RestaurantListParamsFromValues восстанавливает параметры из query-строки.
// Сериализация и разбор взаимно обратны: пустые значения не кодируются
// и при разборе остаются пустыми
func RestaurantListParamsFromValues(q url.Values) RestaurantListParams {
	params := RestaurantListParams{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		City:     q.Get("city"),
		Sort:     q.Get("sort"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		params.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		params.Limit = limit
	}
	if q.Has("isApproved") {
		approved := q.Get("isApproved") == "true"
		params.Approved = &approved
	}
	return params
}
