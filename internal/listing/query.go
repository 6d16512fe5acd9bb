package listing

import (
	"context"
	"sync"
	"time"

	"github.com/Jefersonlopezr/foodierank/internal/api"
	"github.com/Jefersonlopezr/foodierank/internal/logger"
)

// DefaultSort - порядок сортировки по умолчанию
const DefaultSort = "rating"

// Field - изменяемое поле набора фильтров
type Field string

const (
	FieldSearch   Field = "search"
	FieldCategory Field = "category"
	FieldCity     Field = "city"
	FieldSort     Field = "sort"
)

// FilterSet - активный набор фильтров списка.
// Все поля всегда определены; пустая строка означает "без фильтра"
type FilterSet struct {
	Search   string
	Category string
	City     string
	Sort     string
}

// DefaultFilters возвращает набор фильтров по умолчанию
func DefaultFilters() FilterSet {
	return FilterSet{Sort: DefaultSort}
}

// PageControls - состояние элементов пагинации для слоя отображения.
// При пустой выборке элементы скрываются, а не рисуются как "1 из 1"
type PageControls struct {
	Visible     bool
	PrevEnabled bool
	NextEnabled bool
	Page        int
	TotalPages  int
}

// View получает результаты выборки; реализация живет в слое отображения
type View interface {
	RenderRestaurants(items []api.Restaurant, total int, controls PageControls)
	RenderError(err error)
}

// lister - часть каталога эндпоинтов, нужная машине состояний списка
type lister interface {
	Restaurants(ctx context.Context, params api.RestaurantListParams) (*api.RestaurantList, error)
}

// Query владеет фильтрами и пагинацией одного списочного представления.
// Каждая выборка получает номер поколения; ответ устаревшей выборки
// отбрасывается, так что побеждает последний инициированный запрос
type Query struct {
	api      lister
	view     View
	log      logger.Logger
	pageSize int
	debounce time.Duration

	mu          sync.Mutex
	filters     FilterSet
	page        int
	totalPages  int
	gen         uint64
	searchTimer *time.Timer
}

// New создает машину состояний списка с фильтрами по умолчанию
func New(api lister, view View, pageSize int, debounce time.Duration, log logger.Logger) *Query {
	return &Query{
		api:        api,
		view:       view,
		log:        log,
		pageSize:   pageSize,
		debounce:   debounce,
		filters:    DefaultFilters(),
		page:       1,
		totalPages: 1,
	}
}

// Filters возвращает копию активного набора фильтров
func (q *Query) Filters() FilterSet {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.filters
}

// Page возвращает текущую страницу
func (q *Query) Page() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.page
}

// TotalPages возвращает общее число страниц по данным сервера
func (q *Query) TotalPages() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.totalPages
}

// SetFilter изменяет одно поле фильтра, сбрасывает страницу на первую
// и запускает повторную выборку
func (q *Query) SetFilter(ctx context.Context, field Field, value string) {
	q.mu.Lock()
	switch field {
	case FieldSearch:
		q.filters.Search = value
	case FieldCategory:
		q.filters.Category = value
	case FieldCity:
		q.filters.City = value
	case FieldSort:
		q.filters.Sort = value
	default:
		q.mu.Unlock()
		return
	}
	q.page = 1
	params, gen := q.nextFetchLocked()
	q.mu.Unlock()

	q.fetch(ctx, params, gen)
}

// Search применяет строку поиска с задержкой, чтобы не отправлять
// запрос на каждое нажатие клавиши. Остальные фильтры применяются сразу
func (q *Query) Search(ctx context.Context, text string) {
	q.mu.Lock()
	if q.searchTimer != nil {
		q.searchTimer.Stop()
	}
	q.searchTimer = time.AfterFunc(q.debounce, func() {
		q.SetFilter(ctx, FieldSearch, text)
	})
	q.mu.Unlock()
}

// ClearFilters сбрасывает фильтры к значениям по умолчанию
// и запускает повторную выборку с первой страницы
func (q *Query) ClearFilters(ctx context.Context) {
	q.mu.Lock()
	q.filters = DefaultFilters()
	q.page = 1
	params, gen := q.nextFetchLocked()
	q.mu.Unlock()

	q.fetch(ctx, params, gen)
}

// GoToPage переходит на страницу n. Значения вне [1, totalPages]
// игнорируются без изменения состояния
func (q *Query) GoToPage(ctx context.Context, n int) {
	q.mu.Lock()
	if n < 1 || n > q.totalPages {
		q.mu.Unlock()
		return
	}
	q.page = n
	params, gen := q.nextFetchLocked()
	q.mu.Unlock()

	q.fetch(ctx, params, gen)
}

// NextPage переходит на следующую страницу
func (q *Query) NextPage(ctx context.Context) {
	q.GoToPage(ctx, q.Page()+1)
}

// PrevPage переходит на предыдущую страницу
func (q *Query) PrevPage(ctx context.Context) {
	q.GoToPage(ctx, q.Page()-1)
}

// Refetch повторяет выборку с текущими фильтрами и страницей
func (q *Query) Refetch(ctx context.Context) {
	q.mu.Lock()
	params, gen := q.nextFetchLocked()
	q.mu.Unlock()

	q.fetch(ctx, params, gen)
}

// nextFetchLocked фиксирует параметры выборки и выдает новый номер
// поколения; вызывается только под мьютексом
func (q *Query) nextFetchLocked() (api.RestaurantListParams, uint64) {
	q.gen++
	return api.RestaurantListParams{
		Page:     q.page,
		Limit:    q.pageSize,
		Search:   q.filters.Search,
		Category: q.filters.Category,
		City:     q.filters.City,
		Sort:     q.filters.Sort,
	}, q.gen
}

// fetch выполняет выборку и применяет результат, если поколение
// не было вытеснено более поздним запросом. Неудачная выборка
// не трогает прежнее состояние пагинации
func (q *Query) fetch(ctx context.Context, params api.RestaurantListParams, gen uint64) {
	list, err := q.api.Restaurants(ctx, params)

	q.mu.Lock()
	if gen != q.gen {
		q.mu.Unlock()
		q.log.Debug("Discarding stale list response", "generation", gen)
		return
	}

	if err != nil {
		q.mu.Unlock()
		q.view.RenderError(err)
		return
	}

	if list.Pagination.TotalPages > 0 {
		q.totalPages = list.Pagination.TotalPages
	}

	controls := PageControls{
		Visible:     len(list.Restaurants) > 0,
		PrevEnabled: len(list.Restaurants) > 0 && q.page > 1,
		NextEnabled: len(list.Restaurants) > 0 && q.page < q.totalPages,
		Page:        q.page,
		TotalPages:  q.totalPages,
	}
	q.mu.Unlock()

	q.view.RenderRestaurants(list.Restaurants, list.Pagination.Total, controls)
}
