package listing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Jefersonlopezr/foodierank/internal/api"
	"github.com/Jefersonlopezr/foodierank/internal/logger"
)

type render struct {
	items    []api.Restaurant
	total    int
	controls PageControls
}

type recordingView struct {
	mu      sync.Mutex
	renders []render
	errs    []error
}

func (v *recordingView) RenderRestaurants(items []api.Restaurant, total int, controls PageControls) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.renders = append(v.renders, render{items: items, total: total, controls: controls})
}

func (v *recordingView) RenderError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errs = append(v.errs, err)
}

func (v *recordingView) renderCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.renders)
}

func (v *recordingView) lastRender(t *testing.T) render {
	t.Helper()
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.renders) == 0 {
		t.Fatal("no renders recorded")
	}
	return v.renders[len(v.renders)-1]
}

// stubLister отвечает немедленно и записывает параметры выборок
type stubLister struct {
	mu     sync.Mutex
	params []api.RestaurantListParams
	list   *api.RestaurantList
	err    error
}

func (l *stubLister) Restaurants(ctx context.Context, params api.RestaurantListParams) (*api.RestaurantList, error) {
	l.mu.Lock()
	l.params = append(l.params, params)
	l.mu.Unlock()

	if l.err != nil {
		return nil, l.err
	}
	if l.list != nil {
		return l.list, nil
	}
	return &api.RestaurantList{
		Pagination: api.Pagination{Page: params.Page, Limit: params.Limit, Total: 0, TotalPages: 1},
	}, nil
}

func (l *stubLister) lastParams(t *testing.T) api.RestaurantListParams {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.params) == 0 {
		t.Fatal("no fetches recorded")
	}
	return l.params[len(l.params)-1]
}

func (l *stubLister) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.params)
}

func listOf(total, totalPages int, names ...string) *api.RestaurantList {
	items := make([]api.Restaurant, len(names))
	for i, name := range names {
		items[i] = api.Restaurant{ID: name, Name: name}
	}
	return &api.RestaurantList{
		Restaurants: items,
		Pagination:  api.Pagination{Total: total, TotalPages: totalPages},
	}
}

func TestSetFilterResetsPageAndRefetches(t *testing.T) {
	ctx := context.Background()
	lister := &stubLister{list: listOf(30, 3, "a", "b")}
	view := &recordingView{}
	q := New(lister, view, 10, time.Millisecond, logger.NewNop())

	q.Refetch(ctx)
	q.GoToPage(ctx, 3)
	if q.Page() != 3 {
		t.Fatalf("page = %d, want 3", q.Page())
	}

	q.SetFilter(ctx, FieldCity, "Lima")

	if q.Page() != 1 {
		t.Fatalf("page after filter change = %d, want 1", q.Page())
	}
	params := lister.lastParams(t)
	if params.City != "Lima" || params.Page != 1 {
		t.Fatalf("fetch params = %+v, want city=Lima page=1", params)
	}
	if params.Sort != DefaultSort {
		t.Fatalf("sort = %q, want default %q", params.Sort, DefaultSort)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	ctx := context.Background()
	view := &recordingView{}

	type pending struct {
		params  api.RestaurantListParams
		release chan *api.RestaurantList
	}
	calls := make(chan pending)

	gated := listerFunc(func(ctx context.Context, params api.RestaurantListParams) (*api.RestaurantList, error) {
		p := pending{params: params, release: make(chan *api.RestaurantList)}
		calls <- p
		return <-p.release, nil
	})

	q := New(gated, view, 10, time.Millisecond, logger.NewNop())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		q.SetFilter(ctx, FieldSearch, "first")
	}()
	first := <-calls

	go func() {
		defer wg.Done()
		q.SetFilter(ctx, FieldSearch, "second")
	}()
	second := <-calls

	// Поздняя выборка завершается первой и должна победить
	second.release <- listOf(1, 1, "winner")
	for view.renderCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	// Ответ вытесненной выборки приходит позже и отбрасывается
	first.release <- listOf(1, 1, "loser")
	wg.Wait()

	if view.renderCount() != 1 {
		t.Fatalf("renders = %d, want 1 (stale response must be dropped)", view.renderCount())
	}
	if got := view.lastRender(t).items[0].Name; got != "winner" {
		t.Fatalf("rendered %q, want winner", got)
	}
}

func TestPaginationHiddenOnEmptyResult(t *testing.T) {
	ctx := context.Background()
	lister := &stubLister{list: listOf(0, 1)}
	view := &recordingView{}
	q := New(lister, view, 10, time.Millisecond, logger.NewNop())

	q.Refetch(ctx)

	controls := view.lastRender(t).controls
	if controls.Visible {
		t.Fatal("pagination must be hidden for empty results")
	}
	if controls.PrevEnabled || controls.NextEnabled {
		t.Fatalf("controls enabled on empty result: %+v", controls)
	}
}

func TestPaginationControlsOnMiddlePage(t *testing.T) {
	ctx := context.Background()
	lister := &stubLister{list: listOf(30, 3, "a")}
	view := &recordingView{}
	q := New(lister, view, 10, time.Millisecond, logger.NewNop())

	q.Refetch(ctx)
	q.GoToPage(ctx, 2)

	controls := view.lastRender(t).controls
	if !controls.Visible || !controls.PrevEnabled || !controls.NextEnabled {
		t.Fatalf("controls = %+v, want all enabled on middle page", controls)
	}
	if controls.Page != 2 || controls.TotalPages != 3 {
		t.Fatalf("controls = %+v, want page 2 of 3", controls)
	}
}

func TestGoToPageIgnoresOutOfRange(t *testing.T) {
	ctx := context.Background()
	lister := &stubLister{list: listOf(30, 3, "a")}
	view := &recordingView{}
	q := New(lister, view, 10, time.Millisecond, logger.NewNop())

	q.Refetch(ctx)
	fetches := lister.callCount()

	q.GoToPage(ctx, 0)
	q.GoToPage(ctx, 4)
	q.PrevPage(ctx)

	if lister.callCount() != fetches {
		t.Fatalf("out-of-range navigation triggered fetches: %d -> %d", fetches, lister.callCount())
	}
	if q.Page() != 1 {
		t.Fatalf("page = %d, want unchanged 1", q.Page())
	}
}

func TestFetchErrorKeepsPaginationState(t *testing.T) {
	ctx := context.Background()
	lister := &stubLister{list: listOf(30, 3, "a")}
	view := &recordingView{}
	q := New(lister, view, 10, time.Millisecond, logger.NewNop())

	q.Refetch(ctx)
	q.GoToPage(ctx, 2)

	lister.err = errors.New("boom")
	q.Refetch(ctx)

	if len(view.errs) != 1 {
		t.Fatalf("errors rendered = %d, want 1", len(view.errs))
	}
	if q.Page() != 2 || q.TotalPages() != 3 {
		t.Fatalf("pagination changed after failed fetch: page %d of %d", q.Page(), q.TotalPages())
	}
}

func TestClearFiltersRestoresDefaults(t *testing.T) {
	ctx := context.Background()
	lister := &stubLister{list: listOf(5, 1, "a")}
	view := &recordingView{}
	q := New(lister, view, 10, time.Millisecond, logger.NewNop())

	q.SetFilter(ctx, FieldCity, "Lima")
	q.SetFilter(ctx, FieldSort, "name")
	q.ClearFilters(ctx)

	filters := q.Filters()
	if filters != DefaultFilters() {
		t.Fatalf("filters = %+v, want defaults", filters)
	}
	params := lister.lastParams(t)
	if params.City != "" || params.Sort != DefaultSort || params.Page != 1 {
		t.Fatalf("fetch params after clear = %+v", params)
	}
}

func TestSearchDebouncesKeystrokes(t *testing.T) {
	ctx := context.Background()
	lister := &stubLister{list: listOf(1, 1, "a")}
	view := &recordingView{}
	q := New(lister, view, 10, 30*time.Millisecond, logger.NewNop())

	// Быстрый набор: запрос уходит только для последнего значения
	q.Search(ctx, "s")
	q.Search(ctx, "su")
	q.Search(ctx, "sus")

	time.Sleep(100 * time.Millisecond)

	if lister.callCount() != 1 {
		t.Fatalf("fetches = %d, want 1 debounced fetch", lister.callCount())
	}
	if got := lister.lastParams(t).Search; got != "sus" {
		t.Fatalf("search = %q, want final input", got)
	}
}

// listerFunc - адаптер функции к интерфейсу lister
type listerFunc func(ctx context.Context, params api.RestaurantListParams) (*api.RestaurantList, error)

func (f listerFunc) Restaurants(ctx context.Context, params api.RestaurantListParams) (*api.RestaurantList, error) {
	return f(ctx, params)
}
