package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Jefersonlopezr/foodierank/internal/api"
	"github.com/Jefersonlopezr/foodierank/internal/logger"
)

type fakeHooks struct {
	token          string
	hasToken       bool
	expiredHandled bool
}

func (f *fakeHooks) Token(ctx context.Context) (string, bool) {
	return f.token, f.hasToken
}

func (f *fakeHooks) HandleExpired(ctx context.Context) {
	f.expiredHandled = true
}

func newTestClient(t *testing.T, handler http.Handler) (*api.Client, *fakeHooks, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	hooks := &fakeHooks{}
	client := api.NewClient(server.URL, 5*time.Second, 3, logger.NewNop())
	client.BindSession(hooks)
	return client, hooks, server
}

func envelope(data any) []byte {
	raw, _ := json.Marshal(data)
	out, _ := json.Marshal(api.Envelope{Success: true, Data: raw})
	return out
}

func errorEnvelope(code, message string) []byte {
	out, _ := json.Marshal(api.Envelope{
		Success: false,
		Error:   &api.ErrorBody{Code: code, Message: message},
	})
	return out
}

func TestBearerHeaderAttachedOnlyWithToken(t *testing.T) {
	var gotAuth string
	client, hooks, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write(envelope(map[string]any{"categories": []api.Category{}}))
	}))

	ctx := context.Background()

	if _, err := client.Categories(ctx); err != nil {
		t.Fatalf("Categories error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("anonymous request carried Authorization %q", gotAuth)
	}

	hooks.token = "tok-42"
	hooks.hasToken = true
	if _, err := client.Categories(ctx); err != nil {
		t.Fatalf("Categories error: %v", err)
	}
	if gotAuth != "Bearer tok-42" {
		t.Fatalf("Authorization = %q, want Bearer tok-42", gotAuth)
	}
}

func TestRequestIDHeaderPresent(t *testing.T) {
	var gotID string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-Id")
		w.Write(envelope(map[string]any{"categories": []api.Category{}}))
	}))

	if _, err := client.Categories(context.Background()); err != nil {
		t.Fatalf("Categories error: %v", err)
	}
	if gotID == "" {
		t.Fatal("expected X-Request-Id header on every request")
	}
}

func TestExpiredTokenTriggersForcedLogout(t *testing.T) {
	client, hooks, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write(errorEnvelope(api.ErrCodeTokenExpired, "token has expired"))
	}))
	hooks.token = "stale"
	hooks.hasToken = true

	_, err := client.Profile(context.Background())
	if !api.IsExpiredSession(err) {
		t.Fatalf("error = %v, want ExpiredSessionError", err)
	}
	if !hooks.expiredHandled {
		t.Fatal("expected HandleExpired to be invoked")
	}
}

func TestPlain401IsRequestFailedNotExpired(t *testing.T) {
	client, hooks, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write(errorEnvelope("UNAUTHORIZED", "invalid credentials"))
	}))

	_, err := client.Login(context.Background(), api.Credentials{})
	if !api.IsRequestFailed(err) {
		t.Fatalf("error = %v, want RequestFailedError", err)
	}
	if api.IsExpiredSession(err) {
		t.Fatal("plain 401 must not be classified as expired session")
	}
	if hooks.expiredHandled {
		t.Fatal("plain 401 must not force logout")
	}
	if err.Error() != "invalid credentials" {
		t.Fatalf("message = %q, want server message verbatim", err.Error())
	}
}

func TestErrorWithoutMessageGetsFallback(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))

	_, err := client.Stats(context.Background())
	if !api.IsRequestFailed(err) {
		t.Fatalf("error = %v, want RequestFailedError", err)
	}
	if err.Error() != "request failed" {
		t.Fatalf("message = %q, want fallback", err.Error())
	}
}

func TestGarbage2xxIsNetworkError(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))

	_, err := client.Stats(context.Background())
	if !api.IsNetworkError(err) {
		t.Fatalf("error = %v, want NetworkError for undecodable 2xx", err)
	}
}

func TestUnreachableServerIsNetworkError(t *testing.T) {
	client := api.NewClient("http://127.0.0.1:1", time.Second, 3, logger.NewNop())

	_, err := client.Stats(context.Background())
	if !api.IsNetworkError(err) {
		t.Fatalf("error = %v, want NetworkError", err)
	}
}

func TestContextCancellationIsNetworkError(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Stats(ctx)
	if !api.IsNetworkError(err) {
		t.Fatalf("error = %v, want NetworkError on cancellation", err)
	}
}

func TestRestaurantsDecodesListResponse(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "sushi" {
			t.Errorf("search query = %q, want sushi", got)
		}
		w.Write(envelope(api.RestaurantList{
			Restaurants: []api.Restaurant{{ID: "r1", Name: "Sushi Bar"}},
			Pagination:  api.Pagination{Page: 1, Limit: 10, Total: 1, TotalPages: 1},
		}))
	}))

	list, err := client.Restaurants(context.Background(), api.RestaurantListParams{Search: "sushi"})
	if err != nil {
		t.Fatalf("Restaurants error: %v", err)
	}
	if len(list.Restaurants) != 1 || list.Restaurants[0].Name != "Sushi Bar" {
		t.Fatalf("unexpected list: %+v", list.Restaurants)
	}
	if list.Pagination.TotalPages != 1 {
		t.Fatalf("totalPages = %d, want 1", list.Pagination.TotalPages)
	}
}

func TestRetryAttemptsExposed(t *testing.T) {
	client := api.NewClient("http://localhost", time.Second, 7, logger.NewNop())
	if client.RetryAttempts() != 7 {
		t.Fatalf("RetryAttempts = %d, want 7", client.RetryAttempts())
	}
}
