package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func upChecker() Checker {
	return CheckerFunc(func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusUp}
	})
}

func downChecker(err error) Checker {
	return CheckerFunc(func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusDown, Error: err.Error()}
	})
}

func TestReportAggregatesStatuses(t *testing.T) {
	ctx := context.Background()

	overall, results := Report(ctx, map[string]Checker{
		"a": upChecker(),
		"b": upChecker(),
	})
	if overall != StatusUp || len(results) != 2 {
		t.Fatalf("overall = %v, results = %v", overall, results)
	}

	overall, results = Report(ctx, map[string]Checker{
		"a": upChecker(),
		"b": downChecker(errors.New("broken")),
	})
	if overall != StatusDown {
		t.Fatalf("overall = %v, want down when any check fails", overall)
	}
	if results["b"].Error != "broken" {
		t.Fatalf("error detail lost: %+v", results["b"])
	}
}

func TestHandlerStatusCodes(t *testing.T) {
	healthy := Handler(map[string]Checker{"a": upChecker()})
	rec := httptest.NewRecorder()
	healthy(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthy code = %d, want 200", rec.Code)
	}

	var body struct {
		Status Status                 `json:"status"`
		Checks map[string]CheckResult `json:"checks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != StatusUp || len(body.Checks) != 1 {
		t.Fatalf("body = %+v", body)
	}

	unhealthy := Handler(map[string]Checker{"a": downChecker(errors.New("nope"))})
	rec = httptest.NewRecorder()
	unhealthy(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unhealthy code = %d, want 503", rec.Code)
	}
}

func TestAPICheckerAgainstLiveServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	result := APIChecker(server.URL).Check(context.Background())
	if result.Status != StatusUp {
		t.Fatalf("result = %+v, want up", result)
	}
	if result.Details["http_status"] != http.StatusOK {
		t.Fatalf("details = %+v", result.Details)
	}

	server.Close()
	result = APIChecker(server.URL).Check(context.Background())
	if result.Status != StatusDown {
		t.Fatalf("result = %+v, want down after server close", result)
	}
}
