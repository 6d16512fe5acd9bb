package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir is a stand-in for t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}

func TestDefaultsWithoutConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	c, err := New()
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if c.Service.Env != "dev" {
		t.Fatalf("env = %q, want dev", c.Service.Env)
	}
	if c.API.TimeoutSeconds != 30 || c.API.RetryAttempts != 3 {
		t.Fatalf("api params = %+v", c.API)
	}
	if c.Pagination.DefaultLimit != 10 || c.Pagination.MaxLimit != 50 {
		t.Fatalf("pagination = %+v", c.Pagination)
	}
	if c.Session.TTLHours != 24 || c.Session.Backend != "file" {
		t.Fatalf("session params = %+v", c.Session)
	}
	if c.UI.SearchDebounceMs != 300 {
		t.Fatalf("debounce = %d, want 300", c.UI.SearchDebounceMs)
	}
}

func TestResolveBaseURLByEnvironment(t *testing.T) {
	chdir(t, t.TempDir())

	c, err := New()
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if got := c.ResolveBaseURL(); got != "http://localhost:3000/api/v1" {
		t.Fatalf("dev base url = %q", got)
	}

	c.Service.Env = "prod"
	if got := c.ResolveBaseURL(); got != "https://backend-foodierank.onrender.com/api/v1" {
		t.Fatalf("prod base url = %q", got)
	}

	// Явный адрес перебивает выбор по окружению
	c.API.BaseURL = "http://example.test/api"
	if got := c.ResolveBaseURL(); got != "http://example.test/api" {
		t.Fatalf("explicit base url = %q", got)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FOODIERANK_ENV", "prod")
	t.Setenv("FOODIERANK_API_TIMEOUT", "5")
	t.Setenv("FOODIERANK_SESSION_BACKEND", "memory")

	c, err := New()
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if c.Service.Env != "prod" {
		t.Fatalf("env = %q, want prod", c.Service.Env)
	}
	if c.API.TimeoutSeconds != 5 {
		t.Fatalf("timeout = %d, want 5", c.API.TimeoutSeconds)
	}
	if c.Session.Backend != "memory" {
		t.Fatalf("backend = %q, want memory", c.Session.Backend)
	}
}

func TestConfigFileIsRead(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`service_params:
  env: test
api_params:
  timeout_seconds: 10
  retry_attempts: 1
pagination_params:
  default_limit: 5
  max_limit: 20
ui_params:
  search_debounce_ms: 150
session_params:
  ttl_hours: 12
  backend: memory
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	chdir(t, dir)

	c, err := New()
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if c.Service.Env != "test" || c.API.TimeoutSeconds != 10 {
		t.Fatalf("config = %+v", c)
	}
	if c.Pagination.DefaultLimit != 5 || c.UI.SearchDebounceMs != 150 {
		t.Fatalf("config = %+v", c)
	}
	if c.Session.TTLHours != 12 {
		t.Fatalf("ttl = %d, want 12", c.Session.TTLHours)
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FOODIERANK_SESSION_BACKEND", "carrier-pigeon")

	if _, err := New(); err == nil {
		t.Fatal("expected validation error for unknown backend")
	}
}

func TestDurationHelpers(t *testing.T) {
	chdir(t, t.TempDir())

	c, err := New()
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if c.API.RequestTimeout().Seconds() != 30 {
		t.Fatalf("RequestTimeout = %v", c.API.RequestTimeout())
	}
	if c.Session.SessionTTL().Hours() != 24 {
		t.Fatalf("SessionTTL = %v", c.Session.SessionTTL())
	}
	if c.UI.SearchDebounce().Milliseconds() != 300 {
		t.Fatalf("SearchDebounce = %v", c.UI.SearchDebounce())
	}
}

func TestStorePathPrefersExplicit(t *testing.T) {
	s := SessionParams{FilePath: "/tmp/custom.json"}
	path, err := s.StorePath()
	if err != nil || path != "/tmp/custom.json" {
		t.Fatalf("StorePath = %q, %v", path, err)
	}

	s.FilePath = ""
	path, err = s.StorePath()
	if err != nil {
		t.Fatalf("StorePath error: %v", err)
	}
	if filepath.Base(path) != "session.json" {
		t.Fatalf("default path = %q, want session.json file", path)
	}
}
