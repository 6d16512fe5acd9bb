package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	if _, err := store.Get(ctx, KeyToken); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound for missing key, got %v", err)
	}

	values := map[string]string{
		KeyToken:  "tok-123",
		KeyUser:   `{"id":"u1"}`,
		KeyExpiry: "1700000000000",
	}
	if err := store.SetAll(ctx, values); err != nil {
		t.Fatalf("SetAll error: %v", err)
	}

	for key, want := range values {
		got, err := store.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get(%s) error: %v", key, err)
		}
		if got != want {
			t.Fatalf("Get(%s) = %q, want %q", key, got, want)
		}
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	if err := store.SetAll(ctx, map[string]string{KeyToken: "persisted"}); err != nil {
		t.Fatalf("SetAll error: %v", err)
	}

	// Второе открытие имитирует перезапуск клиента
	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	got, err := reopened.Get(ctx, KeyToken)
	if err != nil {
		t.Fatalf("Get after reopen error: %v", err)
	}
	if got != "persisted" {
		t.Fatalf("Get after reopen = %q, want %q", got, "persisted")
	}
}

func TestFileStoreCorruptFileMeansEmptySession(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("prepare corrupt file: %v", err)
	}

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	if _, err := store.Get(ctx, KeyToken); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound for corrupt file, got %v", err)
	}

	// Запись поверх поврежденного файла восстанавливает хранилище
	if err := store.SetAll(ctx, map[string]string{KeyToken: "fresh"}); err != nil {
		t.Fatalf("SetAll over corrupt file error: %v", err)
	}
	got, err := store.Get(ctx, KeyToken)
	if err != nil || got != "fresh" {
		t.Fatalf("Get = %q, %v; want %q, nil", got, err, "fresh")
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	if err := store.SetAll(ctx, map[string]string{KeyToken: "a", KeyUser: "b", KeyExpiry: "c"}); err != nil {
		t.Fatalf("SetAll error: %v", err)
	}

	if err := store.Delete(ctx, KeyToken, KeyUser, KeyExpiry); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := store.Get(ctx, KeyUser); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	if _, err := store.Get(ctx, KeyToken); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := store.SetAll(ctx, map[string]string{KeyToken: "t", KeyUser: "u"}); err != nil {
		t.Fatalf("SetAll error: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}

	if err := store.Delete(ctx, KeyToken); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("Len after delete = %d, want 1", store.Len())
	}
}
