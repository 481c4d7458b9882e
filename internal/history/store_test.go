package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAddAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.Add(ctx, Entry{
		SourceLang:   "en-US",
		TargetLang:   "es-ES",
		Source:       "https://example.com/talk",
		ArtifactPath: "/work/es-ES/dubbed.mp4",
		Details:      map[string]string{"segments": "42"},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if first == 0 {
		t.Fatal("expected a row id")
	}

	if _, err := store.Add(ctx, Entry{
		CreatedAt:    time.Now().UTC().Add(time.Second),
		SourceLang:   "en-US",
		TargetLang:   "fr-FR",
		Source:       "https://example.com/talk",
		ArtifactPath: "/work/fr-FR/dubbed.mp4",
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d", len(entries))
	}
	if entries[0].TargetLang != "fr-FR" {
		t.Fatalf("newest first expected, got %s", entries[0].TargetLang)
	}
	if entries[1].Kind != KindDub {
		t.Fatalf("kind default = %q", entries[1].Kind)
	}
	if entries[1].Details["segments"] != "42" {
		t.Fatalf("details = %v", entries[1].Details)
	}
	if entries[1].CreatedAt.IsZero() {
		t.Fatal("created_at not parsed")
	}
}

func TestListLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := store.Add(ctx, Entry{
			CreatedAt:  time.Now().UTC().Add(time.Duration(i) * time.Second),
			TargetLang: "es-ES",
		}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	entries, err := store.List(ctx, 3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d", len(entries))
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	if _, err := store.Add(ctx, Entry{TargetLang: "es-ES"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries = %d after clear", len(entries))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Add(context.Background(), Entry{TargetLang: "es-ES"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	entries, err := reopened.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d after reopen", len(entries))
	}
}
