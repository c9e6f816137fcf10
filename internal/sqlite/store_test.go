package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/skeetstorm/skeetstorm/internal/domain"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "threads.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleResult(uri string) *domain.ThreadResult {
	return &domain.ThreadResult{
		Message: domain.MessageSuccess,
		Thread: []domain.NormalizedPost{
			{URI: uri, Text: "hello", Embed: []string{}, Facets: []domain.FacetLink{}},
		},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	key := "https://bsky.app/profile/alice.test/post/abc"

	if err := store.PutThread(ctx, key, sampleResult("at://r")); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.GetThread(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || len(got.Thread) != 1 || got.Thread[0].URI != "at://r" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got.Thread[0].Embed == nil || got.Thread[0].Facets == nil {
		t.Fatalf("empty collections must survive the round trip: %+v", got.Thread[0])
	}
}

func TestStoreMiss(t *testing.T) {
	store := testStore(t)

	got, err := store.GetThread(context.Background(), "https://bsky.app/never-stored")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unknown key, got %+v", got)
	}
}

func TestStoreWriteOnce(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	key := "https://bsky.app/profile/alice.test/post/abc"

	if err := store.PutThread(ctx, key, sampleResult("at://first")); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := store.PutThread(ctx, key, sampleResult("at://second")); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, err := store.GetThread(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Thread[0].URI != "at://first" {
		t.Fatalf("second put must not overwrite, got %q", got.Thread[0].URI)
	}
}

func TestStoreKeysAreNotNormalized(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.PutThread(ctx, "https://bsky.app/profile/a/post/x", sampleResult("at://r")); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.GetThread(ctx, "https://bsky.app/profile/a/post/x/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("trailing-slash variant must be a distinct key, got %+v", got)
	}
}
