package docstore

import (
	"context"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestSQLiteStoreAddAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Add(ctx, "t1", `{"id":"t1"}`); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	blob, err := store.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if blob != `{"id":"t1"}` {
		t.Fatalf("unexpected blob: %s", blob)
	}
}

func TestSQLiteStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.Get(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStoreAddReplaces(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Add(ctx, "t1", "v1"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(ctx, "t1", "v2"); err != nil {
		t.Fatalf("second Add failed: %v", err)
	}

	blob, err := store.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if blob != "v2" {
		t.Fatalf("expected replaced blob, got %s", blob)
	}

	docs, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
}

func TestSQLiteStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Add(ctx, "t1", "v1"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(ctx, "t2", "v2"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := store.Delete(ctx, []string{"t1", "does-not-exist"}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.Get(ctx, "t1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := store.Get(ctx, "t2"); err != nil {
		t.Fatalf("t2 should survive: %v", err)
	}

	// Deleting nothing is a no-op.
	if err := store.Delete(ctx, nil); err != nil {
		t.Fatalf("empty Delete failed: %v", err)
	}
}
