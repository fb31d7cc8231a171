package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "eventboard.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open("  "); err == nil {
		t.Fatal("expected path error")
	}
}

func TestItemRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := store.GetItem(ctx, "user"); err != nil || ok {
		t.Fatalf("GetItem(missing) = ok %t err %v, want absent", ok, err)
	}
	if err := store.SetItem(ctx, "user", `{"id":1}`); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	if err := store.SetItem(ctx, "user", `{"id":2}`); err != nil {
		t.Fatalf("SetItem(overwrite) error = %v", err)
	}
	value, ok, err := store.GetItem(ctx, "user")
	if err != nil || !ok {
		t.Fatalf("GetItem() = ok %t err %v", ok, err)
	}
	if value != `{"id":2}` {
		t.Fatalf("value = %q, want %q", value, `{"id":2}`)
	}
	if err := store.RemoveItem(ctx, "user"); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if err := store.RemoveItem(ctx, "user"); err != nil {
		t.Fatalf("RemoveItem(missing) error = %v", err)
	}
	if _, ok, _ := store.GetItem(ctx, "user"); ok {
		t.Fatal("expected item removed")
	}
}

func TestItemsSurviveReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "eventboard.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.SetItem(context.Background(), "user", "persisted"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	value, ok, err := reopened.GetItem(context.Background(), "user")
	if err != nil || !ok || value != "persisted" {
		t.Fatalf("GetItem() = %q ok %t err %v", value, ok, err)
	}
}

func TestNilStoreIsNotConfigured(t *testing.T) {
	t.Parallel()

	var store *Store
	if _, _, err := store.GetItem(context.Background(), "user"); err == nil {
		t.Fatal("expected not configured error")
	}
	if err := store.SetItem(context.Background(), "user", "x"); err == nil {
		t.Fatal("expected not configured error")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestEmptyKeyRejected(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	if err := store.SetItem(context.Background(), " ", "x"); err == nil {
		t.Fatal("expected key error")
	}
}
