package storage

import (
	"context"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	t.Parallel()

	var kv KeyValue = NewMemory()
	ctx := context.Background()
	if err := kv.SetItem(ctx, "user", "a"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	value, ok, err := kv.GetItem(ctx, "user")
	if err != nil || !ok || value != "a" {
		t.Fatalf("GetItem() = %q ok %t err %v", value, ok, err)
	}
	if err := kv.RemoveItem(ctx, "user"); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if _, ok, _ := kv.GetItem(ctx, "user"); ok {
		t.Fatal("expected item removed")
	}
}
