// Package storage defines durable key/value storage for client state.
package storage

import "context"

// KeyValue persists string values by key, in the manner of browser local
// storage. A missing key is reported with ok=false and no error.
type KeyValue interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}
