// Package app wires the gateway client, durable session storage and listing
// engine shared by the web and MCP processes.
package app

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/eventboard/internal/services/events/gateway"
	"github.com/louisbranch/eventboard/internal/services/events/listing"
	"github.com/louisbranch/eventboard/internal/services/events/session"
	eventsqlite "github.com/louisbranch/eventboard/internal/services/events/storage/sqlite"
)

// Config holds the runtime inputs for one client stack.
type Config struct {
	GatewayURL     string
	GatewayTimeout time.Duration
	StoragePath    string
	PageSize       int
	MaxButtons     int
	Logger         *log.Logger
}

// Runtime owns the long-lived client components.
type Runtime struct {
	Gateway  *gateway.Client
	Sessions *session.Store
	Listing  *listing.Engine
	store    *eventsqlite.Store
}

// New opens storage and builds the client components.
func New(cfg Config) (*Runtime, error) {
	if strings.TrimSpace(cfg.StoragePath) == "" {
		return nil, errors.New("storage path is required")
	}
	gw, err := gateway.New(gateway.Config{
		BaseURL: cfg.GatewayURL,
		Timeout: cfg.GatewayTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init gateway client: %w", err)
	}

	store, err := eventsqlite.Open(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}

	sessions, err := session.New(gw, store)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init session store: %w", err)
	}

	engine, err := listing.New(gw, listing.Options{
		PageSize:   cfg.PageSize,
		MaxButtons: cfg.MaxButtons,
		Identity:   sessions,
		Logger:     cfg.Logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init listing engine: %w", err)
	}

	return &Runtime{
		Gateway:  gw,
		Sessions: sessions,
		Listing:  engine,
		store:    store,
	}, nil
}

// Close releases durable storage.
func (r *Runtime) Close() error {
	if r == nil || r.store == nil {
		return nil
	}
	if err := r.store.Close(); err != nil {
		return fmt.Errorf("close session storage: %w", err)
	}
	return nil
}
