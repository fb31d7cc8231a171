package mcp

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/eventboard/internal/testkit/jsonserver"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("EVENTBOARD_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.GatewayURL != "http://localhost:3000" {
		t.Fatalf("expected default gateway url, got %q", cfg.GatewayURL)
	}
	if cfg.StoragePath != "data/eventboard-mcp.db" {
		t.Fatalf("expected default storage path, got %q", cfg.StoragePath)
	}
	if cfg.GatewayTimeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.GatewayTimeout)
	}
	if cfg.Username != "" {
		t.Fatalf("expected no default username, got %q", cfg.Username)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("EVENTBOARD_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("EVENTBOARD_GATEWAY_URL", "http://env-gateway:3000")
	t.Setenv("EVENTBOARD_MCP_PASSWORD", "admin123")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	args := []string{"-username", "admin", "-page-size", "3"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.GatewayURL != "http://env-gateway:3000" {
		t.Fatalf("expected env gateway url, got %q", cfg.GatewayURL)
	}
	if cfg.Username != "admin" || cfg.Password != "admin123" {
		t.Fatalf("expected admin credentials, got %q/%q", cfg.Username, cfg.Password)
	}
	if cfg.PageSize != 3 {
		t.Fatalf("expected flag page size, got %d", cfg.PageSize)
	}
}

func TestRunRejectsBadCredentials(t *testing.T) {
	t.Setenv("EVENTBOARD_OTEL_ENABLED", "false")
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	fake := jsonserver.New(jsonserver.Users(), jsonserver.Events(1))
	t.Cleanup(fake.Close)

	cfg := Config{
		GatewayURL:  fake.URL(),
		StoragePath: filepath.Join(t.TempDir(), "mcp.db"),
		Username:    "admin",
		Password:    "wrong",
	}
	if err := Run(context.Background(), cfg); err == nil {
		t.Fatal("expected sign-in error")
	}
}
