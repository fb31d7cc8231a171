// Package mcp parses MCP command flags and serves the listing tools over stdio.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/eventboard/internal/platform/cmd"
	"github.com/louisbranch/eventboard/internal/services/events/app"
	"github.com/louisbranch/eventboard/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	GatewayURL     string        `env:"EVENTBOARD_GATEWAY_URL"     envDefault:"http://localhost:3000"`
	GatewayTimeout time.Duration `env:"EVENTBOARD_GATEWAY_TIMEOUT" envDefault:"10s"`
	StoragePath    string        `env:"EVENTBOARD_MCP_STORAGE_PATH" envDefault:"data/eventboard-mcp.db"`
	PageSize       int           `env:"EVENTBOARD_PAGE_SIZE"       envDefault:"5"`
	MaxButtons     int           `env:"EVENTBOARD_MAX_BUTTONS"     envDefault:"5"`
	Username       string        `env:"EVENTBOARD_MCP_USERNAME"`
	Password       string        `env:"EVENTBOARD_MCP_PASSWORD"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.GatewayURL, "gateway-url", cfg.GatewayURL, "Remote data gateway base URL")
	fs.DurationVar(&cfg.GatewayTimeout, "gateway-timeout", cfg.GatewayTimeout, "Per-request gateway timeout")
	fs.StringVar(&cfg.StoragePath, "storage-path", cfg.StoragePath, "Durable session storage file")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "Events per page")
	fs.IntVar(&cfg.MaxButtons, "max-buttons", cfg.MaxButtons, "Pagination buttons tracked")
	fs.StringVar(&cfg.Username, "username", cfg.Username, "Sign in as this user before serving")
}

// Run serves MCP over stdio until the client disconnects or ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		runtime, err := app.New(app.Config{
			GatewayURL:     cfg.GatewayURL,
			GatewayTimeout: cfg.GatewayTimeout,
			StoragePath:    cfg.StoragePath,
			PageSize:       cfg.PageSize,
			MaxButtons:     cfg.MaxButtons,
			Logger:         log.Default(),
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := runtime.Close(); err != nil {
				log.Printf("close runtime err=%v", err)
			}
		}()

		if username := strings.TrimSpace(cfg.Username); username != "" {
			if _, err := runtime.Sessions.Login(ctx, username, cfg.Password); err != nil {
				return fmt.Errorf("sign in %s: %w", username, err)
			}
			log.Printf("mcp signed in username=%s", username)
		}

		return service.Run(ctx, service.Config{Listing: runtime.Listing})
	})
}
