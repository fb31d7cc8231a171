// Package eventboard parses client flags and launches the browser-facing client.
package eventboard

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	entrypoint "github.com/louisbranch/eventboard/internal/platform/cmd"
	"github.com/louisbranch/eventboard/internal/services/events/app"
	"github.com/louisbranch/eventboard/internal/services/web"
)

// Config holds client command configuration.
type Config struct {
	HTTPAddr       string        `env:"EVENTBOARD_HTTP_ADDR"       envDefault:"localhost:8094"`
	GatewayURL     string        `env:"EVENTBOARD_GATEWAY_URL"     envDefault:"http://localhost:3000"`
	GatewayTimeout time.Duration `env:"EVENTBOARD_GATEWAY_TIMEOUT" envDefault:"10s"`
	StoragePath    string        `env:"EVENTBOARD_STORAGE_PATH"    envDefault:"data/eventboard.db"`
	PageSize       int           `env:"EVENTBOARD_PAGE_SIZE"       envDefault:"5"`
	MaxButtons     int           `env:"EVENTBOARD_MAX_BUTTONS"     envDefault:"5"`
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
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.GatewayURL, "gateway-url", cfg.GatewayURL, "Remote data gateway base URL")
	fs.DurationVar(&cfg.GatewayTimeout, "gateway-timeout", cfg.GatewayTimeout, "Per-request gateway timeout")
	fs.StringVar(&cfg.StoragePath, "storage-path", cfg.StoragePath, "Durable session storage file")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "Events per page")
	fs.IntVar(&cfg.MaxButtons, "max-buttons", cfg.MaxButtons, "Pagination buttons shown")
}

// Run starts the web client until ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceClient, func(ctx context.Context) error {
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

		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr: cfg.HTTPAddr,
			Listing:  runtime.Listing,
			Sessions: runtime.Sessions,
			Logger:   log.Default(),
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		log.Printf("web listening addr=%s gateway=%s", server.Addr(), cfg.GatewayURL)
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
