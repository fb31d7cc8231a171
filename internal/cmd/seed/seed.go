// Package seed parses fixture generator flags and writes a gateway database file.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	entrypoint "github.com/louisbranch/eventboard/internal/platform/cmd"
	"github.com/louisbranch/eventboard/internal/tools/seed"
)

// Config holds seed command configuration.
type Config struct {
	Output  string `env:"EVENTBOARD_SEED_OUTPUT" envDefault:"db.json"`
	Events  int    `env:"EVENTBOARD_SEED_EVENTS" envDefault:"1000"`
	Seed    int64  `env:"EVENTBOARD_SEED"`
	Verbose bool   `env:"EVENTBOARD_SEED_VERBOSE"`
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
	fs.StringVar(&cfg.Output, "out", cfg.Output, "output file (- for stdout)")
	fs.IntVar(&cfg.Events, "events", cfg.Events, "number of events to generate")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for reproducibility (0 = random)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose output")
}

// Run generates the fixture and writes it to cfg.Output.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var seedOut io.Writer
	if cfg.Verbose {
		seedOut = errOut
	}
	rng := seed.NewSeededRNG(cfg.Seed, seedOut)
	fixture, err := seed.Generate(rng, seed.Options{Events: cfg.Events})
	if err != nil {
		return err
	}

	output := strings.TrimSpace(cfg.Output)
	if output == "" || output == "-" {
		return seed.Write(out, fixture)
	}
	if err := writeFile(output, fixture); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d events and %d users to %s\n", len(fixture.Events), len(fixture.Users), output)
	return nil
}

func writeFile(path string, fixture seed.Fixture) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := seed.Write(file, fixture); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
