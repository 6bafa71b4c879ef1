package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/maqam/internal"
	"github.com/starford/maqam/internal/models"
	pkgconfig "github.com/starford/maqam/pkg/config"
)

var version = "dev"

// loadConfig reads the config file, falling back to defaults when it does not exist,
// then applies flag and environment overrides.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	found, err := pkgconfig.LoadOptional(configPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if !found {
		slog.Warn("config file not found, using defaults", slog.String("path", configPath))
	}

	if cmd.IsSet("dsn") {
		cfg.Database.DSN = cmd.String("dsn")
	}
	if cmd.IsSet("port") {
		cfg.App.HTTP.Port = int(cmd.Int("port"))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithResetSeed(cmd.Bool("reset-seed")),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func seedOnce(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	report, err := internal.Seed(ctx,
		internal.WithConfig(cfg),
		internal.WithResetSeed(cmd.Bool("reset")))
	if printErr := printJSON(report); printErr != nil {
		return printErr
	}
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

func reclassify(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	var date models.Date
	if raw := cmd.String("date"); raw != "" {
		if date, err = models.ParseDate(raw); err != nil {
			return err
		}
	}
	res, err := internal.Reclassify(ctx, date, internal.WithConfig(cfg))
	if err != nil {
		return fmt.Errorf("reclassify: %w", err)
	}
	return printJSON(res)
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.ServeMCP(ctx, version, internal.WithConfig(cfg))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	cmd := &cli.Command{
		Name:    "maqam",
		Usage:   "Content backend for a musician's website: biography, ensembles, events, videos and playlists",
		Version: version,
		Action:  serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "dsn",
				Usage:   "Database DSN (postgres://... or a SQLite file path); overrides the config file",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "HTTP port; overrides the config file",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.BoolFlag{
				Name:  "reset-seed",
				Usage: "Delete all content and reseed on startup (destructive)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Seed, classify events and serve the HTTP API (default)",
				Action: serve,
			},
			{
				Name:   "seed",
				Usage:  "Seed empty content kinds from the reference dataset and exit",
				Action: seedOnce,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "reset",
						Usage: "Delete all content before seeding (destructive)",
					},
				},
			},
			{
				Name:   "reclassify",
				Usage:  "Mark events as past or upcoming and print how many moved",
				Action: reclassify,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "date",
						Usage: "Reference date YYYY-MM-DD (default today)",
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve read-only catalog tools over MCP stdio",
				Action: serveMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
