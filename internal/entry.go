// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/maqam/internal/api"
	"github.com/starford/maqam/internal/catalog"
	"github.com/starford/maqam/internal/classifier"
	"github.com/starford/maqam/internal/mcpserver"
	"github.com/starford/maqam/internal/metrics"
	"github.com/starford/maqam/internal/models"
	"github.com/starford/maqam/internal/seed"
	"github.com/starford/maqam/internal/storage"
	"github.com/starford/maqam/internal/store"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{logOutput: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if app.resetSeed {
		app.config.Seed.Reset = true
	}
	return app, nil
}

// newLogger initializes the structured JSON logger and installs it as the default.
func (a *application) newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(a.logOutput, &slog.HandlerOptions{
		Level: a.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// components are the pieces shared by every command.
type components struct {
	db         *store.DB
	classifier *classifier.Classifier
	svc        *catalog.Service
}

func (a *application) open(ctx context.Context, logger *slog.Logger) (*components, error) {
	loc, err := a.config.Classifier.Location()
	if err != nil {
		return nil, fmt.Errorf("classifier timezone: %w", err)
	}
	db, err := store.Open(ctx, a.config.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	logger.Info("Content store opened", slog.String("dialect", string(db.Dialect())))

	c := classifier.New(db, classifier.WithLocation(loc), classifier.WithLogger(logger))
	return &components{db: db, classifier: c, svc: catalog.NewService(db, c)}, nil
}

func (a *application) seed(ctx context.Context, db *store.DB, logger *slog.Logger) (seed.Report, error) {
	ds, err := seed.LoadFile(a.config.Seed.DatasetPath)
	if err != nil {
		return seed.Report{}, err
	}
	r := seed.New(db, ds, seed.WithLogger(logger))
	return r.Run(ctx, seed.Options{Reset: a.config.Seed.Reset})
}

// Run starts the HTTP service with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.newLogger()

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("media_path", cfg.Media.Path),
		slog.String("classifier_schedule", cfg.Classifier.Schedule),
		slog.Bool("seed_reset", cfg.Seed.Reset),
		slog.String("log_level", cfg.App.LogLevel.String()))

	c, err := app.open(ctx, logger)
	if err != nil {
		return err
	}
	defer c.db.Close()

	// Seeding failures leave the affected kinds empty; the service still starts.
	report, err := app.seed(ctx, c.db, logger)
	if err != nil {
		logger.Error("Seeding incomplete, continuing", slog.String("error", err.Error()))
	} else {
		logger.Info("Seeding finished",
			slog.Int("inserted", report.Inserted()),
			slog.String("dataset_checksum", report.Checksum))
	}

	if _, err := c.svc.ReclassifyEvents(ctx, models.Date{}, classifier.TriggerStartup); err != nil {
		logger.Warn("startup reclassification failed", slog.String("error", err.Error()))
	}

	var scheduler *classifier.Scheduler
	if cfg.Classifier.Schedule != "" {
		scheduler, err = classifier.NewScheduler(c.classifier, cfg.Classifier.Schedule)
		if err != nil {
			return err
		}
	}

	handler, err := newRouter(cfg, c.svc)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	if scheduler != nil {
		g.Go(func() error {
			return scheduler.Run(gCtx)
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		// Unblocks the scheduler when shutdown came from a signal.
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

var errShutdown = errors.New("shutdown")

// newRouter builds the HTTP handler tree.
func newRouter(cfg *Config, svc *catalog.Service) (http.Handler, error) {
	media, err := storage.NewFS(cfg.Media.Path)
	if err != nil {
		return nil, fmt.Errorf("init media store: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(api.CORS(cfg.CORS.AllowedOrigins))

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := svc.Ready(req.Context()); err != nil {
			slog.Warn("readiness check failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	photos := api.NewPhotoHandler(media)
	r.Get("/photos/{filename}", photos.ServeFile)

	requests := cfg.RateLimit.Requests
	if cfg.RateLimit.Disabled {
		requests = 0
	}
	r.Route("/api", func(r chi.Router) {
		r.Use(api.RateLimit(requests, cfg.RateLimit.Window))
		r.Mount("/", api.NewRouter(svc, photos))
	})

	return r, nil
}

// Seed runs the seed reconciler once and returns its report.
func Seed(ctx context.Context, opts ...Option) (seed.Report, error) {
	app, err := newApplication(opts)
	if err != nil {
		return seed.Report{}, err
	}
	logger := app.newLogger()
	c, err := app.open(ctx, logger)
	if err != nil {
		return seed.Report{}, err
	}
	defer c.db.Close()
	return app.seed(ctx, c.db, logger)
}

// Reclassify runs one classifier pass for date, or for today when date is zero.
func Reclassify(ctx context.Context, date models.Date, opts ...Option) (store.ReclassifyResult, error) {
	app, err := newApplication(opts)
	if err != nil {
		return store.ReclassifyResult{}, err
	}
	logger := app.newLogger()
	c, err := app.open(ctx, logger)
	if err != nil {
		return store.ReclassifyResult{}, err
	}
	defer c.db.Close()
	return c.svc.ReclassifyEvents(ctx, date, classifier.TriggerAdmin)
}

// ServeMCP serves the catalog tools over stdio until the client disconnects.
// Logs go to stderr so they do not corrupt the protocol stream.
func ServeMCP(ctx context.Context, version string, opts ...Option) error {
	app, err := newApplication(append(opts, WithLogOutput(os.Stderr)))
	if err != nil {
		return err
	}
	logger := app.newLogger()
	c, err := app.open(ctx, logger)
	if err != nil {
		return err
	}
	defer c.db.Close()

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(c.svc, version).ServeStdio()
}
