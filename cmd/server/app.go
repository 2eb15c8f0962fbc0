package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/mythwell/field-api/internal/config"
	"github.com/mythwell/field-api/internal/domain/symbolic"
	"github.com/mythwell/field-api/internal/platform/postgres"
	"github.com/mythwell/field-api/internal/service"
	"github.com/mythwell/field-api/internal/service/auth"
	"github.com/mythwell/field-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	entryStore store.EntryStore

	jwtService       auth.JWTService
	analyticsService service.AnalyticsService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies that must be established
// before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	app.entryStore = postgres.NewPostgresEntryStore(db, logger)

	params := symbolic.NewDefaultParams()
	params.MinContributors = cfg.Analytics.MinContributors

	app.analyticsService, err = service.NewAnalyticsService(
		app.entryStore,
		params,
		time.Duration(cfg.Analytics.CacheTTLSeconds)*time.Second,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
