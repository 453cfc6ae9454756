package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/bcmenu/benglish-api/internal/config"
	"github.com/bcmenu/benglish-api/internal/platform/media"
	"github.com/bcmenu/benglish-api/internal/platform/postgres"
	"github.com/bcmenu/benglish-api/internal/service/auth"
	"github.com/bcmenu/benglish-api/internal/service/mailer"
	"github.com/bcmenu/benglish-api/internal/service/progress"
	"github.com/bcmenu/benglish-api/internal/service/review"
	"github.com/bcmenu/benglish-api/internal/store"
)

// application holds the shared application dependencies so wiring and
// cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore     store.UserStore
	categoryStore store.CategoryStore
	progressStore store.ProgressStore
	dailyStore    store.DailyProgressStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	passwordHasher   auth.PasswordHasher
	resetTokens      auth.ResetTokenGenerator
	progressService  progress.ProgressService
	reviewService    review.ReviewService
	mailer           mailer.Mailer
	uploader         media.Uploader
}

// newApplication creates an application instance with all dependencies
// initialized. Configuration, logging, and the database connection must be
// established by the caller.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()
	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.resetTokens = auth.NewResetTokenGenerator()

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.categoryStore = postgres.NewPostgresCategoryStore(db, logger)
	app.progressStore = postgres.NewPostgresProgressStore(db, logger)
	app.dailyStore = postgres.NewPostgresDailyProgressStore(db, logger)

	app.progressService = progress.NewProgressService(
		app.categoryStore,
		app.progressStore,
		app.dailyStore,
		logger,
	)
	app.reviewService = review.NewReviewService(
		app.progressStore,
		cfg.Review.MaxBatchSize,
		logger,
	)

	app.mailer = mailer.NewRelayMailer(cfg.Mail, logger)

	app.uploader, err = media.NewLocalUploader(cfg.Media.Dir, cfg.Media.BaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize media storage: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
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
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
