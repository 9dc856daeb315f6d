package app

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/portfolio-stats/config"
	"github.com/guttosm/portfolio-stats/internal/api"
	"github.com/guttosm/portfolio-stats/internal/logger"
	"github.com/guttosm/portfolio-stats/internal/service"
	"github.com/guttosm/portfolio-stats/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Parses the lookback and latest windows.
//   - Connects to PostgreSQL using InitPostgres(), only for the postgres price source.
//   - Builds the configured price fetcher and the optimize service.
//   - Creates the HTTP handler layer and the Gin router.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	lookback, latest, err := windows(cfg)
	if err != nil {
		return nil, nil, err
	}

	// Connect to PostgreSQL only when it backs the price source
	var (
		db   *sql.DB
		repo storage.BarsRepository
	)
	if cfg.UsesPostgres() {
		// indirection for unit testing
		db, err = postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		repo = storage.NewBarsRepository(db)
	}

	fetcher, err := newFetcher(cfg, repo)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, nil, err
	}

	// Initialize service layer (business logic)
	svc := service.NewOptimizeService(fetcher, lookback, latest)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc)

	// Setup Gin router with routes
	router := api.NewRouter(handler, api.RouterOptions{
		RequestTimeout:     cfg.Server.RequestTimeout,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		ExposeErrorDetails: cfg.Server.ExposeErrorDetails,
	})

	// Register health and readiness probes
	var ping api.Pinger
	if repo != nil {
		ping = repo.Ping
	}
	api.NewHealthHandler(cfg.Market.Source, ping).Register(router)

	logger.L().Info().
		Str("source", cfg.Market.Source).
		Str("lookback", lookback.String()).
		Str("latest", latest.String()).
		Msg("app initialized")

	// Cleanup resources on shutdown
	cleanup := func() {
		if db != nil {
			_ = db.Close()
		}
	}

	return router, cleanup, nil
}
