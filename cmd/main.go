package main

//
//  @title           portfolio-stats API
//  @version         1.0
//  @description     Equal-weight portfolio statistics from one year of daily prices.
//  @termsOfService  https://github.com/guttosm/portfolio-stats
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/portfolio-stats
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        portfolio
//  @tag.description Portfolio statistics and supported companies
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/guttosm/portfolio-stats/config"
	_ "github.com/guttosm/portfolio-stats/docs" // swagger docs
	"github.com/guttosm/portfolio-stats/internal/app"
	"github.com/guttosm/portfolio-stats/internal/ingestion"
	"github.com/guttosm/portfolio-stats/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//   - writeTimeout (time.Duration): Upper bound for writing a response; must exceed the request timeout.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string, writeTimeout time.Duration) *http.Server {
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// parseSymbols splits a comma separated ticker list, dropping blanks.
func parseSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// main is the entry point of the portfolio-stats application.
//
// Modes (selected via --mode flag):
//   - api:    Starts the REST API that computes portfolio statistics.
//   - ingest: Loads <SYMBOL>.csv daily price exports into the Postgres bar store.
//
// Flags:
//   - --mode:     Execution mode ("api" or "ingest"). Default: "api".
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
//   - --dir:      Directory containing .csv input files. Default: "./data/input".
//   - --symbols:  Comma separated tickers to import; empty imports every .csv in --dir.
//   - --parallel: Files processed concurrently (0=auto up to CPU, max 8).
//   - --force:    Re-import symbols already present in the import log.
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Configure(config.AppConfig.Log.Level, config.AppConfig.Log.Pretty)

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or ingest")
	dir := flag.String("dir", "./data/input", "Directory with <SYMBOL>.csv files")
	syms := flag.String("symbols", "", "Comma separated tickers to ingest (default: every .csv in --dir)")
	parallel := flag.Int("parallel", 0, "How many files to process concurrently (0=auto up to CPU, max 8)")
	force := flag.Bool("force", false, "Re-import symbols even if already ingested (deletes existing bars for that symbol)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "ingest":
		// Ingestion mode: load CSV exports into the bar store
		logger.L().Info().Str("dir", *dir).Msg("running ingestion")

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := ingestion.ProcessDirectory(ctx, *dir, db, parseSymbols(*syms), *parallel, *force); err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case "api":
		logger.L().Info().Str("source", config.AppConfig.Market.Source).Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port, config.AppConfig.Server.RequestTimeout+5*time.Second)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
