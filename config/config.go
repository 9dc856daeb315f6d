package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported price sources.
const (
	SourceYFinance = "yfinance"
	SourceChart    = "chart"
	SourcePostgres = "postgres"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, market data retrieval and the optional Postgres bar store.
//
// Example YAML/ENV equivalent:
//
//	SERVER_PORT=8080
//	LOG_LEVEL=info
//	PRICE_SOURCE=yfinance
//	LOOKBACK_PERIOD=1y
//	LATEST_PERIOD=5d
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=portfolio
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Log      LogConfig      // Logger level and format
	Market   MarketConfig   // Price source settings
	Postgres PostgresConfig // PostgreSQL connection settings (bar store)
}

// ServerConfig holds HTTP server settings.
//
// Fields:
//   - Port: TCP port the HTTP server listens on (e.g., "8080").
//   - RequestTimeout: deadline attached to every request context.
//   - RateLimitPerMinute: per-client request budget; 0 disables limiting.
//   - ExposeErrorDetails: when false, 5xx bodies carry a generic message only.
type ServerConfig struct {
	Port               string
	RequestTimeout     time.Duration
	RateLimitPerMinute int
	ExposeErrorDetails bool
}

// LogConfig controls the global zerolog logger.
type LogConfig struct {
	Level  string
	Pretty bool
}

// MarketConfig selects and tunes the price source.
//
// Fields:
//   - Source: yfinance | chart | postgres.
//   - LookbackPeriod: window used for statistics (default "1y").
//   - LatestPeriod: window used for the latest bar (default "5d").
//   - ChartBaseURL: host of the Yahoo chart API (chart source only).
//   - FetchTimeout: per-request HTTP timeout (chart source only).
//   - FetchConcurrency: parallel symbol requests (chart source only).
//   - CalendarMIC: exchange calendar for trading-day windows (postgres source).
type MarketConfig struct {
	Source           string
	LookbackPeriod   string
	LatestPeriod     string
	ChartBaseURL     string
	FetchTimeout     time.Duration
	FetchConcurrency int
	CalendarMIC      string
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() will terminate
//     the app with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 60)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	viper.SetDefault("EXPOSE_ERROR_DETAILS", true)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)

	viper.SetDefault("PRICE_SOURCE", SourceYFinance)
	viper.SetDefault("LOOKBACK_PERIOD", "1y")
	viper.SetDefault("LATEST_PERIOD", "5d")
	viper.SetDefault("CHART_BASE_URL", "https://query1.finance.yahoo.com")
	viper.SetDefault("FETCH_TIMEOUT_SECONDS", 15)
	viper.SetDefault("FETCH_CONCURRENCY", 4)
	viper.SetDefault("CALENDAR_MIC", "xnys")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "portfolio")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			RequestTimeout:     time.Duration(viper.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
			ExposeErrorDetails: viper.GetBool("EXPOSE_ERROR_DETAILS"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
		Market: MarketConfig{
			Source:           strings.ToLower(strings.TrimSpace(viper.GetString("PRICE_SOURCE"))),
			LookbackPeriod:   viper.GetString("LOOKBACK_PERIOD"),
			LatestPeriod:     viper.GetString("LATEST_PERIOD"),
			ChartBaseURL:     viper.GetString("CHART_BASE_URL"),
			FetchTimeout:     time.Duration(viper.GetInt("FETCH_TIMEOUT_SECONDS")) * time.Second,
			FetchConcurrency: viper.GetInt("FETCH_CONCURRENCY"),
			CalendarMIC:      viper.GetString("CALENDAR_MIC"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	// Construct Postgres DSN (used by database/sql)
	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// UsesPostgres reports whether request handling reads from the bar store.
func (c Config) UsesPostgres() bool {
	return c.Market.Source == SourcePostgres
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing or invalid.
func validateConfig() {
	if problems := checkConfig(AppConfig); len(problems) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", problems)
	}
}

// checkConfig lists every missing or invalid key of cfg.
func checkConfig(cfg Config) []string {
	var problems []string

	if cfg.Server.Port == "" {
		problems = append(problems, "SERVER_PORT")
	}
	if cfg.Server.RequestTimeout <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT_SECONDS")
	}
	if cfg.Server.RateLimitPerMinute < 0 {
		problems = append(problems, "RATE_LIMIT_PER_MINUTE")
	}
	switch cfg.Market.Source {
	case SourceYFinance, SourceChart, SourcePostgres:
	default:
		problems = append(problems, "PRICE_SOURCE")
	}
	if cfg.Market.LookbackPeriod == "" {
		problems = append(problems, "LOOKBACK_PERIOD")
	}
	if cfg.Market.LatestPeriod == "" {
		problems = append(problems, "LATEST_PERIOD")
	}
	if cfg.Market.Source == SourceChart && cfg.Market.ChartBaseURL == "" {
		problems = append(problems, "CHART_BASE_URL")
	}
	if cfg.Postgres.Host == "" {
		problems = append(problems, "POSTGRES_HOST")
	}
	if cfg.Postgres.Port == 0 {
		problems = append(problems, "POSTGRES_PORT")
	}
	if cfg.Postgres.User == "" {
		problems = append(problems, "POSTGRES_USER")
	}
	if cfg.Postgres.Password == "" {
		problems = append(problems, "POSTGRES_PASSWORD")
	}
	if cfg.Postgres.DBName == "" {
		problems = append(problems, "POSTGRES_DB")
	}

	return problems
}
