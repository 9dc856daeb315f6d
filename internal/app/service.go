package app

import (
	"fmt"

	"github.com/guttosm/portfolio-stats/config"
	"github.com/guttosm/portfolio-stats/internal/marketdata"
	"github.com/guttosm/portfolio-stats/internal/storage"
)

// newFetcher builds the price source selected by cfg.Market.Source.
// repo is only used, and must be non-nil, for the postgres source.
func newFetcher(cfg config.Config, repo storage.BarsRepository) (marketdata.Fetcher, error) {
	switch cfg.Market.Source {
	case config.SourceYFinance, "":
		return marketdata.NewYFinance(), nil
	case config.SourceChart:
		return marketdata.NewChart(marketdata.ChartConfig{
			BaseURL:     cfg.Market.ChartBaseURL,
			Timeout:     cfg.Market.FetchTimeout,
			Concurrency: cfg.Market.FetchConcurrency,
			AutoAdjust:  true,
		}), nil
	case config.SourcePostgres:
		if repo == nil {
			return nil, fmt.Errorf("postgres source requires a bar store")
		}
		return marketdata.NewPostgres(repo, marketdata.NewTradingCalendar(cfg.Market.CalendarMIC)), nil
	default:
		return nil, fmt.Errorf("unknown price source %q", cfg.Market.Source)
	}
}

// windows parses the configured lookback and latest periods.
func windows(cfg config.Config) (lookback, latest marketdata.Window, err error) {
	lookback, err = marketdata.ParseWindow(cfg.Market.LookbackPeriod)
	if err != nil {
		return "", "", fmt.Errorf("lookback period: %w", err)
	}
	latest, err = marketdata.ParseWindow(cfg.Market.LatestPeriod)
	if err != nil {
		return "", "", fmt.Errorf("latest period: %w", err)
	}
	return lookback, latest, nil
}
