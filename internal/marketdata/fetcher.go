// Package marketdata retrieves daily OHLCV history for ticker symbols from
// Yahoo Finance (library or raw chart API) or from the local bar store.
package marketdata

import (
	"context"
	"strings"

	"github.com/guttosm/portfolio-stats/internal/domain/errs"
	"github.com/guttosm/portfolio-stats/internal/domain/models"
)

// MsgNoData is returned when nothing usable came back for a whole request.
const MsgNoData = "No valid stock data fetched."

// Fetcher returns the daily history of each symbol over window.
//
// Partial results are returned as-is; symbols that failed are absent from the
// map. When no symbol yields any bar the error is a data-unavailable error.
type Fetcher interface {
	Fetch(ctx context.Context, symbols []string, window Window) (map[string]models.Series, error)
}

// uniqueSymbols drops blanks and repeats while keeping first-seen order.
func uniqueSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// finish drops empty series and reports DataUnavailable when nothing is left.
func finish(out map[string]models.Series, cause error) (map[string]models.Series, error) {
	for sym, s := range out {
		if len(s.Bars) == 0 {
			delete(out, sym)
		}
	}
	if len(out) == 0 {
		return nil, errs.NewDataUnavailable(MsgNoData, cause)
	}
	return out, nil
}
