package marketdata

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	yfmodels "github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/multi"
	"github.com/wnjoon/go-yfinance/pkg/ticker"

	"github.com/guttosm/portfolio-stats/internal/domain/models"
	"github.com/guttosm/portfolio-stats/internal/logger"
)

// yfDownload fetches several symbols in one batch; tests override it.
var yfDownload = func(symbols []string, period string) (map[string][]models.Bar, map[string]error, error) {
	params := yfmodels.DefaultDownloadParams()
	params.Symbols = symbols
	params.Period = period
	params.Interval = "1d"

	result, err := multi.Download(symbols, &params)
	if err != nil {
		return nil, nil, err
	}

	data := make(map[string][]models.Bar, len(result.Data))
	for sym, bars := range result.Data {
		out := make([]models.Bar, 0, len(bars))
		for _, b := range bars {
			out = append(out, toBar(b.Date, b.Open, b.High, b.Low, b.Close, int64(b.Volume)))
		}
		data[sym] = out
	}
	failed := make(map[string]error, len(result.Errors))
	for sym, e := range result.Errors {
		failed[sym] = fmt.Errorf("%v", e)
	}
	return data, failed, nil
}

// yfHistory fetches the history of a single symbol; tests override it.
var yfHistory = func(symbol, period string) ([]models.Bar, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return nil, fmt.Errorf("create ticker: %w", err)
	}
	defer t.Close()

	bars, err := t.History(yfmodels.HistoryParams{
		Period:     period,
		Interval:   "1d",
		AutoAdjust: true,
	})
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	out := make([]models.Bar, 0, len(bars))
	for _, b := range bars {
		out = append(out, toBar(b.Date, b.Open, b.High, b.Low, b.Close, int64(b.Volume)))
	}
	return out, nil
}

// YFinance fetches daily bars through the go-yfinance client.
type YFinance struct {
	log zerolog.Logger
}

func NewYFinance() *YFinance {
	return &YFinance{log: logger.Component("fetcher.yfinance")}
}

// Fetch downloads symbols in one batch, or through the ticker history
// endpoint when a single symbol is requested.
func (y *YFinance) Fetch(ctx context.Context, symbols []string, window Window) (map[string]models.Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	syms := uniqueSymbols(symbols)
	out := make(map[string]models.Series, len(syms))
	if len(syms) == 0 {
		return finish(out, nil)
	}

	if len(syms) == 1 {
		bars, err := yfHistory(syms[0], window.String())
		if err != nil {
			y.log.Warn().Err(err).Str("symbol", syms[0]).Str("window", window.String()).Msg("history failed")
			return finish(out, err)
		}
		out[syms[0]] = models.Series{Symbol: syms[0], Bars: bars}
		return finish(out, nil)
	}

	data, failed, err := yfDownload(syms, window.String())
	if err != nil {
		y.log.Error().Err(err).Strs("symbols", syms).Msg("batch download failed")
		return finish(out, err)
	}
	for _, sym := range syms {
		if bars, ok := data[sym]; ok && len(bars) > 0 {
			out[sym] = models.Series{Symbol: sym, Bars: bars}
			continue
		}
		if e, ok := failed[sym]; ok {
			y.log.Warn().Err(e).Str("symbol", sym).Msg("no data for symbol")
		}
	}
	y.log.Debug().Int("requested", len(syms)).Int("received", len(out)).Str("window", window.String()).Msg("batch download done")
	return finish(out, nil)
}

// toBar maps library bars, which use zero or NaN for missing values.
// Zero prices and NaN are treated as absent; volume zero is kept.
func toBar(date time.Time, o, h, l, c float64, volume int64) models.Bar {
	return models.Bar{
		Date:   date,
		Open:   present(o),
		High:   present(h),
		Low:    present(l),
		Close:  present(c),
		Volume: models.Int(volume),
	}
}

func present(v float64) *float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return models.Float(v)
}
