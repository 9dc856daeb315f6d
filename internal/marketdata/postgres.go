package marketdata

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/portfolio-stats/internal/domain/models"
	"github.com/guttosm/portfolio-stats/internal/logger"
	"github.com/guttosm/portfolio-stats/internal/storage"
)

// Postgres serves daily bars from the local bar store filled by the ingest mode.
type Postgres struct {
	repo storage.BarsRepository
	cal  *TradingCalendar
	now  func() time.Time
	log  zerolog.Logger
}

func NewPostgres(repo storage.BarsRepository, cal *TradingCalendar) *Postgres {
	return &Postgres{
		repo: repo,
		cal:  cal,
		now:  time.Now,
		log:  logger.Component("fetcher.postgres"),
	}
}

// Fetch reads every symbol in one query starting at the window's first date.
func (p *Postgres) Fetch(ctx context.Context, symbols []string, window Window) (map[string]models.Series, error) {
	syms := uniqueSymbols(symbols)
	out := make(map[string]models.Series, len(syms))
	if len(syms) == 0 {
		return finish(out, nil)
	}

	now := p.now().In(p.cal.location())
	from := window.Start(now, p.cal)
	// stored dates carry no zone
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)

	rows, err := p.repo.GetDailyBars(ctx, syms, from)
	if err != nil {
		p.log.Error().Err(err).Strs("symbols", syms).Msg("bar store query failed")
		return finish(out, err)
	}
	for _, sym := range syms {
		if bars := rows[sym]; len(bars) > 0 {
			out[sym] = models.Series{Symbol: sym, Bars: bars}
			continue
		}
		p.log.Warn().Str("symbol", sym).Time("from", from).Msg("no stored bars for symbol")
	}
	return finish(out, nil)
}
