package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/guttosm/portfolio-stats/internal/domain/dto"
	"github.com/guttosm/portfolio-stats/internal/domain/errs"
	"github.com/guttosm/portfolio-stats/internal/domain/models"
	"github.com/guttosm/portfolio-stats/internal/logger"
	"github.com/guttosm/portfolio-stats/internal/marketdata"
	"github.com/guttosm/portfolio-stats/internal/portfolio"
	"github.com/guttosm/portfolio-stats/internal/symbols"
)

// OptimizeService computes equal-weight portfolio statistics for a list of
// company names. This decouples HTTP handlers from data access.
type OptimizeService interface {
	Optimize(ctx context.Context, req dto.OptimizeRequest) (*dto.OptimizeResponse, error)
	Companies() []string
}

type optimizeService struct {
	fetcher  marketdata.Fetcher
	lookback marketdata.Window
	latest   marketdata.Window
	log      zerolog.Logger
}

// NewOptimizeService wires the service to a price source. lookback is the
// statistics window, latest the window searched for the most recent bar.
func NewOptimizeService(fetcher marketdata.Fetcher, lookback, latest marketdata.Window) OptimizeService {
	return &optimizeService{
		fetcher:  fetcher,
		lookback: lookback,
		latest:   latest,
		log:      logger.Component("service.optimize"),
	}
}

// Optimize runs resolve, fetch, statistics, latest-bar fetch and assembly in
// sequence. Every failure is a typed *errs.Error.
func (s *optimizeService) Optimize(ctx context.Context, req dto.OptimizeRequest) (*dto.OptimizeResponse, error) {
	tickers, err := symbols.Resolve(req.Companies)
	if err != nil {
		return nil, err
	}
	s.log.Debug().
		Strs("tickers", tickers).
		Int("k", req.KOrDefault()).
		Float64("lambda", req.LambdaOrDefault()).
		Msg("resolved companies")

	history, err := s.fetcher.Fetch(ctx, tickers, s.lookback)
	if err != nil {
		return nil, asDataUnavailable(err, marketdata.MsgNoData)
	}

	stats, err := portfolio.Calculate(tickers, history)
	if err != nil {
		return nil, err
	}

	ref := tickers[0]
	recent, err := s.fetcher.Fetch(ctx, []string{ref}, s.latest)
	if err != nil {
		return nil, latestUnavailable(err, ref)
	}
	series, ok := recent[ref]
	if !ok {
		series = models.Series{Symbol: ref}
	}
	bar, err := portfolio.LatestBar(series)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Strs("tickers", tickers).
		Int("observations", stats.Observations).
		Float64("expected_return", stats.ExpectedReturn).
		Float64("risk", stats.Risk).
		Msg("portfolio computed")

	return Assemble(req.Companies, bar, stats), nil
}

// Companies lists the supported company names.
func (s *optimizeService) Companies() []string {
	return symbols.Names()
}

// asDataUnavailable keeps typed errors and classifies untyped fetch failures.
// Context errors pass through untouched.
func asDataUnavailable(err error, msg string) error {
	var typed *errs.Error
	if errors.As(err, &typed) || ctxErr(err) {
		return err
	}
	return errs.NewDataUnavailable(msg, err)
}

// latestUnavailable reports a failed latest-window fetch under the reference
// symbol. A data-unavailable error from the fetcher is re-labelled but keeps
// its underlying cause; other typed and context errors pass through.
func latestUnavailable(err error, ref string) error {
	msg := fmt.Sprintf("No data available for %s.", ref)
	var typed *errs.Error
	if errors.As(err, &typed) && typed.Kind == errs.DataUnavailable {
		return errs.NewDataUnavailable(msg, typed.Err)
	}
	return asDataUnavailable(err, msg)
}

func ctxErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
