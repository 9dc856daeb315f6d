package marketdata

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/portfolio-stats/internal/domain/errs"
	"github.com/guttosm/portfolio-stats/internal/domain/models"
)

func stubYF(t *testing.T,
	download func([]string, string) (map[string][]models.Bar, map[string]error, error),
	history func(string, string) ([]models.Bar, error),
) {
	t.Helper()
	oldD, oldH := yfDownload, yfHistory
	if download != nil {
		yfDownload = download
	}
	if history != nil {
		yfHistory = history
	}
	t.Cleanup(func() { yfDownload, yfHistory = oldD, oldH })
}

func bars(n int) []models.Bar {
	out := make([]models.Bar, n)
	for i := range out {
		out[i] = models.Bar{Date: time.Date(2024, 10, 1+i, 0, 0, 0, 0, time.UTC), Close: models.Float(float64(100 + i))}
	}
	return out
}

func TestYFinance_BatchDownload(t *testing.T) {
	var gotSymbols []string
	var gotPeriod string
	stubYF(t, func(symbols []string, period string) (map[string][]models.Bar, map[string]error, error) {
		gotSymbols, gotPeriod = symbols, period
		return map[string][]models.Bar{"AAPL": bars(3), "MSFT": bars(2), "EMPTY": nil},
			map[string]error{"BAD": errors.New("delisted")}, nil
	}, nil)

	out, err := NewYFinance().Fetch(context.Background(), []string{"AAPL", "MSFT", "AAPL", "BAD", "EMPTY"}, Window1Y)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT", "BAD", "EMPTY"}, gotSymbols)
	assert.Equal(t, "1y", gotPeriod)
	assert.Len(t, out, 2)
	assert.Equal(t, 3, out["AAPL"].Len())
	assert.Equal(t, "MSFT", out["MSFT"].Symbol)
}

func TestYFinance_SingleSymbolUsesHistory(t *testing.T) {
	called := false
	stubYF(t, func([]string, string) (map[string][]models.Bar, map[string]error, error) {
		t.Fatal("batch download must not be used for one symbol")
		return nil, nil, nil
	}, func(symbol, period string) ([]models.Bar, error) {
		called = true
		assert.Equal(t, "AAPL", symbol)
		assert.Equal(t, "5d", period)
		return bars(5), nil
	})

	out, err := NewYFinance().Fetch(context.Background(), []string{"AAPL"}, Window5D)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 5, out["AAPL"].Len())
}

func TestYFinance_Failures(t *testing.T) {
	t.Run("batch error", func(t *testing.T) {
		stubYF(t, func([]string, string) (map[string][]models.Bar, map[string]error, error) {
			return nil, nil, errors.New("rate limited")
		}, nil)
		_, err := NewYFinance().Fetch(context.Background(), []string{"AAPL", "MSFT"}, Window1Y)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrDataUnavailable)
	})
	t.Run("history error", func(t *testing.T) {
		stubYF(t, nil, func(string, string) ([]models.Bar, error) { return nil, errors.New("boom") })
		_, err := NewYFinance().Fetch(context.Background(), []string{"AAPL"}, Window5D)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrDataUnavailable)
	})
	t.Run("history empty", func(t *testing.T) {
		stubYF(t, nil, func(string, string) ([]models.Bar, error) { return nil, nil })
		_, err := NewYFinance().Fetch(context.Background(), []string{"AAPL"}, Window5D)
		assert.ErrorIs(t, err, errs.ErrDataUnavailable)
	})
	t.Run("no symbols", func(t *testing.T) {
		_, err := NewYFinance().Fetch(context.Background(), []string{" "}, Window5D)
		assert.ErrorIs(t, err, errs.ErrDataUnavailable)
	})
	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewYFinance().Fetch(ctx, []string{"AAPL"}, Window5D)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestToBar_MissingValues(t *testing.T) {
	d := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	b := toBar(d, 0, math.NaN(), 1, 2, 0)
	assert.Nil(t, b.Open)
	assert.Nil(t, b.High)
	require.NotNil(t, b.Close)
	assert.Equal(t, 2.0, *b.Close)
	require.NotNil(t, b.Volume)
	assert.Equal(t, int64(0), *b.Volume)
}
