// Package portfolio holds the pure numeric pipeline: price alignment, daily
// returns, equal-weight statistics and latest-bar extraction.
package portfolio

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/guttosm/portfolio-stats/internal/domain/errs"
	"github.com/guttosm/portfolio-stats/internal/domain/models"
)

// MsgProcessing prefixes failures caused by malformed price data.
const MsgProcessing = "Data processing error"

// PriceMatrix is the inner join of closing prices on the date axis.
// Column j belongs to Symbols[j]; row i to Dates[i].
type PriceMatrix struct {
	Symbols []string
	Dates   []time.Time
	Prices  *mat.Dense
}

// Rows returns the number of aligned dates.
func (p PriceMatrix) Rows() int { return len(p.Dates) }

// Align joins the closing prices of symbols on the calendar date.
//
// A date survives only if every column has a present, finite close on it;
// one asset missing one day removes that day for all assets. Columns follow
// the order of symbols, duplicates included.
//
// Errors:
//   - processing error when symbols is empty or a symbol has no series at all.
//   - alignment error when fewer than 2 dates survive.
func Align(symbols []string, data map[string]models.Series) (PriceMatrix, error) {
	if len(symbols) == 0 {
		return PriceMatrix{}, errs.NewProcessing(MsgProcessing, fmt.Errorf("no symbols to align"))
	}

	columns := make([]map[time.Time]float64, len(symbols))
	for j, sym := range symbols {
		s, ok := data[sym]
		if !ok {
			return PriceMatrix{}, errs.NewProcessing(MsgProcessing, fmt.Errorf("no price series for %s", sym))
		}
		columns[j] = closesByDate(s)
	}

	dates := make([]time.Time, 0, len(columns[0]))
	for d := range columns[0] {
		if presentInAll(d, columns[1:]) {
			dates = append(dates, d)
		}
	}
	if len(dates) < 2 {
		return PriceMatrix{}, errs.NewAlignment(fmt.Sprintf("insufficient aligned price data: %d common trading day(s), need at least 2", len(dates)))
	}
	sort.Slice(dates, func(a, b int) bool { return dates[a].Before(dates[b]) })

	prices := mat.NewDense(len(dates), len(symbols), nil)
	for i, d := range dates {
		for j := range symbols {
			prices.Set(i, j, columns[j][d])
		}
	}

	return PriceMatrix{Symbols: append([]string(nil), symbols...), Dates: dates, Prices: prices}, nil
}

// closesByDate indexes usable closes by calendar day. Later bars on the same
// day replace earlier ones.
func closesByDate(s models.Series) map[time.Time]float64 {
	out := make(map[time.Time]float64, len(s.Bars))
	for _, b := range s.Bars {
		if b.Close == nil || math.IsNaN(*b.Close) || math.IsInf(*b.Close, 0) {
			continue
		}
		out[day(b.Date)] = *b.Close
	}
	return out
}

func presentInAll(d time.Time, cols []map[time.Time]float64) bool {
	for _, c := range cols {
		if _, ok := c[d]; !ok {
			return false
		}
	}
	return true
}

// day truncates t to its calendar date in its own location and re-anchors it
// in UTC so bars from sources with different zones join on the same key.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
