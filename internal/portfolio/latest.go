package portfolio

import (
	"fmt"
	"math"

	"github.com/guttosm/portfolio-stats/internal/domain/errs"
	"github.com/guttosm/portfolio-stats/internal/domain/models"
)

// LatestBar returns the bar with the most recent date in s.
//
// Missing (nil or NaN) fields default to zero instead of failing. An empty series is a
// data-unavailable error.
func LatestBar(s models.Series) (models.LatestBar, error) {
	if len(s.Bars) == 0 {
		return models.LatestBar{}, errs.NewDataUnavailable(fmt.Sprintf("No data available for %s.", s.Symbol), nil)
	}

	latest := s.Bars[0]
	for _, b := range s.Bars[1:] {
		if !b.Date.Before(latest.Date) {
			latest = b
		}
	}

	return models.LatestBar{
		Symbol: s.Symbol,
		Open:   floatOrZero(latest.Open),
		High:   floatOrZero(latest.High),
		Low:    floatOrZero(latest.Low),
		Close:  floatOrZero(latest.Close),
		Volume: intOrZero(latest.Volume),
	}, nil
}

func floatOrZero(v *float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	return *v
}

func intOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
