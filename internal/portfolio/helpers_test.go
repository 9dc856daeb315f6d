package portfolio

import (
	"time"

	"github.com/guttosm/portfolio-stats/internal/domain/models"
)

var day0 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// series builds a daily series starting at day0; NaN-free closes only.
func series(sym string, closes ...float64) models.Series {
	s := models.Series{Symbol: sym}
	for i, c := range closes {
		s.Bars = append(s.Bars, models.Bar{Date: day0.AddDate(0, 0, i), Close: models.Float(c)})
	}
	return s
}

// walk generates n deterministic closes with a symbol-specific pattern.
func walk(n int, start, drift, swing float64) []float64 {
	out := make([]float64, n)
	p := start
	for i := range out {
		sign := 1.0
		if i%3 == 0 {
			sign = -1.5
		}
		p *= 1 + drift + sign*swing*float64(i%5+1)/100
		out[i] = p
	}
	return out
}
