package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guttosm/portfolio-stats/internal/domain/models"
)

func TestGlossary_FixedRows(t *testing.T) {
	rows := Glossary()
	terms := make([]string, 0, len(rows))
	for _, r := range rows {
		terms = append(terms, r.Term)
		assert.NotEmpty(t, r.Meaning)
	}
	assert.Equal(t, []string{"Selected Assets", "Open", "High", "Low", "Close", "Volume", "Expected Return", "Risk"}, terms)

	rows[0].Term = "mutated"
	assert.Equal(t, "Selected Assets", Glossary()[0].Term)
}

func TestAssemble(t *testing.T) {
	bar := models.LatestBar{Symbol: "AAPL", Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10}
	stats := models.PortfolioStats{ExpectedReturn: 0.001, Risk: 0.0002}

	out := Assemble([]string{"Apple Inc.", "Microsoft Corporation"}, bar, stats)
	assert.Equal(t, "Apple Inc., Microsoft Corporation", out.SelectedAssets)
	assert.Equal(t, 1.0, out.Open)
	assert.Equal(t, 2.0, out.High)
	assert.Equal(t, 0.5, out.Low)
	assert.Equal(t, 1.5, out.Close)
	assert.Equal(t, int64(10), out.Volume)
	assert.Equal(t, 0.001, out.ExpectedReturn)
	assert.Equal(t, 0.0002, out.Risk)
	assert.Len(t, out.Summary, 8)

	assert.Equal(t, "Apple Inc.", Assemble([]string{"Apple Inc."}, bar, stats).SelectedAssets)
}
