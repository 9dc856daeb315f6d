package service

import (
	"strings"

	"github.com/guttosm/portfolio-stats/internal/domain/dto"
	"github.com/guttosm/portfolio-stats/internal/domain/models"
)

// glossary is the static term table attached to every result. It does not
// depend on the computed values.
var glossary = []dto.SummaryRow{
	{Term: "Selected Assets", Meaning: "Stocks chosen for optimization"},
	{Term: "Open", Meaning: "Price of the stock when the market opened today"},
	{Term: "High", Meaning: "Highest price the stock reached today"},
	{Term: "Low", Meaning: "Lowest price the stock fell to today"},
	{Term: "Close", Meaning: "Price of the stock when the market closed today"},
	{Term: "Volume", Meaning: "Number of shares traded today"},
	{Term: "Expected Return", Meaning: "Average daily return from the selected portfolio"},
	{Term: "Risk", Meaning: "Price fluctuation or volatility of the portfolio"},
}

// Glossary returns a copy of the static summary table.
func Glossary() []dto.SummaryRow {
	return append([]dto.SummaryRow(nil), glossary...)
}

// Assemble merges the request names, the latest bar and the statistics into
// the response body. Names are joined exactly as received.
func Assemble(names []string, bar models.LatestBar, stats models.PortfolioStats) *dto.OptimizeResponse {
	return &dto.OptimizeResponse{
		SelectedAssets: strings.Join(names, ", "),
		Open:           bar.Open,
		High:           bar.High,
		Low:            bar.Low,
		Close:          bar.Close,
		Volume:         bar.Volume,
		ExpectedReturn: stats.ExpectedReturn,
		Risk:           stats.Risk,
		Summary:        Glossary(),
	}
}
