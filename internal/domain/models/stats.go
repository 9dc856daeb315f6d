package models

// LatestBar is the most recent daily bar of the reference asset, with absent
// fields already defaulted to zero.
//
// swagger:model LatestBar
type LatestBar struct {
	Symbol string  `json:"symbol" example:"AAPL"`
	Open   float64 `json:"open" example:"227.5"`
	High   float64 `json:"high" example:"229.1"`
	Low    float64 `json:"low" example:"226.3"`
	Close  float64 `json:"close" example:"228.7"`
	Volume int64   `json:"volume" example:"51234000"`
}

// PortfolioStats are the equal-weight statistics of a set of assets.
//
// Fields:
//   - Symbols: resolved tickers in column order.
//   - Weights: 1/N per asset.
//   - ExpectedReturn: weights · mean daily returns.
//   - Risk: weights · (covariance · weights).
//   - Observations: number of daily return rows used.
type PortfolioStats struct {
	Symbols        []string
	Weights        []float64
	ExpectedReturn float64
	Risk           float64
	Observations   int
}
