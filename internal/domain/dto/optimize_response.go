package dto

// SummaryRow is one entry of the static glossary returned with every result.
type SummaryRow struct {
	Term    string `json:"Term" example:"Risk"`
	Meaning string `json:"Meaning" example:"Price fluctuation or volatility of the portfolio"`
}

// OptimizeResponse represents the JSON structure returned by
// POST /api/v1/optimize.
//
// Field names follow the public contract of the endpoint and are kept flat so
// existing clients can read open/high/low/close directly.
type OptimizeResponse struct {
	SelectedAssets string       `json:"selected_assets" example:"Apple Inc., Microsoft Corporation"`
	Open           float64      `json:"open" example:"227.5"`
	High           float64      `json:"high" example:"229.1"`
	Low            float64      `json:"low" example:"226.3"`
	Close          float64      `json:"close" example:"228.7"`
	Volume         int64        `json:"volume" example:"51234000"`
	ExpectedReturn float64      `json:"expected_return" example:"0.00081"`
	Risk           float64      `json:"risk" example:"0.00023"`
	Summary        []SummaryRow `json:"summary"`
}

// CompaniesResponse lists the company names the resolver understands.
type CompaniesResponse struct {
	Companies []string `json:"companies"`
}
