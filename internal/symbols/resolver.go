package symbols

import (
	"sort"
	"strings"

	"github.com/guttosm/portfolio-stats/internal/domain/errs"
)

// Messages returned when nothing usable remains after resolution.
const (
	MsgNoCompanies = "No companies selected."
	MsgNoTickers   = "No valid tickers found."
)

// companyTickers maps display names to exchange tickers.
// Built once at package init and never written afterwards.
var companyTickers = map[string]string{
	"Apple Inc.":               "AAPL",
	"Microsoft Corporation":    "MSFT",
	"Alphabet Inc. (Google)":   "GOOG",
	"Amazon.com Inc.":          "AMZN",
	"Tesla Inc.":               "TSLA",
	"Meta Platforms Inc.":      "META",
	"NVIDIA Corporation":       "NVDA",
	"Netflix Inc.":             "NFLX",
	"Intel Corporation":        "INTC",
	"Walmart Inc.":             "WMT",
	"Bank of America":          "BAC",
	"JPMorgan Chase & Co.":     "JPM",
	"Goldman Sachs Group Inc.": "GS",
	"Exxon Mobil Corporation":  "XOM",
	"Chevron Corporation":      "CVX",
	"Pfizer Inc.":              "PFE",
	"Johnson & Johnson":        "JNJ",
	"Procter & Gamble Co.":     "PG",
	"The Coca-Cola Company":    "KO",
	"PepsiCo Inc.":             "PEP",
}

var sortedNames = func() []string {
	out := make([]string, 0, len(companyTickers))
	for name := range companyTickers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}()

// Lookup returns the ticker for a single company name (surrounding whitespace ignored).
func Lookup(name string) (string, bool) {
	sym, ok := companyTickers[strings.TrimSpace(name)]
	return sym, ok
}

// Resolve maps company names to tickers, keeping input order and silently
// dropping names that are not in the table.
//
// It fails with an input error only when nothing resolves:
//   - MsgNoCompanies when names is empty.
//   - MsgNoTickers when names were given but none are known, blank ones included.
func Resolve(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, errs.NewInput(MsgNoCompanies)
	}

	out := make([]string, 0, len(names))
	for _, n := range names {
		if sym, ok := Lookup(n); ok {
			out = append(out, sym)
		}
	}
	if len(out) == 0 {
		return nil, errs.NewInput(MsgNoTickers)
	}
	return out, nil
}

// Names returns the supported company names in alphabetical order.
// The returned slice is a copy.
func Names() []string {
	return append([]string(nil), sortedNames...)
}
