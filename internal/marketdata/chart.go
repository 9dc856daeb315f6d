package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/portfolio-stats/internal/domain/models"
	"github.com/guttosm/portfolio-stats/internal/logger"
)

// DefaultChartBaseURL is the public Yahoo Finance chart endpoint host.
const DefaultChartBaseURL = "https://query1.finance.yahoo.com"

const chartUserAgent = "Mozilla/5.0 (compatible; portfolio-stats/1.0)"

// chartResponse mirrors the parts of /v8/finance/chart we read.
// Quote arrays hold nulls for missing values.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta struct {
		Symbol    string `json:"symbol"`
		GMTOffset int    `json:"gmtoffset"`
		Timezone  string `json:"timezone"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

// ChartConfig configures the raw chart client.
type ChartConfig struct {
	BaseURL     string
	Timeout     time.Duration
	Concurrency int
	// AutoAdjust scales OHLC by adjclose/close, matching adjusted downloads.
	AutoAdjust bool
}

// Chart fetches daily bars from the Yahoo v8 chart API, one request per
// symbol, fanned out with bounded concurrency.
type Chart struct {
	client  *http.Client
	baseURL string
	limit   int
	adjust  bool
	log     zerolog.Logger
}

func NewChart(cfg ChartConfig) *Chart {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultChartBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	limit := cfg.Concurrency
	if limit <= 0 {
		limit = 4
	}
	return &Chart{
		client:  &http.Client{Timeout: timeout},
		baseURL: base,
		limit:   limit,
		adjust:  cfg.AutoAdjust,
		log:     logger.Component("fetcher.chart"),
	}
}

// Fetch requests every symbol concurrently. A failing symbol is logged and
// left out; it does not cancel the others.
func (c *Chart) Fetch(ctx context.Context, symbols []string, window Window) (map[string]models.Series, error) {
	syms := uniqueSymbols(symbols)
	out := make(map[string]models.Series, len(syms))

	var (
		mu      sync.Mutex
		lastErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)

	for _, sym := range syms {
		sym := sym
		g.Go(func() error {
			bars, err := c.fetchOne(gctx, sym, window)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.log.Warn().Err(err).Str("symbol", sym).Str("window", window.String()).Msg("chart request failed")
				lastErr = err
				return nil
			}
			out[sym] = models.Series{Symbol: sym, Bars: bars}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.log.Debug().Int("requested", len(syms)).Int("received", len(out)).Str("window", window.String()).Msg("chart fetch done")
	return finish(out, lastErr)
}

func (c *Chart) fetchOne(ctx context.Context, symbol string, window Window) ([]models.Bar, error) {
	q := url.Values{}
	q.Set("range", window.String())
	q.Set("interval", "1d")
	q.Set("events", "div,splits")
	q.Set("includeAdjustedClose", "true")
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", chartUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var payload chartResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("chart %s: status %d", symbol, resp.StatusCode)
		}
		return nil, fmt.Errorf("decode chart %s: %w", symbol, err)
	}
	if e := payload.Chart.Error; e != nil {
		return nil, fmt.Errorf("chart %s: %s: %s", symbol, e.Code, e.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart %s: status %d", symbol, resp.StatusCode)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart %s: empty result", symbol)
	}
	return c.toBars(payload.Chart.Result[0]), nil
}

// toBars zips the parallel arrays of a chart result into bars dated in the
// exchange's local time.
func (c *Chart) toBars(r chartResult) []models.Bar {
	if len(r.Indicators.Quote) == 0 {
		return nil
	}
	q := r.Indicators.Quote[0]
	var adj []*float64
	if len(r.Indicators.AdjClose) > 0 {
		adj = r.Indicators.AdjClose[0].AdjClose
	}
	loc := time.FixedZone(r.Meta.Timezone, r.Meta.GMTOffset)

	bars := make([]models.Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		b := models.Bar{
			Date:   time.Unix(ts, 0).In(loc),
			Open:   at(q.Open, i),
			High:   at(q.High, i),
			Low:    at(q.Low, i),
			Close:  at(q.Close, i),
			Volume: at(q.Volume, i),
		}
		if c.adjust {
			b.AdjustTo(at(adj, i))
		}
		bars = append(bars, b)
	}
	return bars
}

func at[T any](xs []*T, i int) *T {
	if i >= len(xs) {
		return nil
	}
	return xs[i]
}
