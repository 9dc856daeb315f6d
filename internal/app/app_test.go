package app

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/guttosm/portfolio-stats/config"
	"github.com/guttosm/portfolio-stats/internal/domain/dto"
)

// useConfig swaps the global config for the duration of the test.
func useConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	old := config.AppConfig
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = old })
}

func marketConfig(source string) config.Config {
	return config.Config{Market: config.MarketConfig{
		Source:         source,
		LookbackPeriod: "1y",
		LatestPeriod:   "5d",
		CalendarMIC:    "xnys",
	}}
}

// forbidPostgres fails the test if InitializeApp tries to open a database.
func forbidPostgres(t *testing.T) {
	t.Helper()
	old := postgresOpener
	postgresOpener = func(config.Config) (*sql.DB, error) {
		t.Fatalf("postgres must not be opened for this source")
		return nil, nil
	}
	t.Cleanup(func() { postgresOpener = old })
}

// TestInitPostgres_InvalidHost expects ping failure.
func TestInitPostgres_InvalidHost(t *testing.T) {
	cfg := config.Config{Postgres: config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     54329, // unlikely mapped
		User:     "x",
		Password: "y",
		DBName:   "z",
		SSLMode:  "disable",
	}}
	db, err := InitPostgres(cfg)
	if err == nil {
		_ = db.Close()
		t.Fatalf("expected error connecting to invalid DB")
	}
}

func TestInitializeApp_DefaultSourceSkipsPostgres(t *testing.T) {
	useConfig(t, marketConfig(config.SourceYFinance))
	forbidPostgres(t)

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}
	defer cleanup()

	for _, path := range []string{"/healthz", "/readyz", "/api/v1/companies"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, w.Code)
		}
	}
}

func TestInitializeApp_InvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "bad lookback",
			cfg: config.Config{Market: config.MarketConfig{
				Source: config.SourceYFinance, LookbackPeriod: "3w", LatestPeriod: "5d",
			}},
			want: "lookback period",
		},
		{
			name: "bad latest",
			cfg: config.Config{Market: config.MarketConfig{
				Source: config.SourceYFinance, LookbackPeriod: "1y", LatestPeriod: "yesterday",
			}},
			want: "latest period",
		},
		{
			name: "unknown source",
			cfg:  marketConfig("bloomberg"),
			want: "unknown price source",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			useConfig(t, tc.cfg)
			forbidPostgres(t)

			r, cleanup, err := InitializeApp()
			if err == nil || r != nil || cleanup != nil {
				t.Fatalf("expected error, got router=%v err=%v", r != nil, err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

// TestInitializeApp_DBFailure ensures InitializeApp returns error when the bar store cannot connect.
func TestInitializeApp_DBFailure(t *testing.T) {
	useConfig(t, marketConfig(config.SourcePostgres))

	old := postgresOpener
	postgresOpener = func(config.Config) (*sql.DB, error) { return nil, errors.New("connection refused") }
	t.Cleanup(func() { postgresOpener = old })

	r, cleanup, err := InitializeApp()
	if err == nil || r != nil || cleanup != nil {
		if cleanup != nil {
			cleanup()
		}
		t.Fatalf("expected error from InitializeApp with unreachable DB")
	}
}

func TestInitializeApp_PostgresHappyPath(t *testing.T) {
	useConfig(t, marketConfig(config.SourcePostgres))

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("db gone"))

	old := postgresOpener
	postgresOpener = func(config.Config) (*sql.DB, error) { return db, nil }
	t.Cleanup(func() { postgresOpener = old })

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w.Code)
	}

	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w2.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz after ping failure status=%d", w2.Code)
	}

	cleanup()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// chartBody renders three daily closes for one symbol in the chart API shape.
func chartBody(symbol string, closes [3]float64) string {
	c, _ := json.Marshal(closes)
	return `{"chart":{"result":[{
		"meta":{"symbol":"` + symbol + `","gmtoffset":0,"timezone":"UTC"},
		"timestamp":[1727789400,1727875800,1727962200],
		"indicators":{"quote":[{"open":` + string(c) + `,"high":` + string(c) + `,"low":` + string(c) +
		`,"close":` + string(c) + `,"volume":[1000,2000,3000]}]}}],"error":null}}`
}

func TestInitializeApp_ChartSourceEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/AAPL"):
			_, _ = w.Write([]byte(chartBody("AAPL", [3]float64{100, 110, 121})))
		case strings.HasSuffix(r.URL.Path, "/MSFT"):
			_, _ = w.Write([]byte(chartBody("MSFT", [3]float64{50, 55, 60.5})))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg := marketConfig(config.SourceChart)
	cfg.Market.ChartBaseURL = srv.URL
	cfg.Market.FetchConcurrency = 2
	useConfig(t, cfg)
	forbidPostgres(t)

	router, cleanup, err := InitializeApp()
	if err != nil {
		t.Fatalf("InitializeApp: %v", err)
	}
	defer cleanup()

	body := `{"companies":["Apple Inc.","Microsoft Corporation"]}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/optimize", strings.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var out dto.OptimizeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if out.SelectedAssets != "Apple Inc., Microsoft Corporation" {
		t.Fatalf("selected_assets=%q", out.SelectedAssets)
	}
	if out.Close != 121 || out.Volume != 3000 {
		t.Fatalf("latest bar close=%v volume=%v", out.Close, out.Volume)
	}
	// both assets grow 10% per day: mean 0.1, zero variance
	if diff := out.ExpectedReturn - 0.1; diff > 1e-12 || diff < -1e-12 {
		t.Fatalf("expected_return=%v", out.ExpectedReturn)
	}
	if out.Risk > 1e-12 || out.Risk < -1e-12 {
		t.Fatalf("risk=%v", out.Risk)
	}
	if len(out.Summary) != 8 {
		t.Fatalf("summary rows=%d", len(out.Summary))
	}
}
