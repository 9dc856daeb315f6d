package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/guttosm/portfolio-stats/internal/domain/models"
	pq "github.com/lib/pq"
)

// BarsRepository defines contract for daily bar store operations.
type BarsRepository interface {
	InsertBarsBatch(bars []models.DailyBar) error
	GetDailyBars(ctx context.Context, symbols []string, from time.Time) (map[string][]models.Bar, error)
	HasImportForSymbol(symbol string) (bool, error)
	UpsertImportLog(symbol, filename string, rowCount int) error
	DeleteBarsBySymbol(symbol string) error
	Ping(ctx context.Context) error
}

type barsRepository struct {
	db *sql.DB
}

func NewBarsRepository(db *sql.DB) BarsRepository {
	return &barsRepository{db: db}
}

// InsertBarsBatch copies bars into daily_bars in a single transaction.
func (r *barsRepository) InsertBarsBatch(bars []models.DailyBar) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"daily_bars",
		"symbol",
		"bar_date",
		"open",
		"high",
		"low",
		"close",
		"volume",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	// nil pointers become NULL
	nullFloat := func(v *float64) interface{} {
		if v == nil {
			return nil
		}
		return *v
	}
	nullInt := func(v *int64) interface{} {
		if v == nil {
			return nil
		}
		return *v
	}

	for _, b := range bars {
		if _, err := stmt.Exec(
			b.Symbol,
			b.Date,
			nullFloat(b.Open),
			nullFloat(b.High),
			nullFloat(b.Low),
			nullFloat(b.Close),
			nullInt(b.Volume),
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// GetDailyBars returns bars on or after from for each requested symbol, oldest first.
// Symbols with no rows are absent from the result.
func (r *barsRepository) GetDailyBars(ctx context.Context, symbols []string, from time.Time) (map[string][]models.Bar, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT symbol, bar_date, open, high, low, close, volume
		FROM daily_bars
		WHERE symbol = ANY($1) AND bar_date >= $2
		ORDER BY symbol, bar_date
	`, pq.Array(symbols), from)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string][]models.Bar)
	for rows.Next() {
		var (
			symbol     string
			date       time.Time
			o, h, l, c sql.NullFloat64
			volume     sql.NullInt64
		)
		if err := rows.Scan(&symbol, &date, &o, &h, &l, &c, &volume); err != nil {
			return nil, err
		}
		out[symbol] = append(out[symbol], models.Bar{
			Date:   date,
			Open:   floatPtr(o),
			High:   floatPtr(h),
			Low:    floatPtr(l),
			Close:  floatPtr(c),
			Volume: intPtr(volume),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// HasImportForSymbol checks if a CSV import was already recorded for symbol.
func (r *barsRepository) HasImportForSymbol(symbol string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM bar_import_log WHERE symbol = $1)`, symbol).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertImportLog records (or updates) the import entry of a symbol.
func (r *barsRepository) UpsertImportLog(symbol, filename string, rowCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO bar_import_log (symbol, filename, row_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol)
		DO UPDATE SET filename = EXCLUDED.filename,
					  row_count = EXCLUDED.row_count,
					  imported_at = NOW()
	`, symbol, filename, rowCount)
	return err
}

// DeleteBarsBySymbol removes every stored bar of symbol.
func (r *barsRepository) DeleteBarsBySymbol(symbol string) error {
	_, err := r.db.Exec(`DELETE FROM daily_bars WHERE symbol = $1`, symbol)
	return err
}

func (r *barsRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func intPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}
