package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/portfolio-stats/internal/domain/models"
	"github.com/guttosm/portfolio-stats/internal/storage"
)

const dateLayout = "2006-01-02"

// Accepted header layouts of a daily bar export. Anything else fails the file.
var (
	plainHeaders    = []string{"Date", "Open", "High", "Low", "Close", "Volume"}
	adjustedHeaders = []string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume"}
)

// parseAndPersistFile opens, validates, parses, and persists one symbol file in batches.
// It fails on:
//   - header not matching one of the accepted layouts
//   - malformed dates or numbers
//   - unrecoverable I/O errors
//
// It tolerates:
//   - empty, "null" or "NaN" cells (they become NULL)
func parseAndPersistFile(ctx context.Context, path, symbol string, repo storage.BarsRepository, batch int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // checked explicitly below

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	layout, err := matchHeader(header)
	if err != nil {
		return 0, err
	}

	buf := make([]models.DailyBar, 0, batch)
	lineNumber := 1

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := repo.InsertBarsBatch(buf); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}

	total := 0

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) != len(layout) {
			return 0, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(layout), len(rec))
		}

		bar, err := recordToBar(rec, layout)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNumber, err)
		}

		buf = append(buf, models.DailyBar{Symbol: symbol, Bar: bar})
		total++
		if len(buf) >= batch {
			if err := flush(); err != nil {
				return 0, fmt.Errorf("flush batch ending line %d: %w", lineNumber, err)
			}
		}
	}

	if err := flush(); err != nil {
		return 0, fmt.Errorf("final flush: %w", err)
	}

	return total, nil
}

func matchHeader(header []string) ([]string, error) {
	for _, layout := range [][]string{plainHeaders, adjustedHeaders} {
		if equalHeaders(header, layout) {
			return layout, nil
		}
	}
	return nil, fmt.Errorf("invalid header %q: expected %q or %q",
		strings.Join(header, ","), strings.Join(plainHeaders, ","), strings.Join(adjustedHeaders, ","))
}

func equalHeaders(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		h := strings.TrimSpace(strings.TrimPrefix(got[i], "\ufeff"))
		if h != want[i] {
			return false
		}
	}
	return true
}

// recordToBar converts one CSV record into a Bar. Date is mandatory. When the
// layout carries "Adj Close", the stored bar is adjusted to it so the bar store
// serves the same adjusted prices as the Yahoo sources.
func recordToBar(rec []string, layout []string) (models.Bar, error) {
	var (
		b        models.Bar
		adjClose *float64
	)

	for i, col := range layout {
		s := strings.TrimSpace(rec[i])
		switch col {
		case "Date":
			d, err := time.Parse(dateLayout, s)
			if err != nil {
				return b, fmt.Errorf("invalid Date: %v", err)
			}
			b.Date = d
		case "Open", "High", "Low", "Close":
			v, err := parseFloatCell(s)
			if err != nil {
				return b, fmt.Errorf("invalid %s: %v", col, err)
			}
			switch col {
			case "Open":
				b.Open = v
			case "High":
				b.High = v
			case "Low":
				b.Low = v
			case "Close":
				b.Close = v
			}
		case "Volume":
			v, err := parseVolumeCell(s)
			if err != nil {
				return b, fmt.Errorf("invalid Volume: %v", err)
			}
			b.Volume = v
		case "Adj Close":
			v, err := parseFloatCell(s)
			if err != nil {
				return b, fmt.Errorf("invalid Adj Close: %v", err)
			}
			adjClose = v
		}
	}

	b.AdjustTo(adjClose)
	return b, nil
}

func isNullCell(s string) bool {
	return s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "nan")
}

func parseFloatCell(s string) (*float64, error) {
	if isNullCell(s) {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseVolumeCell accepts integers and float renderings such as "1.2e+07".
func parseVolumeCell(s string) (*int64, error) {
	if isNullCell(s) {
		return nil, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	v := int64(f)
	return &v, nil
}
