package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/portfolio-stats/internal/logger"
	"github.com/guttosm/portfolio-stats/internal/storage"
)

const (
	fileExt          = ".csv"
	defaultBatchSize = 5000
	maxParallel      = 8
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.BarsRepository {
	return storage.NewBarsRepository(db)
}

// ProcessDirectory imports daily bar CSV exports into the bar store.
//
//   - dir:     directory containing one "<SYMBOL>.csv" file per symbol.
//   - db:      open *sql.DB (PostgreSQL).
//   - symbols: symbols to import; empty means every .csv file in dir.
//
// Behavior:
//   - When symbols are given, every matching file must exist or nothing is imported.
//   - Uses a concurrency limit of min(8, NumCPU) unless parallel is set (clamped to 1..8).
//   - A symbol already present in the import log is skipped unless force is set,
//     in which case its stored bars are replaced.
//   - If any file returns error, cancels the rest and returns that error.
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, symbols []string, parallel int, force bool) error {
	repo := repoCtor(db)

	files, err := resolveFiles(dir, symbols)
	if err != nil {
		return err
	}

	logger.L().Info().Int("files", len(files)).Str("dir", dir).Msg("import start")

	limit := maxParallel
	if parallel > 0 {
		if parallel < maxParallel {
			limit = parallel
		}
	} else if c := runtime.NumCPU(); c < limit {
		limit = c
	}

	logger.L().Info().Int("max_parallel", limit).Msg("import configured")

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, limit)

	for i, file := range files {
		idx := i
		f := file
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()
			base := filepath.Base(f)
			symbol := symbolFromFile(base)
			log := logger.L().With().Str("file", base).Str("symbol", symbol).Logger()
			log.Info().Int("idx", idx+1).Int("total", len(files)).Msg("file start")

			exists, err := repo.HasImportForSymbol(symbol)
			if err != nil {
				log.Error().Err(err).Msg("check import log failed")
				return fmt.Errorf("file %s: check import log: %w", f, err)
			}
			if exists && !force {
				log.Info().Bool("skipped", true).Msg("already imported")
				return nil
			}
			if exists && force {
				if err := repo.DeleteBarsBySymbol(symbol); err != nil {
					log.Error().Err(err).Msg("delete existing failed")
					return fmt.Errorf("file %s: delete existing: %w", f, err)
				}
			}

			total, err := parseAndPersistFile(gctx, f, symbol, repo, defaultBatchSize)
			if err != nil {
				log.Error().Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", f, err)
			}
			if err := repo.UpsertImportLog(symbol, base, total); err != nil {
				log.Error().Err(err).Msg("update import log failed")
				return fmt.Errorf("file %s: upsert import log: %w", f, err)
			}
			log.Info().Int("rows", total).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("file done")
			return nil
		})
	}

	return g.Wait()
}

// resolveFiles lists the files to import, sorted by name.
func resolveFiles(dir string, symbols []string) ([]string, error) {
	if len(symbols) == 0 {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+fileExt))
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no %s files found in %s", fileExt, dir)
		}
		sort.Strings(matches)
		return matches, nil
	}

	var files, missing []string
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		name := s + fileExt
		full := filepath.Join(dir, name)
		if _, err := os.Stat(full); err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, name)
				continue
			}
			return nil, fmt.Errorf("stat failed for %s: %w", full, err)
		}
		files = append(files, full)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required files: %s", strings.Join(missing, ", "))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no symbols to import")
	}
	return files, nil
}

func symbolFromFile(base string) string {
	return strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
}
