package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/stockfn/internal/domain/models"
	"github.com/guttosm/stockfn/internal/logger"
	"github.com/guttosm/stockfn/internal/storage"
)

const maxParallel = 8

// Summary reports what a seeding run did.
type Summary struct {
	Files    int
	Parsed   int
	Inserted int
	Skipped  int
}

// ProcessDirectory loads every .json and .csv file in dir into repo.
//
// Behavior:
//   - Files are processed concurrently, at most min(NumCPU, 8) at a time unless parallel > 0.
//   - Within a file the first record for a code wins; codes already stored are skipped.
//   - Each file is written with one batch insert.
//   - If any file returns an error, the rest are cancelled and that error is returned.
//
// Files seeded concurrently may still race on the same code, as there is no
// uniqueness constraint in the store.
func ProcessDirectory(ctx context.Context, dir string, repo storage.StockRepository, parallel int) (Summary, error) {
	files, err := listSeedFiles(dir)
	if err != nil {
		return Summary{}, err
	}
	if len(files) == 0 {
		return Summary{}, fmt.Errorf("no .json or .csv seed files in %s", dir)
	}

	limit := maxParallel
	if parallel > 0 {
		if parallel < limit {
			limit = parallel
		}
	} else if c := runtime.NumCPU(); c < limit {
		limit = c
	}

	logger.L().Info().Int("files", len(files)).Str("dir", dir).Int("max_parallel", limit).Msg("seed start")

	var parsed, inserted, skipped atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, limit)

	for i, file := range files {
		idx := i
		f := file

		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
			return Summary{}, g.Wait()
		}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()
			base := filepath.Base(f)

			stocks, err := parseFile(gctx, f)
			if err != nil {
				logger.L().Error().Str("file", base).Err(err).Msg("seed file parse failed")
				return fmt.Errorf("file %s: %w", f, err)
			}
			parsed.Add(int64(len(stocks)))

			fresh, dup, err := filterNew(gctx, repo, stocks)
			if err != nil {
				logger.L().Error().Str("file", base).Err(err).Msg("seed existence check failed")
				return fmt.Errorf("file %s: %w", f, err)
			}
			skipped.Add(int64(dup))

			n, err := repo.InsertBatch(gctx, fresh)
			if err != nil {
				logger.L().Error().Str("file", base).Err(err).Msg("seed insert failed")
				return fmt.Errorf("file %s: insert: %w", f, err)
			}
			inserted.Add(int64(n))

			logger.L().Info().
				Int("idx", idx+1).
				Int("total", len(files)).
				Str("file", base).
				Int("parsed", len(stocks)).
				Int("inserted", n).
				Int("skipped", dup).
				Dur("elapsed", time.Since(start)).
				Msg("seed file done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	return Summary{
		Files:    len(files),
		Parsed:   int(parsed.Load()),
		Inserted: int(inserted.Load()),
		Skipped:  int(skipped.Load()),
	}, nil
}

// listSeedFiles returns the .json/.csv regular files in dir, sorted by name.
func listSeedFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read seed dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".csv":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// filterNew drops in-file duplicates and codes the store already holds.
// It returns the stocks to insert and how many were skipped.
func filterNew(ctx context.Context, repo storage.StockRepository, stocks []models.Stock) ([]models.Stock, int, error) {
	seen := make(map[string]struct{}, len(stocks))
	fresh := make([]models.Stock, 0, len(stocks))
	skipped := 0

	for _, s := range stocks {
		if _, dup := seen[s.Code]; dup {
			skipped++
			continue
		}
		seen[s.Code] = struct{}{}

		existing, err := repo.FindByCode(ctx, s.Code)
		if err != nil {
			return nil, 0, fmt.Errorf("check code %s: %w", s.Code, err)
		}
		if len(existing) > 0 {
			skipped++
			continue
		}
		fresh = append(fresh, s)
	}
	return fresh, skipped, nil
}
