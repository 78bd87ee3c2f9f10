package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/cflow/internal/logger"
	"github.com/theirongolddev/cflow/internal/source"
	"github.com/theirongolddev/cflow/internal/store"
)

// LoadWithCache is Load backed by the input cache: files whose mtime and
// size match the cached entry are read from the cache, the rest are decoded
// and written back. Entries for files that are no longer the latest of
// their table are pruned.
func LoadWithCache(ctx context.Context, dataDir string, cache *store.Cache) (*LoadResult, error) {
	log := logger.FromContext(ctx)

	result, err := discover(dataDir)
	if err != nil {
		return nil, err
	}

	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	current := make(map[string]struct{}, len(result.Files))
	for _, df := range result.Files {
		current[df.Path] = struct{}{}
	}
	for path := range tracked {
		if _, ok := current[path]; ok {
			continue
		}
		if err := cache.DeleteFile(path); err != nil {
			log.Warn().Err(err).Str("file", path).Msg("pruning cache entry")
		}
	}

	decodedFiles, err := decodeAll(result.Files, func(df source.DiscoveredFile) (decoded, error) {
		if fi, ok := tracked[df.Path]; ok && fi.Kind == string(df.Kind) && fi.Matches(df.MtimeNs, df.SizeBytes) {
			return loadCached(cache, df)
		}
		return decodeFile(df)
	})
	if err != nil {
		return nil, err
	}

	for i, df := range result.Files {
		d := decodedFiles[i]
		result.add(d)

		if fi, ok := tracked[df.Path]; ok && fi.Kind == string(df.Kind) && fi.Matches(df.MtimeNs, df.SizeBytes) {
			result.CacheHits++
			continue
		}
		result.Reparsed++
		if err := saveCached(cache, df, d); err != nil {
			log.Warn().Err(err).Str("file", df.Path).Msg("caching decoded input")
		}
	}

	log.Info().
		Int("cache_hits", result.CacheHits).
		Int("reparsed", result.Reparsed).
		Msg("loaded inputs")

	return result, nil
}

func loadCached(cache *store.Cache, df source.DiscoveredFile) (decoded, error) {
	var (
		d   decoded
		err error
	)
	switch df.Kind {
	case source.KindBalances:
		d.balances, d.diags, err = cache.LoadBalances(df.Path)
	case source.KindRecurring:
		d.recurring, d.diags, err = cache.LoadRecurring(df.Path)
	case source.KindSupplemental:
		d.supplemental, d.diags, err = cache.LoadSupplemental(df.Path)
	default:
		err = fmt.Errorf("unknown input table %q", df.Kind)
	}
	if err != nil {
		return decoded{}, fmt.Errorf("loading cached %s: %w", df.Path, err)
	}
	return d, nil
}

func saveCached(cache *store.Cache, df source.DiscoveredFile, d decoded) error {
	fi := store.FileInfo{Kind: string(df.Kind), MtimeNs: df.MtimeNs, SizeBytes: df.SizeBytes}
	switch df.Kind {
	case source.KindBalances:
		return cache.SaveBalances(df.Path, fi, d.balances, d.diags)
	case source.KindRecurring:
		return cache.SaveRecurring(df.Path, fi, d.recurring, d.diags)
	case source.KindSupplemental:
		return cache.SaveSupplemental(df.Path, fi, d.supplemental, d.diags)
	}
	return fmt.Errorf("unknown input table %q", df.Kind)
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "cflow")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "cflow")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "inputs.db")
}
