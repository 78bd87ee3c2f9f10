// Package source discovers and decodes the cflow input tables.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoFiles is returned when a table folder holds no CSV files.
var ErrNoFiles = errors.New("no csv files")

// FindLatest returns the lexicographically last *.csv file in the table's
// sub-folder of dataDir. Exports are expected to carry a sortable date
// prefix, so the last name is the newest snapshot.
func FindLatest(dataDir string, kind Kind) (DiscoveredFile, error) {
	dir := filepath.Join(dataDir, string(kind))

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return DiscoveredFile{}, fmt.Errorf("%w in %s", ErrNoFiles, dir)
		}
		return DiscoveredFile{}, fmt.Errorf("reading %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return DiscoveredFile{}, fmt.Errorf("%w in %s", ErrNoFiles, dir)
	}
	sort.Strings(names)

	path := filepath.Join(dir, names[len(names)-1])
	info, err := os.Stat(path)
	if err != nil {
		return DiscoveredFile{}, err
	}

	return DiscoveredFile{
		Path:      path,
		Kind:      kind,
		MtimeNs:   info.ModTime().UnixNano(),
		SizeBytes: info.Size(),
	}, nil
}

// ScanDir finds the latest file for every table. Tables without files are
// left out of the map; the caller decides which ones are required.
func ScanDir(dataDir string) (map[Kind]DiscoveredFile, error) {
	found := make(map[Kind]DiscoveredFile, len(Kinds))
	for _, kind := range Kinds {
		df, err := FindLatest(dataDir, kind)
		if err != nil {
			if errors.Is(err, ErrNoFiles) {
				continue
			}
			return nil, err
		}
		found[kind] = df
	}
	return found, nil
}
