package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/cflow/internal/model"
)

// Paths are the export file locations of one run.
type Paths struct {
	CSV  string
	HTML string
}

// OutputPaths names the exports <YYYYMMDD>_cash_flow.{csv,html} in dir.
func OutputPaths(dir string, today time.Time) Paths {
	stem := today.Format("20060102") + "_cash_flow"
	return Paths{
		CSV:  filepath.Join(dir, stem+".csv"),
		HTML: filepath.Join(dir, stem+".html"),
	}
}

// SaveOptions selects which exports Save writes.
type SaveOptions struct {
	CSV   bool
	Chart bool
	Title string
}

// Save writes the selected exports into dir, creating it if needed, and
// returns the paths it wrote. Existing files for the same day are replaced.
func Save(dir string, today time.Time, ledger []model.LedgerRow, opts SaveOptions) ([]string, error) {
	if !opts.CSV && !opts.Chart {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	paths := OutputPaths(dir, today)
	var written []string

	if opts.CSV {
		if err := writeFile(paths.CSV, func(f *os.File) error { return WriteLedgerCSV(f, ledger) }); err != nil {
			return written, fmt.Errorf("writing %s: %w", paths.CSV, err)
		}
		written = append(written, paths.CSV)
	}
	if opts.Chart {
		if err := writeFile(paths.HTML, func(f *os.File) error { return WriteChartHTML(f, ledger, opts.Title) }); err != nil {
			return written, fmt.Errorf("writing %s: %w", paths.HTML, err)
		}
		written = append(written, paths.HTML)
	}

	return written, nil
}

// writeFile writes through a temp file in the same directory and renames
// it into place, so a failed run never leaves a truncated export.
func writeFile(path string, write func(f *os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".cflow-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
