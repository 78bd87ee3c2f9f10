package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/theirongolddev/cflow/internal/logger"
	"github.com/theirongolddev/cflow/internal/model"
	"github.com/theirongolddev/cflow/internal/source"
)

const stageLoad = "load"

// LoadResult holds the decoded inputs of a data directory.
type LoadResult struct {
	Inputs      Inputs
	Diagnostics model.Diagnostics
	Files       []source.DiscoveredFile
	CacheHits   int
	Reparsed    int
}

// decoded is what one input file contributes to Inputs.
type decoded struct {
	balances     []model.AccountBalance
	recurring    []model.RecurringTemplate
	supplemental []model.SupplementalTransaction
	diags        model.Diagnostics
}

func (r *LoadResult) add(d decoded) {
	r.Inputs.Balances = append(r.Inputs.Balances, d.balances...)
	r.Inputs.Recurring = append(r.Inputs.Recurring, d.recurring...)
	r.Inputs.Supplemental = append(r.Inputs.Supplemental, d.supplemental...)
	r.Diagnostics.Merge(d.diags)
}

// Load finds the latest file of every input table under dataDir and
// decodes them in parallel.
func Load(ctx context.Context, dataDir string) (*LoadResult, error) {
	result, err := discover(dataDir)
	if err != nil {
		return nil, err
	}

	decodedFiles, err := decodeAll(result.Files, decodeFile)
	if err != nil {
		return nil, err
	}
	for _, d := range decodedFiles {
		result.add(d)
	}
	result.Reparsed = len(result.Files)

	log := logger.FromContext(ctx)
	log.Info().
		Int("files", len(result.Files)).
		Int("templates", len(result.Inputs.Recurring)).
		Int("supplemental", len(result.Inputs.Supplemental)).
		Msg("loaded inputs")

	return result, nil
}

// discover scans dataDir and checks that the required tables are present.
// A missing supplemental table only earns a diagnostic.
func discover(dataDir string) (*LoadResult, error) {
	found, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	result := &LoadResult{}
	for _, kind := range source.Kinds {
		df, ok := found[kind]
		if ok {
			result.Files = append(result.Files, df)
			continue
		}
		if kind == source.KindSupplemental {
			result.Diagnostics.Add(model.Diagnostic{
				Kind:    model.DiagMissingInput,
				Source:  stageLoad,
				Row:     -1,
				Value:   string(kind),
				Message: fmt.Sprintf("no %s files in %s; projecting recurring transactions only", kind, dataDir),
			})
			continue
		}
		return nil, fmt.Errorf("%w: no %s files in %s", model.ErrEmptyInput, kind, dataDir)
	}
	return result, nil
}

func decodeFile(df source.DiscoveredFile) (decoded, error) {
	switch df.Kind {
	case source.KindBalances:
		res, err := source.ParseBalancesFile(df.Path)
		return decoded{balances: res.Rows, diags: res.Diagnostics}, err
	case source.KindRecurring:
		res, err := source.ParseRecurringFile(df.Path)
		return decoded{recurring: res.Rows, diags: res.Diagnostics}, err
	case source.KindSupplemental:
		res, err := source.ParseSupplementalFile(df.Path)
		return decoded{supplemental: res.Rows, diags: res.Diagnostics}, err
	}
	return decoded{}, fmt.Errorf("unknown input table %q", df.Kind)
}

// decodeAll runs decode over files concurrently and returns the results in
// file order. Every failure is reported, not only the first.
func decodeAll(files []source.DiscoveredFile, decode func(source.DiscoveredFile) (decoded, error)) ([]decoded, error) {
	results := make([]decoded, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	wg.Add(len(files))
	for i := range files {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = decode(files[i])
		}(i)
	}
	wg.Wait()

	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if merr == nil {
		return results, nil
	}
	if len(merr.Errors) == 1 {
		return nil, merr.Errors[0]
	}
	return nil, merr
}
