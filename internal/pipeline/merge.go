package pipeline

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"

	"github.com/theirongolddev/cflow/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Merge combines recurring occurrences with supplemental transactions into
// one ordered sequence. Duplicates are kept. Every event must carry a date,
// a transaction name and a charge_to; otherwise Merge fails with a
// *model.SchemaError wrapping model.ErrSchemaMismatch.
func Merge(recurring, supplemental []model.ProjectedEvent) ([]model.ProjectedEvent, error) {
	var errs *multierror.Error
	check := func(label string, events []model.ProjectedEvent) {
		for i, ev := range events {
			if err := validate.Struct(ev); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s event %d: %w", label, i, err))
			}
		}
	}
	check("recurring", recurring)
	check("supplemental", supplemental)
	if errs != nil {
		return nil, &model.SchemaError{Kind: model.ErrSchemaMismatch, Table: "merge", Err: errs.ErrorOrNil()}
	}

	merged := make([]model.ProjectedEvent, 0, len(recurring)+len(supplemental))
	merged = append(merged, recurring...)
	merged = append(merged, supplemental...)
	SortEvents(merged)
	return merged, nil
}
