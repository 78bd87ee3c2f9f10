package source

import (
	"io"
	"os"

	"github.com/theirongolddev/cflow/internal/model"
)

var recurringColumns = []string{
	colTransaction, colAmount, colFrequency, colOnDate,
	colPreciseOnDate, colEndDate, colCategory, colChargeTo,
}

// ParseRecurringFile decodes a recurring-transactions CSV file.
func ParseRecurringFile(path string) (Result[model.RecurringTemplate], error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the configured data dir
	if err != nil {
		return Result[model.RecurringTemplate]{}, err
	}
	defer func() { _ = f.Close() }()
	return ParseRecurring(f, path)
}

// ParseRecurring decodes recurring transaction templates.
//
// Malformed amounts, booleans, frequencies or missing required values fail
// the whole table with a *model.SchemaError listing every bad row. Rows whose
// on_date or end_date cannot be parsed are skipped with a date_parse
// diagnostic so the remaining templates still project.
func ParseRecurring(r io.Reader, name string) (Result[model.RecurringTemplate], error) {
	var res Result[model.RecurringTemplate]

	t, err := readTable(r, name, recurringColumns...)
	if err != nil {
		return res, err
	}

	var errs rowErrors
	for i, rec := range t.rows {
		row := i + 1
		tpl := model.RecurringTemplate{
			Transaction: t.get(rec, colTransaction),
			Frequency:   model.Frequency(t.get(rec, colFrequency)),
			Category:    t.get(rec, colCategory),
			ChargeTo:    model.ChargeTo(t.get(rec, colChargeTo)),
		}

		amount, err := ParseCurrency(t.get(rec, colAmount))
		if err != nil {
			errs.add(row, "amount: %v", err)
		}
		tpl.Amount = amount

		precise, err := parseBool(t.get(rec, colPreciseOnDate))
		if err != nil {
			errs.add(row, "precise_on_date: %v", err)
		}
		tpl.PreciseOnDate = precise

		rawOn := t.get(rec, colOnDate)
		onDate, err := ParseDate(rawOn)
		if err != nil {
			res.Diagnostics.Add(dateDiagnostic(name, row, tpl.Transaction, colOnDate, rawOn, err))
			continue
		}
		tpl.OnDate = onDate

		if rawEnd := t.get(rec, colEndDate); rawEnd != "" {
			endDate, err := ParseDate(rawEnd)
			if err != nil {
				res.Diagnostics.Add(dateDiagnostic(name, row, tpl.Transaction, colEndDate, rawEnd, err))
				continue
			}
			tpl.EndDate = &endDate
		}

		if err := validate.Struct(tpl); err != nil {
			errs.addValidation(row, err)
			continue
		}
		res.Rows = append(res.Rows, tpl)
	}

	if err := errs.schemaError(name); err != nil {
		return Result[model.RecurringTemplate]{}, err
	}
	return res, nil
}
