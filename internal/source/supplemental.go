package source

import (
	"io"
	"os"

	"github.com/theirongolddev/cflow/internal/model"
)

var supplementalColumns = []string{
	colDate, colTransactionAmount, colTransaction, colCategory, colChargeTo,
}

// ParseSupplementalFile decodes a supplemental-transactions CSV file.
func ParseSupplementalFile(path string) (Result[model.SupplementalTransaction], error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the configured data dir
	if err != nil {
		return Result[model.SupplementalTransaction]{}, err
	}
	defer func() { _ = f.Close() }()
	return ParseSupplemental(f, path)
}

// ParseSupplemental decodes one-off dated transactions.
func ParseSupplemental(r io.Reader, name string) (Result[model.SupplementalTransaction], error) {
	var res Result[model.SupplementalTransaction]

	t, err := readTable(r, name, supplementalColumns...)
	if err != nil {
		return res, err
	}

	var errs rowErrors
	for i, rec := range t.rows {
		row := i + 1
		st := model.SupplementalTransaction{
			Transaction: t.get(rec, colTransaction),
			Category:    t.get(rec, colCategory),
			ChargeTo:    model.ChargeTo(t.get(rec, colChargeTo)),
		}

		amount, err := ParseCurrency(t.get(rec, colTransactionAmount))
		if err != nil {
			errs.add(row, "transaction_amount: %v", err)
		}
		st.Amount = amount

		rawDate := t.get(rec, colDate)
		d, err := ParseDate(rawDate)
		if err != nil {
			res.Diagnostics.Add(dateDiagnostic(name, row, st.Transaction, colDate, rawDate, err))
			continue
		}
		st.Date = d

		if err := validate.Struct(st); err != nil {
			errs.addValidation(row, err)
			continue
		}
		res.Rows = append(res.Rows, st)
	}

	if err := errs.schemaError(name); err != nil {
		return Result[model.SupplementalTransaction]{}, err
	}
	return res, nil
}
