package source

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/theirongolddev/cflow/internal/model"
)

var balanceColumns = []string{colType, colCurrentBalance, colStatementBalance}

// ParseBalancesFile decodes a current-balances CSV file.
func ParseBalancesFile(path string) (Result[model.AccountBalance], error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the configured data dir
	if err != nil {
		return Result[model.AccountBalance]{}, err
	}
	defer func() { _ = f.Close() }()
	return ParseBalances(f, path)
}

// ParseBalances decodes current account balances. A blank statement_balance
// reads as zero (bank accounts have none); a blank current_balance is an error.
func ParseBalances(r io.Reader, name string) (Result[model.AccountBalance], error) {
	var res Result[model.AccountBalance]

	t, err := readTable(r, name, balanceColumns...)
	if err != nil {
		return res, err
	}

	var errs rowErrors
	for i, rec := range t.rows {
		row := i + 1
		b := model.AccountBalance{
			Account: t.get(rec, colAccount),
			Type:    strings.ToLower(t.get(rec, colType)),
		}

		current, err := ParseCurrency(t.get(rec, colCurrentBalance))
		if err != nil {
			errs.add(row, "current_balance: %v", err)
		}
		b.CurrentBalance = current

		stmt, err := ParseCurrency(t.get(rec, colStatementBalance))
		if err != nil && !errors.Is(err, ErrBlankAmount) {
			errs.add(row, "statement_balance: %v", err)
		}
		b.StatementBalance = stmt

		if err := validate.Struct(b); err != nil {
			errs.addValidation(row, err)
			continue
		}
		res.Rows = append(res.Rows, b)
	}

	if err := errs.schemaError(name); err != nil {
		return Result[model.AccountBalance]{}, err
	}
	return res, nil
}
