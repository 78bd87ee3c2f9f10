package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	date "github.com/joyt/godate"

	"github.com/theirongolddev/cflow/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// table is a header-indexed CSV body.
type table struct {
	name string
	cols map[string]int
	rows [][]string
}

// readTable reads a whole CSV and checks the header carries every required
// column. Column names are matched case-insensitively; extra columns are ignored.
func readTable(r io.Reader, name string, required ...string) (*table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &model.SchemaError{Kind: model.ErrInputSchema, Table: name, Err: err}
	}
	if len(records) == 0 {
		return nil, &model.SchemaError{Kind: model.ErrInputSchema, Table: name, Err: errors.New("missing header row")}
	}

	t := &table{
		name: name,
		cols: make(map[string]int, len(records[0])),
		rows: records[1:],
	}
	for i, h := range records[0] {
		h = strings.TrimPrefix(h, "\ufeff")
		t.cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing *multierror.Error
	for _, col := range required {
		if _, ok := t.cols[col]; !ok {
			missing = multierror.Append(missing, fmt.Errorf("missing column %q", col))
		}
	}
	if missing != nil {
		return nil, &model.SchemaError{Kind: model.ErrInputSchema, Table: name, Err: missing.ErrorOrNil()}
	}

	return t, nil
}

// get returns the trimmed cell for col, or "" when the row is short or the
// optional column is absent.
func (t *table) get(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// rowErrors accumulates every fatal row problem of a table so the caller
// sees all of them in one run.
type rowErrors struct {
	err *multierror.Error
}

func (e *rowErrors) add(row int, format string, args ...any) {
	e.err = multierror.Append(e.err, fmt.Errorf("row %d: %s", row, fmt.Sprintf(format, args...)))
}

func (e *rowErrors) addValidation(row int, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		e.add(row, "%v", err)
		return
	}
	for _, fe := range verrs {
		if fe.Param() != "" {
			e.add(row, "%s failed %s=%s (got %q)", fe.Field(), fe.Tag(), fe.Param(), fmt.Sprint(fe.Value()))
			continue
		}
		e.add(row, "%s failed %s", fe.Field(), fe.Tag())
	}
}

func (e *rowErrors) schemaError(tableName string) error {
	if e.err == nil {
		return nil
	}
	return &model.SchemaError{Kind: model.ErrInputSchema, Table: tableName, Err: e.err.ErrorOrNil()}
}

// ParseDate parses an ISO date, falling back to the looser layouts godate
// recognises (e.g. "1/15/2024", "Jan 15, 2024").
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("blank date")
	}
	if t, err := time.Parse(model.DateLayout, s); err == nil {
		return t, nil
	}
	t, _, err := date.ParseAndGetLayout(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return model.Day(t), nil
}

func parseBool(s string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(s))
}

func dateDiagnostic(tableName string, row int, transaction, col, value string, err error) model.Diagnostic {
	return model.Diagnostic{
		Kind:        model.DiagDateParse,
		Source:      tableName,
		Row:         row,
		Transaction: transaction,
		Value:       value,
		Message:     fmt.Sprintf("unparseable %s %q, row skipped: %v", col, value, err),
	}
}
