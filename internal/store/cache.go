// Package store provides a SQLite-backed cache of decoded input files.
//
// The cache only ever holds what a fresh decode of the same file would
// produce; deleting it loses nothing.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cflow/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache provides SQLite-backed input caching.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a file.
type FileInfo struct {
	Kind      string
	MtimeNs   int64
	SizeBytes int64
}

// Matches reports whether the tracked file still has the given mtime and size.
func (fi FileInfo) Matches(mtimeNs, sizeBytes int64) bool {
	return fi.MtimeNs == mtimeNs && fi.SizeBytes == sizeBytes
}

// GetTrackedFiles returns a map of file_path -> FileInfo for all tracked files.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, kind, mtime_ns, size_bytes FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.Kind, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// replaceFile drops everything cached for path and records it afresh, then
// lets insert add the decoded rows, all in one transaction.
func (c *Cache) replaceFile(path string, fi FileInfo, diags model.Diagnostics, insert func(tx *sql.Tx) error) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteFile(tx, path); err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT INTO file_tracker (file_path, kind, mtime_ns, size_bytes, parsed_at)
		VALUES (?, ?, ?, ?, ?)`,
		path, fi.Kind, fi.MtimeNs, fi.SizeBytes, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	if err := insert(tx); err != nil {
		return err
	}

	for i, d := range diags {
		_, err = tx.Exec(`INSERT INTO file_diagnostics
			(file_path, seq, kind, row_num, transaction_name, value, message)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			path, i, string(d.Kind), d.Row, d.Transaction, d.Value, d.Message)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func deleteFile(tx *sql.Tx, path string) error {
	for _, table := range []string{
		"file_diagnostics", "recurring_templates", "supplemental_transactions",
		"account_balances", "file_tracker",
	} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE file_path = ?", path); err != nil {
			return err
		}
	}
	return nil
}

// DeleteFile removes a tracked file and everything decoded from it.
func (c *Cache) DeleteFile(path string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteFile(tx, path); err != nil {
		return err
	}
	return tx.Commit()
}

// FileCount returns the number of tracked files.
func (c *Cache) FileCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM file_tracker").Scan(&count)
	return count, err
}

// SaveRecurring caches the decoded templates of a recurring-transactions file.
func (c *Cache) SaveRecurring(path string, fi FileInfo, rows []model.RecurringTemplate, diags model.Diagnostics) error {
	return c.replaceFile(path, fi, diags, func(tx *sql.Tx) error {
		for i, r := range rows {
			var endDate sql.NullString
			if r.EndDate != nil {
				endDate = sql.NullString{String: r.EndDate.Format(model.DateLayout), Valid: true}
			}
			precise := 0
			if r.PreciseOnDate {
				precise = 1
			}
			_, err := tx.Exec(`INSERT INTO recurring_templates
				(file_path, row_num, transaction_name, amount, frequency, on_date,
				 precise_on_date, end_date, category, charge_to)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				path, i, r.Transaction, r.Amount.String(), string(r.Frequency),
				r.OnDate.Format(model.DateLayout), precise, endDate, r.Category, string(r.ChargeTo),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadRecurring reads the cached templates of a file, in file order.
func (c *Cache) LoadRecurring(path string) ([]model.RecurringTemplate, model.Diagnostics, error) {
	rows, err := c.db.Query(`SELECT
		transaction_name, amount, frequency, on_date, precise_on_date, end_date, category, charge_to
		FROM recurring_templates WHERE file_path = ? ORDER BY row_num`, path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.RecurringTemplate
	for rows.Next() {
		var (
			r                        model.RecurringTemplate
			amount, freq, on, charge string
			precise                  int
			endDate, category        sql.NullString
		)
		if err := rows.Scan(&r.Transaction, &amount, &freq, &on, &precise, &endDate, &category, &charge); err != nil {
			return nil, nil, err
		}
		if r.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, nil, fmt.Errorf("cached amount %q: %w", amount, err)
		}
		if r.OnDate, err = time.Parse(model.DateLayout, on); err != nil {
			return nil, nil, err
		}
		if endDate.Valid && endDate.String != "" {
			end, err := time.Parse(model.DateLayout, endDate.String)
			if err != nil {
				return nil, nil, err
			}
			r.EndDate = &end
		}
		r.Frequency = model.Frequency(freq)
		r.PreciseOnDate = precise != 0
		r.Category = category.String
		r.ChargeTo = model.ChargeTo(charge)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	diags, err := c.loadDiagnostics(path)
	return out, diags, err
}

// SaveSupplemental caches the decoded rows of a supplemental-transactions file.
func (c *Cache) SaveSupplemental(path string, fi FileInfo, rows []model.SupplementalTransaction, diags model.Diagnostics) error {
	return c.replaceFile(path, fi, diags, func(tx *sql.Tx) error {
		for i, r := range rows {
			_, err := tx.Exec(`INSERT INTO supplemental_transactions
				(file_path, row_num, date, transaction_amount, transaction_name, category, charge_to)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				path, i, r.Date.Format(model.DateLayout), r.Amount.String(),
				r.Transaction, r.Category, string(r.ChargeTo),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadSupplemental reads the cached rows of a file, in file order.
func (c *Cache) LoadSupplemental(path string) ([]model.SupplementalTransaction, model.Diagnostics, error) {
	rows, err := c.db.Query(`SELECT date, transaction_amount, transaction_name, category, charge_to
		FROM supplemental_transactions WHERE file_path = ? ORDER BY row_num`, path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.SupplementalTransaction
	for rows.Next() {
		var (
			r                    model.SupplementalTransaction
			date, amount, charge string
			category             sql.NullString
		)
		if err := rows.Scan(&date, &amount, &r.Transaction, &category, &charge); err != nil {
			return nil, nil, err
		}
		if r.Date, err = time.Parse(model.DateLayout, date); err != nil {
			return nil, nil, err
		}
		if r.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, nil, fmt.Errorf("cached amount %q: %w", amount, err)
		}
		r.Category = category.String
		r.ChargeTo = model.ChargeTo(charge)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	diags, err := c.loadDiagnostics(path)
	return out, diags, err
}

// SaveBalances caches the decoded rows of a current-balances file.
func (c *Cache) SaveBalances(path string, fi FileInfo, rows []model.AccountBalance, diags model.Diagnostics) error {
	return c.replaceFile(path, fi, diags, func(tx *sql.Tx) error {
		for i, r := range rows {
			_, err := tx.Exec(`INSERT INTO account_balances
				(file_path, row_num, account, type, current_balance, statement_balance)
				VALUES (?, ?, ?, ?, ?, ?)`,
				path, i, r.Account, r.Type, r.CurrentBalance.String(), r.StatementBalance.String(),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadBalances reads the cached rows of a file, in file order.
func (c *Cache) LoadBalances(path string) ([]model.AccountBalance, model.Diagnostics, error) {
	rows, err := c.db.Query(`SELECT account, type, current_balance, statement_balance
		FROM account_balances WHERE file_path = ? ORDER BY row_num`, path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.AccountBalance
	for rows.Next() {
		var (
			r             model.AccountBalance
			account       sql.NullString
			current, stmt string
		)
		if err := rows.Scan(&account, &r.Type, &current, &stmt); err != nil {
			return nil, nil, err
		}
		if r.CurrentBalance, err = decimal.NewFromString(current); err != nil {
			return nil, nil, fmt.Errorf("cached balance %q: %w", current, err)
		}
		if r.StatementBalance, err = decimal.NewFromString(stmt); err != nil {
			return nil, nil, fmt.Errorf("cached balance %q: %w", stmt, err)
		}
		r.Account = account.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	diags, err := c.loadDiagnostics(path)
	return out, diags, err
}

func (c *Cache) loadDiagnostics(path string) (model.Diagnostics, error) {
	rows, err := c.db.Query(`SELECT kind, row_num, transaction_name, value, message
		FROM file_diagnostics WHERE file_path = ? ORDER BY seq`, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var diags model.Diagnostics
	for rows.Next() {
		var (
			d                  model.Diagnostic
			kind               string
			transaction, value sql.NullString
		)
		if err := rows.Scan(&kind, &d.Row, &transaction, &value, &d.Message); err != nil {
			return nil, err
		}
		d.Kind = model.DiagnosticKind(kind)
		d.Source = path
		d.Transaction = transaction.String
		d.Value = value.String
		diags = append(diags, d)
	}
	return diags, rows.Err()
}
