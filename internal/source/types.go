package source

import "github.com/theirongolddev/cflow/internal/model"

// Kind identifies one of the input tables.
type Kind string

// Input tables, named after the sub-folder of the data directory holding them.
const (
	KindBalances     Kind = "current_balances"
	KindRecurring    Kind = "recurring_transactions"
	KindSupplemental Kind = "supplemental_transactions"
)

// Kinds lists every input table in load order.
var Kinds = []Kind{KindBalances, KindRecurring, KindSupplemental}

// DiscoveredFile is the latest input file found for a table.
type DiscoveredFile struct {
	Path      string
	Kind      Kind
	MtimeNs   int64
	SizeBytes int64
}

// Result holds the decoded rows of one input file plus the rows that were
// skipped with a diagnostic.
type Result[T any] struct {
	Rows        []T
	Diagnostics model.Diagnostics
}

// Column names of the input tables.
const (
	colTransaction       = "transaction"
	colAmount            = "amount"
	colFrequency         = "frequency"
	colOnDate            = "on_date"
	colPreciseOnDate     = "precise_on_date"
	colEndDate           = "end_date"
	colCategory          = "category"
	colChargeTo          = "charge_to"
	colDate              = "date"
	colTransactionAmount = "transaction_amount"
	colAccount           = "account"
	colType              = "type"
	colCurrentBalance    = "current_balance"
	colStatementBalance  = "statement_balance"
)
