package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedTransaction labels the synthetic first ledger row.
const SeedTransaction = "current_balances"

// Account types accepted in the current-balances table.
const (
	AccountBank = "bank"
	AccountCC   = "cc"
)

// AccountBalance is one row of the current-balances input table.
type AccountBalance struct {
	Account          string
	Type             string `validate:"required,oneof=bank cc"`
	CurrentBalance   decimal.Decimal
	StatementBalance decimal.Decimal
}

// Snapshot holds the summed current balances that seed a projection.
type Snapshot struct {
	BankTotal        decimal.Decimal
	CCStatementTotal decimal.Decimal
	CCCurrentTotal   decimal.Decimal
}

// SnapshotFromBalances sums balances by account type. Bank statement
// balances are ignored.
func SnapshotFromBalances(balances []AccountBalance) Snapshot {
	var s Snapshot
	for _, b := range balances {
		switch b.Type {
		case AccountBank:
			s.BankTotal = s.BankTotal.Add(b.CurrentBalance)
		case AccountCC:
			s.CCStatementTotal = s.CCStatementTotal.Add(b.StatementBalance)
			s.CCCurrentTotal = s.CCCurrentTotal.Add(b.CurrentBalance)
		}
	}
	return s
}

// LedgerRow is an event plus the running balances after applying it.
// Balance columns are null until the simulator fills them, and stay null
// for rows that could not be computed.
type LedgerRow struct {
	ID int
	ProjectedEvent

	// Seed marks row 0, which carries the current balances and no event.
	Seed bool

	BankBal        decimal.NullDecimal
	CCStmtBal      decimal.NullDecimal
	CCTotalBal     decimal.NullDecimal
	NetBankCCStmt  decimal.NullDecimal
	NetBankCCTotal decimal.NullDecimal
}

// SeedRow builds the synthetic current-balances row dated today.
func SeedRow(s Snapshot, today time.Time) LedgerRow {
	return LedgerRow{
		ProjectedEvent: ProjectedEvent{
			Date:        Day(today),
			Transaction: SeedTransaction,
		},
		Seed:       true,
		BankBal:    decimal.NewNullDecimal(s.BankTotal),
		CCStmtBal:  decimal.NewNullDecimal(s.CCStatementTotal),
		CCTotalBal: decimal.NewNullDecimal(s.CCCurrentTotal),
	}
}

// HasBalances reports whether all three running balances are populated.
func (r LedgerRow) HasBalances() bool {
	return r.BankBal.Valid && r.CCStmtBal.Valid && r.CCTotalBal.Valid
}
