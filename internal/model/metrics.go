package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerSummary holds the headline numbers of a projected ledger.
type LedgerSummary struct {
	Rows   int
	Events int // rows carrying a real transaction (no seed, no statement rows)

	Start time.Time
	End   time.Time

	TotalInflow  decimal.Decimal
	TotalOutflow decimal.Decimal // negative or zero

	StartBank    decimal.NullDecimal
	EndBank      decimal.NullDecimal
	EndCCStmt    decimal.NullDecimal
	EndCCTotal   decimal.NullDecimal
	EndNetCCStmt decimal.NullDecimal

	LowestBank     decimal.NullDecimal
	LowestBankDate time.Time

	// FirstOverdraft is the first date the bank balance goes below zero,
	// zero if it never does.
	FirstOverdraft time.Time

	UnsetRows int // rows left with null balances
}

// MonthlyStats holds one calendar month of the ledger.
type MonthlyStats struct {
	Month    time.Time // first day of the month
	Events   int
	Inflow   decimal.Decimal
	Outflow  decimal.Decimal
	Net      decimal.Decimal
	EndBank  decimal.NullDecimal
	LowBank  decimal.NullDecimal
	EndCCTot decimal.NullDecimal
}

// CategoryStats holds the totals of one transaction category.
type CategoryStats struct {
	Category     string
	Events       int
	Inflow       decimal.Decimal
	Outflow      decimal.Decimal
	Net          decimal.Decimal
	SharePercent float64 // share of all outflow
}
