// Package model defines domain types for cflow projections.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the date format used by input files and exports.
const DateLayout = "2006-01-02"

// ChargeTo is the account effect of an event. It drives which balance
// transition the simulator applies.
type ChargeTo string

const (
	ChargeBank           ChargeTo = "bank"
	ChargeCC             ChargeTo = "cc"
	ChargeStatementDue   ChargeTo = "statement_due"
	ChargeStatementClose ChargeTo = "statement_close"
)

// Known reports whether c is one of the four recognised charge targets.
func (c ChargeTo) Known() bool {
	switch c {
	case ChargeBank, ChargeCC, ChargeStatementDue, ChargeStatementClose:
		return true
	}
	return false
}

// Frequency is the recurrence step of a RecurringTemplate.
type Frequency string

const (
	Weekly     Frequency = "weekly"
	Biweekly   Frequency = "biweekly"
	Monthly    Frequency = "monthly"
	Quarterly  Frequency = "quarterly"
	Biannually Frequency = "biannually"
	Annually   Frequency = "annually"
)

// RecurringTemplate describes a transaction that repeats at a fixed
// frequency, optionally until EndDate.
type RecurringTemplate struct {
	Transaction   string `validate:"required"`
	Amount        decimal.Decimal
	Frequency     Frequency `validate:"required,oneof=weekly biweekly monthly quarterly biannually annually"`
	OnDate        time.Time `validate:"required"`
	PreciseOnDate bool
	EndDate       *time.Time
	Category      string
	ChargeTo      ChargeTo `validate:"required"`
}

// SupplementalTransaction is a one-off, already dated transaction.
type SupplementalTransaction struct {
	Date        time.Time `validate:"required"`
	Amount      decimal.Decimal
	Transaction string `validate:"required"`
	Category    string
	ChargeTo    ChargeTo `validate:"required"`
}

// Event converts the transaction into a pipeline event.
func (s SupplementalTransaction) Event() ProjectedEvent {
	return ProjectedEvent{
		Date:        s.Date,
		Amount:      s.Amount,
		Transaction: s.Transaction,
		Category:    s.Category,
		ChargeTo:    s.ChargeTo,
	}
}

// ProjectedEvent is one dated transaction flowing through the projection.
// Sequences are ordered by (Date ascending, Amount descending).
type ProjectedEvent struct {
	Date        time.Time `validate:"required"`
	Amount      decimal.Decimal
	Transaction string `validate:"required"`
	Category    string
	ChargeTo    ChargeTo `validate:"required"`
}

// Less reports whether e sorts before o.
func (e ProjectedEvent) Less(o ProjectedEvent) bool {
	if !e.Date.Equal(o.Date) {
		return e.Date.Before(o.Date)
	}
	return e.Amount.GreaterThan(o.Amount)
}

// Day truncates t to its calendar date at midnight UTC. All dates handled
// by the pipeline are normalised this way so they compare with Equal.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
