// Package pipeline turns decoded inputs into a projected cash-flow ledger
// and derives summary statistics from it.
package pipeline

import (
	"time"

	"github.com/theirongolddev/cflow/internal/model"
)

// isEvent reports whether a row carries a real transaction.
func isEvent(r model.LedgerRow) bool {
	if r.Seed {
		return false
	}
	return r.ChargeTo != model.ChargeStatementDue && r.ChargeTo != model.ChargeStatementClose
}

// Summarize computes headline statistics of a simulated ledger.
func Summarize(ledger []model.LedgerRow) model.LedgerSummary {
	var s model.LedgerSummary
	s.Rows = len(ledger)
	if len(ledger) == 0 {
		return s
	}

	s.Start = ledger[0].Date
	s.End = ledger[len(ledger)-1].Date
	s.StartBank = ledger[0].BankBal

	for _, r := range ledger {
		if !r.HasBalances() {
			s.UnsetRows++
		}
		if isEvent(r) {
			s.Events++
			if r.Amount.IsPositive() {
				s.TotalInflow = s.TotalInflow.Add(r.Amount)
			} else {
				s.TotalOutflow = s.TotalOutflow.Add(r.Amount)
			}
		}

		if !r.BankBal.Valid {
			continue
		}
		if !s.LowestBank.Valid || r.BankBal.Decimal.LessThan(s.LowestBank.Decimal) {
			s.LowestBank = r.BankBal
			s.LowestBankDate = r.Date
		}
		if s.FirstOverdraft.IsZero() && r.BankBal.Decimal.IsNegative() {
			s.FirstOverdraft = r.Date
		}
	}

	last := ledger[len(ledger)-1]
	s.EndBank = last.BankBal
	s.EndCCStmt = last.CCStmtBal
	s.EndCCTotal = last.CCTotalBal
	s.EndNetCCStmt = last.NetBankCCStmt

	return s
}

// AggregateMonths groups the ledger by calendar month, oldest first. Every
// month between the first and last row is present, so gaps show as zeros.
func AggregateMonths(ledger []model.LedgerRow) []model.MonthlyStats {
	if len(ledger) == 0 {
		return nil
	}

	monthOf := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}

	first := monthOf(ledger[0].Date)
	last := monthOf(ledger[len(ledger)-1].Date)

	var months []model.MonthlyStats
	index := make(map[time.Time]int)
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		index[m] = len(months)
		months = append(months, model.MonthlyStats{Month: m})
	}

	seen := make([]bool, len(months))
	for _, r := range ledger {
		i := index[monthOf(r.Date)]
		ms := &months[i]
		seen[i] = true
		if isEvent(r) {
			ms.Events++
			if r.Amount.IsPositive() {
				ms.Inflow = ms.Inflow.Add(r.Amount)
			} else {
				ms.Outflow = ms.Outflow.Add(r.Amount)
			}
		}
		if r.BankBal.Valid && (!ms.LowBank.Valid || r.BankBal.Decimal.LessThan(ms.LowBank.Decimal)) {
			ms.LowBank = r.BankBal
		}
		ms.EndBank = r.BankBal
		ms.EndCCTot = r.CCTotalBal
	}

	for i := range months {
		months[i].Net = months[i].Inflow.Add(months[i].Outflow)
		// Months without rows keep the balances carried from the month before.
		if i > 0 && !seen[i] {
			months[i].EndBank = months[i-1].EndBank
			months[i].LowBank = months[i-1].EndBank
			months[i].EndCCTot = months[i-1].EndCCTot
		}
	}

	return months
}

// FilterByWindow returns rows dated within [since, until]. Zero bounds are
// open.
func FilterByWindow(ledger []model.LedgerRow, since, until time.Time) []model.LedgerRow {
	if since.IsZero() && until.IsZero() {
		return ledger
	}

	var result []model.LedgerRow
	for _, r := range ledger {
		if !since.IsZero() && r.Date.Before(since) {
			continue
		}
		if !until.IsZero() && r.Date.After(until) {
			continue
		}
		result = append(result, r)
	}
	return result
}

// FilterByCategory returns rows whose category matches exactly, ignoring case.
func FilterByCategory(ledger []model.LedgerRow, category string) []model.LedgerRow {
	if category == "" {
		return ledger
	}
	var result []model.LedgerRow
	for _, r := range ledger {
		if equalFoldTrim(r.Category, category) {
			result = append(result, r)
		}
	}
	return result
}
