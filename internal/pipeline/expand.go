package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/theirongolddev/cflow/internal/model"
)

const stageExpand = "expand"

// ExpandRecurring projects templates from today across numMonths, ending on
// statementDueDay, and prorates against the same day.
func ExpandRecurring(templates []model.RecurringTemplate, today time.Time, numMonths, statementDueDay int) ([]model.ProjectedEvent, model.Diagnostics) {
	return Expand(templates, NewWindow(today, numMonths, statementDueDay), statementDueDay)
}

// Expand turns recurring templates into dated occurrences within w.
//
// Each template steps from its OnDate by its frequency; steps before the
// window advance the cursor without emitting. A template whose EndDate is
// before the window start is skipped entirely. Beyond that expiry check, a
// template still active at the window start stops emitting after its
// EndDate rather than running to the window end. The first in-window occurrence of a
// template without a precise date is prorated to the share of the month
// left until prorateDay. Output is ordered by date, then amount descending.
func Expand(templates []model.RecurringTemplate, w Window, prorateDay int) ([]model.ProjectedEvent, model.Diagnostics) {
	var (
		events []model.ProjectedEvent
		diags  model.Diagnostics
	)

	pct := ProratePercentage(w.Start, prorateDay)

	for i, tpl := range templates {
		if tpl.EndDate != nil && w.Start.After(*tpl.EndDate) {
			diags.Add(model.Diagnostic{
				Kind:        model.DiagExpiredTemplate,
				Source:      stageExpand,
				Row:         i,
				Transaction: tpl.Transaction,
				Value:       tpl.EndDate.Format(model.DateLayout),
				Message: fmt.Sprintf("projection start %s is past end date %s for %q; consider removing it from the recurring transactions file",
					w.Start.Format(model.DateLayout), tpl.EndDate.Format(model.DateLayout), tpl.Transaction),
			})
			continue
		}

		last := w.End
		if tpl.EndDate != nil && tpl.EndDate.Before(last) {
			last = *tpl.EndDate
		}

		prorate := !tpl.PreciseOnDate
		cursor := model.Day(tpl.OnDate)
		for !cursor.After(last) {
			next, err := step(cursor, tpl.Frequency)
			if err != nil {
				diags.Add(model.Diagnostic{
					Kind:        model.DiagDateParse,
					Source:      stageExpand,
					Row:         i,
					Transaction: tpl.Transaction,
					Value:       string(tpl.Frequency),
					Message:     fmt.Sprintf("cannot step %q: %v", tpl.Transaction, err),
				})
				break
			}
			if cursor.Before(w.Start) {
				cursor = next
				continue
			}

			amount := tpl.Amount
			if prorate {
				amount = tpl.Amount.Mul(pct).Truncate(0)
				prorate = false
				diags.Add(model.Diagnostic{
					Kind:        model.DiagProrated,
					Source:      stageExpand,
					Row:         i,
					Transaction: tpl.Transaction,
					Value:       amount.String(),
					Message: fmt.Sprintf("first occurrence of %q on %s prorated from %s to %s",
						tpl.Transaction, cursor.Format(model.DateLayout), tpl.Amount, amount),
				})
			}

			if tpl.PreciseOnDate && cursor.Equal(w.Start) {
				diags.Add(model.Diagnostic{
					Kind:        model.DiagSameDayOccurrence,
					Source:      stageExpand,
					Row:         i,
					Transaction: tpl.Transaction,
					Value:       tpl.Amount.String(),
					Message: fmt.Sprintf("%q for %s is scheduled for today; make sure it is not already reflected in current balances",
						tpl.Transaction, tpl.Amount),
				})
			}

			events = append(events, model.ProjectedEvent{
				Date:        cursor,
				Amount:      amount,
				Transaction: tpl.Transaction,
				Category:    tpl.Category,
				ChargeTo:    tpl.ChargeTo,
			})
			cursor = next
		}
	}

	SortEvents(events)
	return events, diags
}

// SortEvents stably orders events by date, then amount descending.
func SortEvents(events []model.ProjectedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Less(events[j])
	})
}
