package pipeline

import (
	"time"

	"github.com/theirongolddev/cflow/internal/model"
)

// Seed prepends the current-balances row to the ordered events.
func Seed(events []model.ProjectedEvent, snap model.Snapshot, today time.Time) []model.LedgerRow {
	rows := make([]model.LedgerRow, 0, len(events)+1)
	rows = append(rows, model.SeedRow(snap, today))
	for _, ev := range events {
		rows = append(rows, model.LedgerRow{ProjectedEvent: ev})
	}
	return rows
}

// InjectStatements adds a zero-amount statement event after the last row of
// every distinct date, on or after today, whose day of month is day. Rows of
// one date need not be adjacent: a date split into several runs still gets a
// single statement row, after its last row. Existing rows are copied
// unchanged, so the result is exactly one row longer per matched date.
func InjectStatements(rows []model.LedgerRow, today time.Time, day int, action model.ChargeTo) []model.LedgerRow {
	today = model.Day(today)

	lastOfDate := make(map[time.Time]int)
	for i, r := range rows {
		if r.Date.Day() != day || r.Date.Before(today) {
			continue
		}
		lastOfDate[model.Day(r.Date)] = i
	}

	out := make([]model.LedgerRow, 0, len(rows)+len(lastOfDate))
	for i, r := range rows {
		out = append(out, r)

		if last, ok := lastOfDate[model.Day(r.Date)]; !ok || last != i {
			continue
		}
		out = append(out, model.LedgerRow{
			ProjectedEvent: model.ProjectedEvent{
				Date:        r.Date,
				Transaction: string(action),
				Category:    string(action),
				ChargeTo:    action,
			},
		})
	}
	return out
}
