package pipeline

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cflow/internal/model"
)

// AvgDaysPerMonth is the average month length used for prorating.
var AvgDaysPerMonth = decimal.RequireFromString("30.437")

// Window is the inclusive date range a projection covers.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow starts the window today and ends it numMonths later on
// endDay. Days past the end of the target month clamp to its last day.
func NewWindow(today time.Time, numMonths, endDay int) Window {
	start := model.Day(today)
	end := AddMonths(start, numMonths)
	return Window{
		Start: start,
		End:   withDay(end, endDay),
	}
}

// Contains reports whether t falls within the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Duration is the length of the window, counting both ends.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start) + 24*time.Hour
}

func (w Window) String() string {
	return fmt.Sprintf("%s through %s", w.Start.Format(model.DateLayout), w.End.Format(model.DateLayout))
}

// AddMonths adds n calendar months, clamping the day to the last day of
// the resulting month (Jan 31 + 1 month = Feb 28 or 29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	year := y + total/12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	target := time.Month(month + 1)
	if last := model.DaysIn(year, target); d > last {
		d = last
	}
	return time.Date(year, target, d, 0, 0, 0, 0, time.UTC)
}

// withDay moves t to the given day of its month, clamped to the month's length.
func withDay(t time.Time, day int) time.Time {
	y, m, _ := t.Date()
	if day < 1 {
		day = 1
	}
	if last := model.DaysIn(y, m); day > last {
		day = last
	}
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// step advances t by one recurrence of f.
func step(t time.Time, f model.Frequency) (time.Time, error) {
	switch f {
	case model.Weekly:
		return t.AddDate(0, 0, 7), nil
	case model.Biweekly:
		return t.AddDate(0, 0, 14), nil
	case model.Monthly:
		return AddMonths(t, 1), nil
	case model.Quarterly:
		return AddMonths(t, 3), nil
	case model.Biannually:
		return AddMonths(t, 6), nil
	case model.Annually:
		return AddMonths(t, 12), nil
	}
	return t, fmt.Errorf("unknown frequency %q", f)
}

// ProratePercentage is the share of an average month between start and the
// next prorateDay on or after it, counting both days.
func ProratePercentage(start time.Time, prorateDay int) decimal.Decimal {
	start = model.Day(start)
	next := withDay(start, prorateDay)
	if next.Before(start) {
		next = withDay(AddMonths(withDay(start, 1), 1), prorateDay)
	}
	days := int64(next.Sub(start).Hours()/24) + 1
	return decimal.NewFromInt(days).Div(AvgDaysPerMonth)
}
