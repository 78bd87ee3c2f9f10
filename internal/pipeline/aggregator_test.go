package pipeline

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/theirongolddev/cflow/internal/model"
)

func sampleLedger(t *testing.T) []model.LedgerRow {
	t.Helper()
	p, err := Project(context.Background(), sampleInputs(t), Options{Today: mustDate(t, "2024-02-01"), Months: 1})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	return p.Ledger
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleLedger(t))

	if s.Rows != 9 || s.Events != 6 {
		t.Errorf("Rows/Events = %d/%d, want 9/6", s.Rows, s.Events)
	}
	if !s.TotalInflow.Equal(dec("9000")) {
		t.Errorf("TotalInflow = %s, want 9000", s.TotalInflow)
	}
	if !s.TotalOutflow.Equal(dec("-200")) {
		t.Errorf("TotalOutflow = %s, want -200", s.TotalOutflow)
	}
	assertBal(t, "start bank", s.StartBank, "2000")
	assertBal(t, "end bank", s.EndBank, "10700")
	assertBal(t, "lowest bank", s.LowestBank, "2000")
	if !s.LowestBankDate.Equal(mustDate(t, "2024-02-01")) {
		t.Errorf("LowestBankDate = %s", s.LowestBankDate.Format(model.DateLayout))
	}
	if !s.FirstOverdraft.IsZero() {
		t.Errorf("FirstOverdraft = %s, want none", s.FirstOverdraft.Format(model.DateLayout))
	}
	if s.UnsetRows != 0 {
		t.Errorf("UnsetRows = %d, want 0", s.UnsetRows)
	}
}

func TestSummarize_Overdraft(t *testing.T) {
	rows := seedLedger(t, "100", "0", "0",
		ev(t, "2024-02-03", "-250", model.ChargeBank),
		ev(t, "2024-02-04", "-50", model.ChargeBank),
		ev(t, "2024-02-05", "500", model.ChargeBank),
	)
	ledger, _, err := Simulate(rows, SimulateOptions{})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	s := Summarize(ledger)
	if !s.FirstOverdraft.Equal(mustDate(t, "2024-02-03")) {
		t.Errorf("FirstOverdraft = %s, want 2024-02-03", s.FirstOverdraft.Format(model.DateLayout))
	}
	assertBal(t, "lowest", s.LowestBank, "-200")
	if !s.LowestBankDate.Equal(mustDate(t, "2024-02-04")) {
		t.Errorf("LowestBankDate = %s, want 2024-02-04", s.LowestBankDate.Format(model.DateLayout))
	}
}

func TestAggregateMonths(t *testing.T) {
	months := AggregateMonths(sampleLedger(t))
	if len(months) != 2 {
		t.Fatalf("len(months) = %d, want 2", len(months))
	}

	feb, mar := months[0], months[1]
	if feb.Events != 5 || mar.Events != 1 {
		t.Errorf("events = %d/%d, want 5/1", feb.Events, mar.Events)
	}
	if !feb.Net.Equal(dec("5800")) {
		t.Errorf("Feb net = %s, want 5800", feb.Net)
	}
	assertBal(t, "Feb end bank", feb.EndBank, "7700")
	assertBal(t, "Feb low bank", feb.LowBank, "2000")
	assertBal(t, "Mar end bank", mar.EndBank, "10700")
}

func TestAggregateMonths_FillsGaps(t *testing.T) {
	rows := seedLedger(t, "100", "0", "0", ev(t, "2024-04-03", "50", model.ChargeBank))
	ledger, _, err := Simulate(rows, SimulateOptions{})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	months := AggregateMonths(ledger)
	var got []string
	for _, m := range months {
		got = append(got, m.Month.Format("2006-01"))
	}
	if diff := cmp.Diff([]string{"2024-02", "2024-03", "2024-04"}, got); diff != "" {
		t.Fatalf("months mismatch (-want +got):\n%s", diff)
	}
	assertBal(t, "Mar carried bank", months[1].EndBank, "100")
	if months[1].Events != 0 {
		t.Errorf("Mar events = %d, want 0", months[1].Events)
	}
}

func TestAggregateCategories(t *testing.T) {
	cats := AggregateCategories(sampleLedger(t))

	var names []string
	for _, c := range cats {
		names = append(names, c.Category)
	}
	if diff := cmp.Diff([]string{"shopping", "food", "health", "income"}, names); diff != "" {
		t.Fatalf("category order mismatch (-want +got):\n%s", diff)
	}

	shopping := cats[0]
	if !shopping.Outflow.Equal(dec("-100")) || shopping.Events != 1 {
		t.Errorf("shopping = %+v", shopping)
	}
	if shopping.SharePercent != 50 {
		t.Errorf("shopping share = %v, want 50", shopping.SharePercent)
	}
	income := cats[3]
	if !income.Inflow.Equal(dec("9000")) || income.Events != 3 {
		t.Errorf("income = %+v", income)
	}
}

func TestFilterByWindowAndCategory(t *testing.T) {
	ledger := sampleLedger(t)

	feb := FilterByWindow(ledger, mustDate(t, "2024-02-11"), mustDate(t, "2024-02-13"))
	if len(feb) != 4 {
		t.Errorf("FilterByWindow returned %d rows, want 4", len(feb))
	}

	food := FilterByCategory(ledger, " FOOD ")
	if len(food) != 1 || food[0].Transaction != "Dinner" {
		t.Errorf("FilterByCategory = %v", food)
	}
	if got := FilterByCategory(ledger, ""); len(got) != len(ledger) {
		t.Errorf("empty filter dropped rows")
	}
}
