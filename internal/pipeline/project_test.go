package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/theirongolddev/cflow/internal/logger"
	"github.com/theirongolddev/cflow/internal/model"
)

func sampleInputs(t testing.TB) Inputs {
	t.Helper()
	return Inputs{
		Balances: []model.AccountBalance{
			{Account: "Checking", Type: model.AccountBank, CurrentBalance: dec("2000")},
			{Account: "Visa", Type: model.AccountCC, CurrentBalance: dec("500"), StatementBalance: dec("300")},
		},
		Recurring: []model.RecurringTemplate{
			{Transaction: "Paycheck", Amount: dec("3000"), Frequency: model.Biweekly, OnDate: mustDate(t, "2024-01-05"), PreciseOnDate: true, Category: "income", ChargeTo: model.ChargeBank},
			{Transaction: "Visa charge", Amount: dec("-100"), Frequency: model.Monthly, OnDate: mustDate(t, "2024-01-20"), PreciseOnDate: true, Category: "shopping", ChargeTo: model.ChargeCC},
		},
		Supplemental: []model.SupplementalTransaction{
			{Date: mustDate(t, "2024-02-11"), Amount: dec("-20"), Transaction: "Pharmacy", Category: "health", ChargeTo: model.ChargeCC},
			{Date: mustDate(t, "2024-02-13"), Amount: dec("-80"), Transaction: "Dinner", Category: "food", ChargeTo: model.ChargeCC},
		},
	}
}

func TestProject_EndToEnd(t *testing.T) {
	var logs bytes.Buffer
	ctx := logger.WithContext(context.Background(), logger.NewWithWriter(&logs, false))

	p, err := Project(ctx, sampleInputs(t), Options{Today: mustDate(t, "2024-02-01"), Months: 1})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	if !p.Window.End.Equal(mustDate(t, "2024-03-11")) {
		t.Errorf("window end = %s, want 2024-03-11", p.Window.End.Format(model.DateLayout))
	}

	var got []string
	for _, r := range p.Ledger {
		got = append(got, r.Date.Format("01-02")+" "+r.Transaction)
	}
	want := []string{
		"02-01 current_balances",
		"02-02 Paycheck",
		"02-11 Pharmacy",
		"02-11 statement_due",
		"02-13 Dinner",
		"02-13 statement_close",
		"02-16 Paycheck",
		"02-20 Visa charge",
		"03-01 Paycheck",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ledger mismatch (-want +got):\n%s", diff)
	}

	for i, r := range p.Ledger {
		if r.ID != i {
			t.Errorf("row %d has ID %d", i, r.ID)
		}
	}

	due := p.Ledger[3]
	assertBal(t, "due bank", due.BankBal, "4700")
	assertBal(t, "due ccstmt", due.CCStmtBal, "0")
	assertBal(t, "due cctotal", due.CCTotalBal, "220")

	last := p.Ledger[len(p.Ledger)-1]
	assertBal(t, "end bank", last.BankBal, "10700")
	assertBal(t, "end ccstmt", last.CCStmtBal, "300")
	assertBal(t, "end cctotal", last.CCTotalBal, "400")
	assertBal(t, "end net stmt", last.NetBankCCStmt, "10400")
	assertBal(t, "end net total", last.NetBankCCTotal, "10300")

	if !strings.Contains(logs.String(), "completed future cash flow projection") {
		t.Errorf("missing completion log line in %q", logs.String())
	}
}

func TestProject_EmptyInputs(t *testing.T) {
	in := sampleInputs(t)
	in.Balances = nil
	if _, err := Project(context.Background(), in, Options{Today: mustDate(t, "2024-02-01")}); !errors.Is(err, model.ErrEmptyInput) {
		t.Fatalf("no balances error = %v, want ErrEmptyInput", err)
	}

	in = sampleInputs(t)
	in.Recurring = nil
	if _, err := Project(context.Background(), in, Options{Today: mustDate(t, "2024-02-01")}); !errors.Is(err, model.ErrEmptyInput) {
		t.Fatalf("no recurring error = %v, want ErrEmptyInput", err)
	}
}

func TestProject_StrictUnknownChargeTo(t *testing.T) {
	in := sampleInputs(t)
	in.Supplemental[0].ChargeTo = "paypal"

	p, err := Project(context.Background(), in, Options{Today: mustDate(t, "2024-02-01"), Months: 1})
	if err != nil {
		t.Fatalf("lenient Project: %v", err)
	}
	if len(p.Diagnostics.OfKind(model.DiagUnknownChargeTo)) != 1 {
		t.Errorf("diagnostics = %v, want one unknown_charge_to", p.Diagnostics)
	}
	if p.Ledger[len(p.Ledger)-1].BankBal.Valid {
		t.Error("balances after an unknown charge_to should be null")
	}

	_, err = Project(context.Background(), in, Options{Today: mustDate(t, "2024-02-01"), Months: 1, FailOnUnknownChargeTo: true})
	if !errors.Is(err, model.ErrUnknownChargeTo) {
		t.Fatalf("strict Project error = %v, want ErrUnknownChargeTo", err)
	}
}

func TestProject_Defaults(t *testing.T) {
	opts := Options{Today: mustDate(t, "2024-02-01")}.withDefaults()
	if opts.Months != DefaultMonths || opts.StatementDueDay != DefaultStatementDueDay || opts.StatementCloseDay != DefaultStatementCloseDay {
		t.Fatalf("withDefaults = %+v", opts)
	}
}

func TestProject_PastDatedSupplementalOnDueDay(t *testing.T) {
	in := sampleInputs(t)
	in.Supplemental = []model.SupplementalTransaction{
		{Date: mustDate(t, "2024-01-20"), Amount: dec("-15"), Transaction: "Late fee", Category: "fees", ChargeTo: model.ChargeBank},
		{Date: mustDate(t, "2024-02-11"), Amount: dec("-20"), Transaction: "Pharmacy", Category: "health", ChargeTo: model.ChargeCC},
	}

	p, err := Project(context.Background(), in, Options{Today: mustDate(t, "2024-02-11"), Months: 1})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	due := 0
	for _, r := range p.Ledger {
		if r.ChargeTo == model.ChargeStatementDue && r.Date.Equal(mustDate(t, "2024-02-11")) {
			due++
			// The statement is paid once, after every row of the day.
			assertBal(t, "due bank", r.BankBal, "1685")
			assertBal(t, "due ccstmt", r.CCStmtBal, "0")
		}
	}
	if due != 1 {
		t.Fatalf("statement_due rows on 2024-02-11 = %d, want 1", due)
	}
}
