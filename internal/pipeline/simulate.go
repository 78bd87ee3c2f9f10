package pipeline

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cflow/internal/model"
)

const stageSimulate = "simulate"

// SimulateOptions controls how the simulator treats rows it cannot apply.
type SimulateOptions struct {
	// FailOnUnknownChargeTo aborts the run at the first row whose charge_to
	// has no balance rule instead of nulling its balances.
	FailOnUnknownChargeTo bool
}

// Simulate replays the ledger from the seed row and returns a new ledger
// with IDs, running balances and net columns filled in.
//
// Row i is computed only from row i-1 and its own event:
//
//	bank             bank += amount
//	cc               cctotal -= amount
//	statement_due    bank -= ccstmt; cctotal -= ccstmt; ccstmt = 0
//	statement_close  ccstmt = cctotal
//
// A row with any other charge_to is reported and left with null balances;
// nulls then carry into every later row.
func Simulate(rows []model.LedgerRow, opts SimulateOptions) ([]model.LedgerRow, model.Diagnostics, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: ledger has no rows", model.ErrEmptyInput)
	}
	if !rows[0].Seed || !rows[0].HasBalances() {
		return nil, nil, fmt.Errorf("%w: ledger row 0 is not a seeded current-balances row", model.ErrEmptyInput)
	}

	var diags model.Diagnostics
	out := make([]model.LedgerRow, len(rows))

	for i, r := range rows {
		r.ID = i
		if i > 0 {
			prev := out[i-1]
			bank, stmt, total, ok := transition(prev, r)
			if !ok {
				if opts.FailOnUnknownChargeTo {
					return nil, diags, fmt.Errorf("%w: row %d has %q", model.ErrUnknownChargeTo, i, r.ChargeTo)
				}
				diags.Add(model.Diagnostic{
					Kind:        model.DiagUnknownChargeTo,
					Source:      stageSimulate,
					Row:         i,
					Transaction: r.Transaction,
					Value:       string(r.ChargeTo),
					Message:     fmt.Sprintf("row %d has improper charge_to %q; balances left unset", i, r.ChargeTo),
				})
			}
			r.BankBal, r.CCStmtBal, r.CCTotalBal = bank, stmt, total
		}
		r.NetBankCCStmt = subNull(r.BankBal, r.CCStmtBal)
		r.NetBankCCTotal = subNull(r.BankBal, r.CCTotalBal)
		out[i] = r
	}

	return out, diags, nil
}

// transition applies cur's event to prev's balances. ok is false when
// cur.ChargeTo has no rule, in which case all balances are null.
func transition(prev, cur model.LedgerRow) (bank, stmt, total decimal.NullDecimal, ok bool) {
	amount := decimal.NewNullDecimal(cur.Amount)

	switch cur.ChargeTo {
	case model.ChargeBank:
		return addNull(prev.BankBal, amount), prev.CCStmtBal, prev.CCTotalBal, true
	case model.ChargeCC:
		return prev.BankBal, prev.CCStmtBal, subNull(prev.CCTotalBal, amount), true
	case model.ChargeStatementDue:
		zero := decimal.NewNullDecimal(decimal.Zero)
		if !prev.CCStmtBal.Valid {
			zero = decimal.NullDecimal{}
		}
		return subNull(prev.BankBal, prev.CCStmtBal), zero, subNull(prev.CCTotalBal, prev.CCStmtBal), true
	case model.ChargeStatementClose:
		return prev.BankBal, prev.CCTotalBal, prev.CCTotalBal, true
	}
	return decimal.NullDecimal{}, decimal.NullDecimal{}, decimal.NullDecimal{}, false
}

func addNull(a, b decimal.NullDecimal) decimal.NullDecimal {
	if !a.Valid || !b.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(a.Decimal.Add(b.Decimal))
}

func subNull(a, b decimal.NullDecimal) decimal.NullDecimal {
	if !a.Valid || !b.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(a.Decimal.Sub(b.Decimal))
}
