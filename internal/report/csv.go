// Package report writes a projected ledger to its export artifacts: a CSV
// table and an interactive HTML chart.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cflow/internal/model"
)

// LedgerColumns is the header of the exported ledger table.
var LedgerColumns = []string{
	"transaction_id",
	"date",
	"bank_bal",
	"ccstmt_bal",
	"cctotal_bal",
	"net_bank_ccstmt",
	"net_bank_cctotal",
	"transaction_amount",
	"transaction",
	"category",
	"charge_to",
}

// WriteLedgerCSV writes one line per ledger row. Null balances and the seed
// row's amount are written as empty cells.
func WriteLedgerCSV(w io.Writer, ledger []model.LedgerRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(LedgerColumns); err != nil {
		return err
	}

	for _, r := range ledger {
		amount := r.Amount.String()
		if r.Seed {
			amount = ""
		}
		record := []string{
			strconv.Itoa(r.ID),
			r.Date.Format(model.DateLayout),
			nullString(r.BankBal),
			nullString(r.CCStmtBal),
			nullString(r.CCTotalBal),
			nullString(r.NetBankCCStmt),
			nullString(r.NetBankCCTotal),
			amount,
			r.Transaction,
			r.Category,
			string(r.ChargeTo),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
