package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cflow/internal/model"
)

// DefaultChartTitle is used when WriteChartHTML gets an empty title.
const DefaultChartTitle = "Projected Bank and Credit Card Balances"

// series is one plotted balance column.
type series struct {
	name  string
	color string
	pick  func(model.LedgerRow) decimal.NullDecimal
}

// chartSeries lists the plotted balances in legend order. net_bank_cctotal
// is exported to CSV but not plotted.
var chartSeries = []series{
	{"bank_bal", "green", func(r model.LedgerRow) decimal.NullDecimal { return r.BankBal }},
	{"ccstmt_bal", "red", func(r model.LedgerRow) decimal.NullDecimal { return r.CCStmtBal }},
	{"cctotal_bal", "lightcoral", func(r model.LedgerRow) decimal.NullDecimal { return r.CCTotalBal }},
	{"net_bank_ccstmt", "blue", func(r model.LedgerRow) decimal.NullDecimal { return r.NetBankCCStmt }},
}

// WriteChartHTML renders the ledger balances as a self-contained
// interactive line chart. Each ledger row is one point; the point name
// carries the transaction so it shows in the tooltip. Null balances leave
// a gap.
func WriteChartHTML(w io.Writer, ledger []model.LedgerRow, title string) error {
	if title == "" {
		title = DefaultChartTitle
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "Click a legend entry to hide or show it",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Balances ($)"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	labels := make([]string, len(ledger))
	for i, r := range ledger {
		labels[i] = r.Date.Format(model.DateLayout)
	}
	line.SetXAxis(labels)

	for _, s := range chartSeries {
		points := make([]opts.LineData, len(ledger))
		for i, r := range ledger {
			points[i] = opts.LineData{Name: pointName(r)}
			if v := s.pick(r); v.Valid {
				points[i].Value = v.Decimal.InexactFloat64()
			}
		}
		line.AddSeries(s.name, points,
			charts.WithLineStyleOpts(opts.LineStyle{Color: s.color, Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.color}),
		)
	}

	return line.Render(w)
}

func pointName(r model.LedgerRow) string {
	if r.Seed {
		return r.Transaction
	}
	return fmt.Sprintf("%s (%s, %s)", r.Transaction, r.Amount.StringFixed(2), r.ChargeTo)
}
