package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cflow/internal/cli"
	"github.com/theirongolddev/cflow/internal/pipeline"
	"github.com/theirongolddev/cflow/internal/theme"
)

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "Month-by-month money in, money out and balances",
	RunE:  runMonths,
}

func init() {
	rootCmd.AddCommand(monthsCmd)
}

func runMonths(cmd *cobra.Command, _ []string) error {
	p, _, err := runProjection(cmd.Context())
	if err != nil {
		return err
	}

	months := pipeline.AggregateMonths(p.Ledger)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MONTHS  %s", p.Window)))
	fmt.Println()

	var rows [][]string
	var closing []float64
	for _, m := range months {
		rows = append(rows, []string{
			m.Month.Format("Jan 2006"),
			cli.FormatNumber(int64(m.Events)),
			cli.Money(m.Inflow),
			cli.Money(m.Outflow),
			cli.Money(m.Net),
			cli.Balance(m.LowBank),
			cli.Balance(m.EndBank),
			cli.Balance(m.EndCCTot),
		})
		if m.EndBank.Valid {
			closing = append(closing, m.EndBank.Decimal.InexactFloat64())
		}
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Txns", "In", "Out", "Net", "Low Bank", "End Bank", "End CC Total"},
		Rows:    rows,
	}))
	fmt.Println(cli.Label("Closing bank trend", cli.RenderSparkline(closing, theme.Active.Bank)))

	return nil
}
