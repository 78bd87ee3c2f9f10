package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cflow/internal/cli"
	"github.com/theirongolddev/cflow/internal/pipeline"
	"github.com/theirongolddev/cflow/internal/source"
)

var (
	flagFrom     string
	flagTo       string
	flagCategory string
	flagLimit    int
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Print the projected ledger row by row",
	RunE:  runLedger,
}

func init() {
	ledgerCmd.Flags().StringVar(&flagFrom, "from", "", "Only rows on or after this date")
	ledgerCmd.Flags().StringVar(&flagTo, "to", "", "Only rows on or before this date")
	ledgerCmd.Flags().StringVarP(&flagCategory, "category", "c", "", "Only rows in this category")
	ledgerCmd.Flags().IntVar(&flagLimit, "limit", 0, "Show at most this many rows (0 = all)")
	rootCmd.AddCommand(ledgerCmd)
}

func parseOptionalDate(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := source.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", flag, err)
	}
	return t, nil
}

func runLedger(cmd *cobra.Command, _ []string) error {
	from, err := parseOptionalDate("from", flagFrom)
	if err != nil {
		return err
	}
	to, err := parseOptionalDate("to", flagTo)
	if err != nil {
		return err
	}

	p, _, err := runProjection(cmd.Context())
	if err != nil {
		return err
	}

	rows := pipeline.FilterByWindow(p.Ledger, from, to)
	rows = pipeline.FilterByCategory(rows, flagCategory)
	if len(rows) == 0 {
		fmt.Println("\n  No ledger rows match the filters.")
		return nil
	}
	truncated := 0
	if flagLimit > 0 && len(rows) > flagLimit {
		truncated = len(rows) - flagLimit
		rows = rows[:flagLimit]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LEDGER  %s", p.Window)))
	fmt.Println()

	var tableRows [][]string
	for _, r := range rows {
		amount := cli.Money(r.Amount)
		if r.Seed {
			amount = ""
		}
		tableRows = append(tableRows, []string{
			strconv.Itoa(r.ID),
			cli.FormatDate(r.Date),
			cli.Truncate(r.Transaction, 28),
			string(r.ChargeTo),
			amount,
			cli.Balance(r.BankBal),
			cli.Balance(r.CCStmtBal),
			cli.Balance(r.CCTotalBal),
			cli.Balance(r.NetBankCCStmt),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"ID", "Date", "Transaction", "Charge To", "Amount", "Bank", "CC Stmt", "CC Total", "Net (stmt)"},
		Rows:     tableRows,
		LeftCols: 4,
	}))
	if truncated > 0 {
		fmt.Printf("  ... %d more rows (raise --limit to see them)\n", truncated)
	}

	return nil
}
