package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cflow/internal/cli"
)

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "List the projected occurrences of recurring transactions",
	RunE:  runRecurring,
}

func init() {
	rootCmd.AddCommand(recurringCmd)
}

func runRecurring(cmd *cobra.Command, _ []string) error {
	p, _, err := runProjection(cmd.Context())
	if err != nil {
		return err
	}

	if len(p.Recurring) == 0 {
		fmt.Println("\n  No recurring transactions fall inside the projection window.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RECURRING  %s", p.Window)))
	fmt.Println()

	var rows [][]string
	for _, ev := range p.Recurring {
		rows = append(rows, []string{
			cli.FormatDate(ev.Date),
			cli.Truncate(ev.Transaction, 32),
			ev.Category,
			string(ev.ChargeTo),
			cli.Money(ev.Amount),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"Date", "Transaction", "Category", "Charge To", "Amount"},
		Rows:     rows,
		LeftCols: 4,
	}))
	fmt.Printf("  %s occurrences\n", cli.FormatNumber(int64(len(p.Recurring))))

	return nil
}
