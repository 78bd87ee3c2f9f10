package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cflow/internal/cli"
	"github.com/theirongolddev/cflow/internal/pipeline"
	"github.com/theirongolddev/cflow/internal/theme"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Projected totals by category, largest spending first",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	p, _, err := runProjection(cmd.Context())
	if err != nil {
		return err
	}

	cats := pipeline.AggregateCategories(p.Ledger)
	if len(cats) == 0 {
		fmt.Println("\n  No transactions in the projection window.")
		return nil
	}

	maxShare := 0.0
	for _, c := range cats {
		maxShare = max(maxShare, c.SharePercent)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CATEGORIES  %s", p.Window)))
	fmt.Println()

	var rows [][]string
	for _, c := range cats {
		rows = append(rows, []string{
			cli.Truncate(c.Category, 24),
			cli.FormatNumber(int64(c.Events)),
			cli.Money(c.Inflow),
			cli.Money(c.Outflow),
			cli.Money(c.Net),
			cli.FormatPercent(c.SharePercent),
			cli.RenderHorizontalBar(c.SharePercent, maxShare, 20, theme.Active.Negative),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Txns", "In", "Out", "Net", "Share", ""},
		Rows:    rows,
	}))

	return nil
}
