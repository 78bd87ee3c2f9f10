package cmd

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/cflow/internal/cli"
	"github.com/theirongolddev/cflow/internal/config"
	"github.com/theirongolddev/cflow/internal/model"
	"github.com/theirongolddev/cflow/internal/pipeline"
	"github.com/theirongolddev/cflow/internal/report"
	"github.com/theirongolddev/cflow/internal/theme"
)

var (
	flagOutDir   string
	flagNoExport bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project balances, print a summary and save the CSV and chart",
	RunE:  runProject,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, projectCmd} {
		c.Flags().StringVarP(&flagOutDir, "out", "o", "", "Export directory (default <data-dir>/projected_cash_flow)")
		c.Flags().BoolVar(&flagNoExport, "no-export", false, "Print the summary only, write no files")
	}
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	p, loaded, err := runProjection(cmd.Context())
	if err != nil {
		return err
	}

	s := pipeline.Summarize(p.Ledger)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CASH FLOW  %s", p.Window)))
	fmt.Println()

	rows := [][]string{
		{"Window", fmt.Sprintf("%s (%s)", p.Window, cli.FormatSpan(p.Window.Duration()))},
		{"Ledger rows", fmt.Sprintf("%s (%s transactions)", cli.FormatNumber(int64(s.Rows)), cli.FormatNumber(int64(s.Events)))},
		{"---"},
		{"Bank now", cli.Balance(s.StartBank)},
		{"Bank at end", cli.Balance(s.EndBank)},
		{"CC statement at end", cli.Balance(s.EndCCStmt)},
		{"CC total at end", cli.Balance(s.EndCCTotal)},
		{"Net (bank - stmt)", cli.Balance(s.EndNetCCStmt)},
		{"---"},
		{"Money in", cli.Money(s.TotalInflow)},
		{"Money out", cli.Money(s.TotalOutflow)},
		{"Lowest bank", fmt.Sprintf("%s on %s", cli.Balance(s.LowestBank), cli.FormatDate(s.LowestBankDate))},
	}
	if !s.FirstOverdraft.IsZero() {
		rows = append(rows, []string{"First overdraft", cli.FormatDate(s.FirstOverdraft)})
	}
	if s.UnsetRows > 0 {
		rows = append(rows, []string{"Rows without balances", cli.FormatNumber(int64(s.UnsetRows))})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	bank := cli.BalanceSeries(p.Ledger, func(r model.LedgerRow) decimal.NullDecimal { return r.BankBal })
	fmt.Println()
	fmt.Println(cli.Label("Bank balance", cli.RenderSparkline(cli.Downsample(bank, max(cli.TerminalWidth(80)-28, 10)), theme.Active.Bank)))

	if warnings := cli.RenderDiagnostics(p.Diagnostics); warnings != "" {
		fmt.Fprintln(os.Stderr)
		fmt.Fprint(os.Stderr, warnings)
	}

	if flagNoExport {
		return nil
	}

	outDir := config.OutputDir(cfg)
	if flagOutDir != "" {
		outDir = config.ExpandHome(flagOutDir)
	}
	written, err := report.Save(outDir, p.Window.Start, p.Ledger, report.SaveOptions{
		CSV:   cfg.Output.CSV,
		Chart: cfg.Output.Chart,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	for _, path := range written {
		fmt.Printf("  Saved %s\n", path)
	}
	if loaded.CacheHits > 0 && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %d of %d input files read from cache\n", loaded.CacheHits, len(loaded.Files))
	}
	fmt.Println()

	return nil
}
