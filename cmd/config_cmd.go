package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cflow/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory:  %s\n", config.DataDir(cfg))
	fmt.Printf("    Months:          %d\n", cfg.General.Months)
	fmt.Println()

	fmt.Println("  [Statement]")
	fmt.Printf("    Due day:         %d\n", cfg.Statement.DueDay)
	fmt.Printf("    Close day:       %d\n", cfg.Statement.CloseDay)
	fmt.Println()

	fmt.Println("  [Output]")
	fmt.Printf("    Directory:       %s\n", config.OutputDir(cfg))
	fmt.Printf("    CSV:             %v\n", cfg.Output.CSV)
	fmt.Printf("    Chart:           %v\n", cfg.Output.Chart)
	fmt.Println()

	fmt.Println("  [Projection]")
	fmt.Printf("    Strict:          %v\n", cfg.Projection.Strict)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:           %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `cflow setup` to reconfigure.")
	return nil
}
