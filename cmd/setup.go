package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/cflow/internal/config"
	"github.com/theirongolddev/cflow/internal/source"
	"github.com/theirongolddev/cflow/internal/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func intField(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return errors.New("enter a whole number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

func runSetup(_ *cobra.Command, _ []string) error {
	next := cfg

	dataDir := next.General.DataDir
	months := strconv.Itoa(next.General.Months)
	dueDay := strconv.Itoa(next.Statement.DueDay)
	closeDay := strconv.Itoa(next.Statement.CloseDay)
	themeName := next.Appearance.Theme
	writeCSV := next.Output.CSV
	writeChart := next.Output.Chart

	var themeOpts []huh.Option[string]
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to cflow").
				Description("Balances, recurring and supplemental tables live in\nsubfolders of the data directory."),
			huh.NewInput().
				Title("Data directory").
				Value(&dataDir).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("data directory is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Months to project").
				Value(&months).
				Validate(intField(1, 120)),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Credit card statement due day").
				Value(&dueDay).
				Validate(intField(1, 31)),
			huh.NewInput().
				Title("Credit card statement close day").
				Value(&closeDay).
				Validate(intField(1, 31)),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),
			huh.NewConfirm().
				Title("Write the ledger CSV after each projection?").
				Value(&writeCSV),
			huh.NewConfirm().
				Title("Write the HTML balance chart after each projection?").
				Value(&writeChart),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}

	// The validators above already guarantee these parse.
	next.General.DataDir = dataDir
	next.General.Months, _ = strconv.Atoi(months)
	next.Statement.DueDay, _ = strconv.Atoi(dueDay)
	next.Statement.CloseDay, _ = strconv.Atoi(closeDay)
	next.Appearance.Theme = themeName
	next.Output.CSV = writeCSV
	next.Output.Chart = writeChart

	if err := config.Save(next); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	files, err := source.ScanDir(config.DataDir(next))
	if err != nil || len(files) == 0 {
		fmt.Printf("  No input tables found under %s yet.\n", config.DataDir(next))
	} else {
		fmt.Printf("  Found %d input tables under %s.\n", len(files), config.DataDir(next))
	}
	fmt.Println("  Run `cflow setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
