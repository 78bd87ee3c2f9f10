// Package cmd implements the cflow CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/cflow/internal/config"
	"github.com/theirongolddev/cflow/internal/logger"
	"github.com/theirongolddev/cflow/internal/model"
	"github.com/theirongolddev/cflow/internal/pipeline"
	"github.com/theirongolddev/cflow/internal/source"
	"github.com/theirongolddev/cflow/internal/store"
	"github.com/theirongolddev/cflow/internal/theme"
)

var (
	flagDataDir  string
	flagMonths   int
	flagDueDay   int
	flagCloseDay int
	flagToday    string
	flagNoCache  bool
	flagQuiet    bool
	flagStrict   bool
)

// cfg is the loaded config with command-line overrides applied.
var cfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:               "cflow",
	Short:             "Household cash flow projection",
	Long:              "Project bank and credit card balances forward from current balances,\nrecurring transactions and one-off supplemental transactions.",
	Example:           "  cflow\n  cflow -n 12 --due-day 25\n  cflow ledger --from 2024-03-01 --category food",
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	RunE:              runProject,
}

// Execute is the main entry point called from main.go.
func Execute() {
	cc.Init(&cc.Config{
		RootCmd:  rootCmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	d := config.DefaultConfig()

	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", d.General.DataDir, "Directory holding the input table folders")
	rootCmd.PersistentFlags().IntVarP(&flagMonths, "months", "n", d.General.Months, "Months to project")
	rootCmd.PersistentFlags().IntVar(&flagDueDay, "due-day", d.Statement.DueDay, "Credit card statement due day of month")
	rootCmd.PersistentFlags().IntVar(&flagCloseDay, "close-day", d.Statement.CloseDay, "Credit card statement close day of month")
	rootCmd.PersistentFlags().StringVar(&flagToday, "today", "", "Project from this date instead of today (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the SQLite input cache, reparse everything")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "Fail on an unknown charge_to instead of leaving balances unset")
}

// prepare loads the config, lets explicitly set flags override it and puts
// the logger in the command context.
func prepare(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.General.DataDir = flagDataDir
	}
	if flags.Changed("months") {
		cfg.General.Months = flagMonths
	}
	if flags.Changed("due-day") {
		cfg.Statement.DueDay = flagDueDay
	}
	if flags.Changed("close-day") {
		cfg.Statement.CloseDay = flagCloseDay
	}
	if flags.Changed("strict") {
		cfg.Projection.Strict = flagStrict
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	theme.SetActive(cfg.Appearance.Theme)

	log := logger.New(flagQuiet).With().Str("run", uuid.NewString()).Logger()
	cmd.SetContext(logger.WithContext(cmd.Context(), log))
	return nil
}

// today returns --today, or the current date.
func today() (time.Time, error) {
	if flagToday == "" {
		return model.Day(time.Now()), nil
	}
	t, err := source.ParseDate(flagToday)
	if err != nil {
		return time.Time{}, fmt.Errorf("--today: %w", err)
	}
	return model.Day(t), nil
}

// loadInputs is the shared input loading path used by all commands.
// Uses the SQLite cache when available and falls back to a full parse.
func loadInputs(ctx context.Context) (*pipeline.LoadResult, error) {
	log := logger.FromContext(ctx)
	dataDir := config.DataDir(cfg)

	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			log.Warn().Err(err).Msg("cache unavailable, doing full parse")
		} else {
			defer func() { _ = cache.Close() }()

			result, err := pipeline.LoadWithCache(ctx, dataDir, cache)
			if err == nil {
				return result, nil
			}
			if isInputError(err) {
				return nil, err
			}
			log.Warn().Err(err).Msg("cache error, falling back to full parse")
		}
	}

	return pipeline.Load(ctx, dataDir)
}

// isInputError reports whether err is about the input files themselves,
// so retrying without the cache cannot help.
func isInputError(err error) bool {
	return errors.Is(err, model.ErrInputSchema) || errors.Is(err, model.ErrEmptyInput)
}

// runProjection loads the inputs and projects them with the current
// settings.
func runProjection(ctx context.Context) (*pipeline.Projection, *pipeline.LoadResult, error) {
	loaded, err := loadInputs(ctx)
	if err != nil {
		return nil, nil, err
	}
	// Logged before projecting so a failed run still reports them.
	logger.Diagnostics(logger.FromContext(ctx), loaded.Diagnostics)

	day, err := today()
	if err != nil {
		return nil, nil, err
	}

	p, err := pipeline.Project(ctx, loaded.Inputs, pipeline.Options{
		Today:                 day,
		Months:                cfg.General.Months,
		StatementDueDay:       cfg.Statement.DueDay,
		StatementCloseDay:     cfg.Statement.CloseDay,
		FailOnUnknownChargeTo: cfg.Projection.Strict,
	})
	if err != nil {
		return nil, loaded, err
	}

	// Load diagnostics come first so warnings read in pipeline order.
	all := append(model.Diagnostics{}, loaded.Diagnostics...)
	all.Merge(p.Diagnostics)
	p.Diagnostics = all

	return p, loaded, nil
}
