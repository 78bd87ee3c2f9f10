package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/cflow/internal/logger"
	"github.com/theirongolddev/cflow/internal/model"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultMonths            = 6
	DefaultStatementDueDay   = 11
	DefaultStatementCloseDay = 13
)

// Inputs are the decoded input tables of one run.
type Inputs struct {
	Balances     []model.AccountBalance
	Recurring    []model.RecurringTemplate
	Supplemental []model.SupplementalTransaction
}

// Options configures a projection run.
type Options struct {
	Today                 time.Time
	Months                int
	StatementDueDay       int
	StatementCloseDay     int
	FailOnUnknownChargeTo bool
}

func (o Options) withDefaults() Options {
	if o.Today.IsZero() {
		o.Today = time.Now()
	}
	o.Today = model.Day(o.Today)
	if o.Months <= 0 {
		o.Months = DefaultMonths
	}
	if o.StatementDueDay <= 0 {
		o.StatementDueDay = DefaultStatementDueDay
	}
	if o.StatementCloseDay <= 0 {
		o.StatementCloseDay = DefaultStatementCloseDay
	}
	return o
}

// Projection is the result of a run.
type Projection struct {
	Window      Window
	Snapshot    model.Snapshot
	Recurring   []model.ProjectedEvent
	Ledger      []model.LedgerRow
	Diagnostics model.Diagnostics
}

// Project runs the whole chain: expand recurring templates, merge the
// supplemental transactions, seed with current balances, inject statement
// due then close events, and simulate the balances.
func Project(ctx context.Context, in Inputs, opts Options) (*Projection, error) {
	log := logger.FromContext(ctx)
	opts = opts.withDefaults()

	if len(in.Balances) == 0 {
		return nil, fmt.Errorf("%w: no current balances", model.ErrEmptyInput)
	}
	if len(in.Recurring) == 0 {
		return nil, fmt.Errorf("%w: no recurring transactions", model.ErrEmptyInput)
	}

	p := &Projection{
		Window:   NewWindow(opts.Today, opts.Months, opts.StatementDueDay),
		Snapshot: model.SnapshotFromBalances(in.Balances),
	}
	log.Info().
		Str("start", p.Window.Start.Format(model.DateLayout)).
		Str("end", p.Window.End.Format(model.DateLayout)).
		Msg("projecting recurring transactions")

	recurring, diags := Expand(in.Recurring, p.Window, opts.StatementDueDay)
	p.Recurring = recurring
	p.Diagnostics.Merge(diags)

	supplemental := make([]model.ProjectedEvent, 0, len(in.Supplemental))
	for _, s := range in.Supplemental {
		supplemental = append(supplemental, s.Event())
	}
	events, err := Merge(recurring, supplemental)
	if err != nil {
		return nil, err
	}

	rows := Seed(events, p.Snapshot, opts.Today)
	rows = InjectStatements(rows, opts.Today, opts.StatementDueDay, model.ChargeStatementDue)
	rows = InjectStatements(rows, opts.Today, opts.StatementCloseDay, model.ChargeStatementClose)

	ledger, diags, err := Simulate(rows, SimulateOptions{FailOnUnknownChargeTo: opts.FailOnUnknownChargeTo})
	p.Diagnostics.Merge(diags)
	if err != nil {
		logger.Diagnostics(log, p.Diagnostics)
		return nil, err
	}
	p.Ledger = ledger

	logger.Diagnostics(log, p.Diagnostics)
	log.Info().Int("rows", len(p.Ledger)).Msg("completed future cash flow projection")

	return p, nil
}
