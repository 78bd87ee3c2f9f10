package model

import "fmt"

// DiagnosticKind classifies a non-fatal issue found during a run.
type DiagnosticKind string

const (
	DiagExpiredTemplate   DiagnosticKind = "expired_template"
	DiagDateParse         DiagnosticKind = "date_parse"
	DiagSameDayOccurrence DiagnosticKind = "same_day_occurrence"
	DiagUnknownChargeTo   DiagnosticKind = "unknown_charge_to"
	DiagMissingInput      DiagnosticKind = "missing_input"
	DiagProrated          DiagnosticKind = "prorated"
)

// Diagnostic is a non-fatal issue reported alongside a result.
type Diagnostic struct {
	Kind        DiagnosticKind
	Source      string // input file or pipeline stage
	Row         int    // data row (1-based for files, ledger index for rows), -1 if n/a
	Transaction string
	Value       string
	Message     string
}

func (d Diagnostic) String() string {
	if d.Row >= 0 {
		return fmt.Sprintf("%s: %s (row %d): %s", d.Kind, d.Source, d.Row, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Source, d.Message)
}

// Diagnostics collects issues in the order they were found.
type Diagnostics []Diagnostic

// Add appends a diagnostic.
func (ds *Diagnostics) Add(d Diagnostic) {
	*ds = append(*ds, d)
}

// Merge appends all of other.
func (ds *Diagnostics) Merge(other Diagnostics) {
	*ds = append(*ds, other...)
}

// OfKind returns the diagnostics of the given kind.
func (ds Diagnostics) OfKind(kind DiagnosticKind) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns everything except informational entries.
func (ds Diagnostics) Warnings() Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Kind != DiagProrated {
			out = append(out, d)
		}
	}
	return out
}
