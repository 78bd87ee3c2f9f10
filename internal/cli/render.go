package cli

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"golang.org/x/term"

	"github.com/theirongolddev/cflow/internal/model"
	"github.com/theirongolddev/cflow/internal/theme"
)

// Styles are rebuilt from theme.Active on every call so a theme picked
// from config applies.
func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.Active.Text).Align(lipgloss.Center)
}

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.Active.Accent)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Active.Text)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Active.TextMuted)
}

func dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Active.TextDim)
}

func warnStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Active.Warning)
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
	// LeftCols is the number of leading left-aligned columns; the rest are
	// right-aligned. Zero means one.
	LeftCols int
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle().Render(title))
}

// pad pads s with spaces to width display cells. Styled strings are
// measured without their escape sequences.
func pad(s string, width int, right bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// RenderTable renders a bordered table with headers and rows. A row holding
// the single cell "---" renders as a separator.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	leftCols := t.LeftCols
	if leftCols <= 0 {
		leftCols = 1
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	dim := dimStyle()
	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(dim.Render(left))
		for i, w := range widths {
			b.WriteString(dim.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dim.Render(mid))
			}
		}
		b.WriteString(dim.Render(right))
		b.WriteString("\n")
		return b.String()
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle().Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))

	if len(t.Headers) > 0 {
		b.WriteString(dim.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle().Render(" " + pad(h, widths[i], i >= leftCols) + " "))
			if i < numCols-1 {
				b.WriteString(dim.Render("│"))
			}
		}
		b.WriteString(dim.Render("│"))
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤"))
	}

	value := valueStyle()
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}

		b.WriteString(dim.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(value.Render(" " + pad(cell, widths[i], i >= leftCols) + " "))
			if i < numCols-1 {
				b.WriteString(dim.Render("│"))
			}
		}
		b.WriteString(dim.Render("│"))
		b.WriteString("\n")
	}

	b.WriteString(rule("╰", "┴", "╯"))

	return b.String()
}

// Money renders an amount colored by its sign.
func Money(d decimal.Decimal) string {
	color := theme.Active.Positive
	if d.IsNegative() {
		color = theme.Active.Negative
	}
	return lipgloss.NewStyle().Foreground(color).Render(FormatMoney(d))
}

// Balance renders a running balance colored by its sign, muted when unset.
func Balance(d decimal.NullDecimal) string {
	if !d.Valid {
		return mutedStyle().Render(NullPlaceholder)
	}
	return Money(d.Decimal)
}

// RenderSparkline generates a unicode block sparkline from a series of
// values. The lowest value maps to the lowest block, so series that dip
// below zero still show their shape.
func RenderSparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	b.Grow(len(values) * 3)
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		b.WriteRune(blocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Render(b.String())
}

// TerminalWidth returns the width of stdout when it is a terminal, or def.
func TerminalWidth(def int) int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return def
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return def
	}
	return w
}

// Downsample reduces values to at most n points by keeping the last value
// of each bucket.
func Downsample(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	out := make([]float64, n)
	for i := range out {
		end := (i + 1) * len(values) / n
		out[i] = values[end-1]
	}
	return out
}

// BalanceSeries extracts one balance column as floats for plotting. Null
// balances repeat the previous value.
func BalanceSeries(ledger []model.LedgerRow, pick func(model.LedgerRow) decimal.NullDecimal) []float64 {
	out := make([]float64, 0, len(ledger))
	prev := 0.0
	for _, r := range ledger {
		if v := pick(r); v.Valid {
			prev = v.Decimal.InexactFloat64()
		}
		out = append(out, prev)
	}
	return out
}

// RenderHorizontalBar renders a horizontal bar chart entry.
func RenderHorizontalBar(value, maxValue float64, maxWidth int, color lipgloss.Color) string {
	if maxValue <= 0 {
		return ""
	}
	barLen := int(math.Abs(value) / maxValue * float64(maxWidth))
	barLen = min(max(barLen, 0), maxWidth)
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", barLen))
}

// RenderDiagnostics lists warnings under a heading; informational
// diagnostics are left out. Returns "" when there is nothing to show.
func RenderDiagnostics(diags model.Diagnostics) string {
	warnings := diags.Warnings()
	if len(warnings) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(warnStyle().Render(fmt.Sprintf("%d warning(s)", len(warnings))))
	b.WriteString("\n")
	for _, d := range warnings {
		b.WriteString("  ")
		b.WriteString(mutedStyle().Render("• " + d.String()))
		b.WriteString("\n")
	}
	return b.String()
}

// Label renders a muted label followed by a value, for summary blocks.
func Label(label, value string) string {
	return fmt.Sprintf("  %s %s", mutedStyle().Render(pad(label+":", 22, false)), value)
}
