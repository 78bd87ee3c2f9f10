package pipeline

import (
	"sort"
	"strings"

	"github.com/theirongolddev/cflow/internal/model"
)

// Uncategorized labels events with a blank category.
const Uncategorized = "(uncategorized)"

// AggregateCategories totals the ledger's events by category, largest
// outflow first. Seed and statement rows are not events and are skipped.
func AggregateCategories(ledger []model.LedgerRow) []model.CategoryStats {
	byCategory := make(map[string]*model.CategoryStats)
	var totalOutflow float64

	for _, r := range ledger {
		if !isEvent(r) {
			continue
		}
		name := strings.TrimSpace(r.Category)
		if name == "" {
			name = Uncategorized
		}
		cs, ok := byCategory[name]
		if !ok {
			cs = &model.CategoryStats{Category: name}
			byCategory[name] = cs
		}
		cs.Events++
		if r.Amount.IsPositive() {
			cs.Inflow = cs.Inflow.Add(r.Amount)
		} else {
			cs.Outflow = cs.Outflow.Add(r.Amount)
		}
	}

	for _, cs := range byCategory {
		totalOutflow += cs.Outflow.Abs().InexactFloat64()
	}

	rows := make([]model.CategoryStats, 0, len(byCategory))
	for _, cs := range byCategory {
		cs.Net = cs.Inflow.Add(cs.Outflow)
		if totalOutflow > 0 {
			cs.SharePercent = cs.Outflow.Abs().InexactFloat64() / totalOutflow * 100
		}
		rows = append(rows, *cs)
	}

	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Outflow.Cmp(rows[j].Outflow); c != 0 {
			return c < 0
		}
		if c := rows[i].Inflow.Cmp(rows[j].Inflow); c != 0 {
			return c > 0
		}
		return rows[i].Category < rows[j].Category
	})

	return rows
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
