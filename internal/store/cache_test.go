package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/cflow/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache", "inputs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestRecurringRoundTrip(t *testing.T) {
	c := openTestCache(t)
	end := day(t, "2024-12-31")
	rows := []model.RecurringTemplate{
		{
			Transaction:   "Rent",
			Amount:        decimal.RequireFromString("-1500.00"),
			Frequency:     model.Monthly,
			OnDate:        day(t, "2024-01-01"),
			PreciseOnDate: true,
			EndDate:       &end,
			Category:      "Housing",
			ChargeTo:      model.ChargeBank,
		},
		{
			Transaction: "Coffee",
			Amount:      decimal.RequireFromString("-4.5"),
			Frequency:   model.Weekly,
			OnDate:      day(t, "2024-01-03"),
			ChargeTo:    model.ChargeCC,
		},
	}
	diags := model.Diagnostics{{
		Kind:        model.DiagDateParse,
		Source:      "r.csv",
		Row:         3,
		Transaction: "Gym",
		Value:       "not-a-date",
		Message:     "row 3: cannot parse on_date",
	}}

	fi := FileInfo{Kind: "recurring_transactions", MtimeNs: 42, SizeBytes: 100}
	require.NoError(t, c.SaveRecurring("r.csv", fi, rows, diags))

	got, gotDiags, err := c.LoadRecurring("r.csv")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Rent", got[0].Transaction)
	assert.True(t, got[0].Amount.Equal(rows[0].Amount))
	assert.True(t, got[0].PreciseOnDate)
	require.NotNil(t, got[0].EndDate)
	assert.True(t, got[0].EndDate.Equal(end))
	assert.Equal(t, "Housing", got[0].Category)
	assert.Nil(t, got[1].EndDate)
	assert.Equal(t, model.ChargeCC, got[1].ChargeTo)
	assert.Equal(t, model.Weekly, got[1].Frequency)
	assert.Equal(t, diags, gotDiags)

	tracked, err := c.GetTrackedFiles()
	require.NoError(t, err)
	assert.Equal(t, fi, tracked["r.csv"])
	assert.True(t, tracked["r.csv"].Matches(42, 100))
	assert.False(t, tracked["r.csv"].Matches(43, 100))
}

func TestSaveReplacesPreviousRows(t *testing.T) {
	c := openTestCache(t)
	fi := FileInfo{Kind: "supplemental_transactions", MtimeNs: 1, SizeBytes: 10}
	first := []model.SupplementalTransaction{
		{Date: day(t, "2024-02-01"), Amount: decimal.NewFromInt(-20), Transaction: "a", ChargeTo: model.ChargeBank},
		{Date: day(t, "2024-02-02"), Amount: decimal.NewFromInt(-30), Transaction: "b", ChargeTo: model.ChargeCC},
	}
	require.NoError(t, c.SaveSupplemental("s.csv", fi, first, nil))

	fi.MtimeNs = 2
	second := first[:1]
	require.NoError(t, c.SaveSupplemental("s.csv", fi, second, nil))

	got, diags, err := c.LoadSupplemental("s.csv")
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Transaction)
	assert.True(t, got[0].Date.Equal(day(t, "2024-02-01")))

	n, err := c.FileCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBalancesRoundTripAndDelete(t *testing.T) {
	c := openTestCache(t)
	rows := []model.AccountBalance{
		{Account: "Checking", Type: model.AccountBank, CurrentBalance: decimal.NewFromInt(2000)},
		{Account: "Visa", Type: model.AccountCC, CurrentBalance: decimal.NewFromInt(500), StatementBalance: decimal.NewFromInt(300)},
	}
	require.NoError(t, c.SaveBalances("b.csv", FileInfo{Kind: "current_balances"}, rows, nil))

	got, _, err := c.LoadBalances("b.csv")
	require.NoError(t, err)
	require.Len(t, got, 2)
	snap := model.SnapshotFromBalances(got)
	assert.True(t, snap.BankTotal.Equal(decimal.NewFromInt(2000)))
	assert.True(t, snap.CCStatementTotal.Equal(decimal.NewFromInt(300)))
	assert.True(t, snap.CCCurrentTotal.Equal(decimal.NewFromInt(500)))

	require.NoError(t, c.DeleteFile("b.csv"))
	got, _, err = c.LoadBalances("b.csv")
	require.NoError(t, err)
	assert.Empty(t, got)

	tracked, err := c.GetTrackedFiles()
	require.NoError(t, err)
	assert.Empty(t, tracked)
}
