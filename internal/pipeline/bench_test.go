package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/cflow/internal/model"
	"github.com/theirongolddev/cflow/internal/store"
)

// benchInputs builds a household with n recurring templates spread over
// every frequency and charge target.
func benchInputs(b *testing.B, n int) Inputs {
	b.Helper()
	in := sampleInputs(b)
	freqs := []model.Frequency{model.Weekly, model.Biweekly, model.Monthly, model.Quarterly}
	charges := []model.ChargeTo{model.ChargeBank, model.ChargeCC}
	for i := 0; i < n; i++ {
		in.Recurring = append(in.Recurring, model.RecurringTemplate{
			Transaction:   fmt.Sprintf("bill %d", i),
			Amount:        dec(fmt.Sprintf("-%d.25", 10+i%90)),
			Frequency:     freqs[i%len(freqs)],
			OnDate:        mustDate(b, "2024-01-01").AddDate(0, 0, i%28),
			PreciseOnDate: i%3 != 0,
			Category:      fmt.Sprintf("cat%d", i%7),
			ChargeTo:      charges[i%len(charges)],
		})
	}
	return in
}

func BenchmarkProject(b *testing.B) {
	in := benchInputs(b, 200)
	opts := Options{Today: mustDate(b, "2024-02-01"), Months: 24}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Project(context.Background(), in, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLoad(b *testing.B) {
	dataDir := writeSampleData(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Load(context.Background(), dataDir); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLoadWithCache(b *testing.B) {
	dataDir := writeSampleData(b)
	cache, err := store.Open(filepath.Join(b.TempDir(), "inputs.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := LoadWithCache(context.Background(), dataDir, cache); err != nil {
			b.Fatal(err)
		}
	}
}
