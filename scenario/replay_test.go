package scenario_test

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/meenmo/riskcore/curve"
	"github.com/meenmo/riskcore/scenario"
)

var usdDisc = curve.ID{Name: "USD-Disc", Currency: "USD"}

func replayDates() []time.Time {
	return []time.Time{snapD0, snapD1, snapD2}
}

func TestReplay_PnLSeries(t *testing.T) {
	t.Parallel()

	base := scenario.Snapshot{
		eurDisc: nodal(t, eurDisc, []string{"1Y"}, []float64{0.01}),
	}

	// Canned valuations: 100.0 base, then 101.2 and 98.7.
	values := []float64{100.0, 101.2, 98.7}
	call := 0
	pricer := scenario.PricerFunc(func(ctx context.Context, s scenario.Snapshot) (float64, error) {
		v := values[call]
		call++
		return v, nil
	})

	series, err := scenario.Replay(context.Background(), scenario.ReplayParams{
		Base:          base,
		ScenarioDates: replayDates(),
		Pricer:        pricer,
	})
	if err != nil {
		t.Fatalf("Replay error: %v", err)
	}
	if series.Size() != 3 {
		t.Fatalf("series size mismatch: got %d", series.Size())
	}
	if series.Base() != 100.0 {
		t.Fatalf("base valuation mismatch: got %v", series.Base())
	}

	pnl := series.PnL()
	if len(pnl) != 2 {
		t.Fatalf("expected 2 P&L points, got %d", len(pnl))
	}
	if math.Abs(pnl[0].Value-1.2) > 1e-12 {
		t.Fatalf("scenario 1 P&L mismatch: got %v want +1.2", pnl[0].Value)
	}
	if math.Abs(pnl[1].Value-(-1.3)) > 1e-12 {
		t.Fatalf("scenario 2 P&L mismatch: got %v want -1.3", pnl[1].Value)
	}
	if !pnl[0].Date.Equal(snapD1) || !pnl[1].Date.Equal(snapD2) {
		t.Fatalf("P&L dates mismatch: got %v, %v", pnl[0].Date, pnl[1].Date)
	}
}

func TestReplay_AppliesShiftsThroughFilters(t *testing.T) {
	t.Parallel()

	base := scenario.Snapshot{
		eurDisc: nodal(t, eurDisc, []string{"1Y"}, []float64{0.01}),
		usdDisc: nodal(t, usdDisc, []string{"1Y"}, []float64{0.03}),
	}

	b := scenario.NewShiftsBuilder(scenario.Absolute)
	if err := b.AddShift(1, "1Y", 0.005); err != nil {
		t.Fatalf("AddShift error: %v", err)
	}
	shifts, err := b.Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	// Only the EUR curve is perturbed.
	mappings := []scenario.PerturbationMapping{
		{Filter: scenario.CurveNameFilter{Name: "EUR-Disc"}, Shifts: shifts},
	}

	// Pricer reads the 1Y nodes directly so the test observes the
	// perturbed snapshot.
	pricer := scenario.PricerFunc(func(ctx context.Context, s scenario.Snapshot) (float64, error) {
		return s[eurDisc].Value(0) + s[usdDisc].Value(0), nil
	})

	series, err := scenario.Replay(context.Background(), scenario.ReplayParams{
		Base:          base,
		Mappings:      mappings,
		ScenarioDates: []time.Time{snapD0, snapD1},
		Pricer:        pricer,
	})
	if err != nil {
		t.Fatalf("Replay error: %v", err)
	}

	if math.Abs(series.Base()-0.04) > 1e-12 {
		t.Fatalf("base mismatch: got %v", series.Base())
	}
	// EUR shifted by +0.005, USD untouched.
	if got := series.Point(1).Value; math.Abs(got-0.045) > 1e-12 {
		t.Fatalf("scenario 1 valuation mismatch: got %v", got)
	}
	// Base snapshot curves remain unperturbed after the replay.
	if base[eurDisc].Value(0) != 0.01 {
		t.Fatalf("base snapshot mutated: got %v", base[eurDisc].Value(0))
	}
}

func TestReplay_PricerFailureAbortsWholeReplay(t *testing.T) {
	t.Parallel()

	base := scenario.Snapshot{
		eurDisc: nodal(t, eurDisc, []string{"1Y"}, []float64{0.01}),
	}
	call := 0
	pricer := scenario.PricerFunc(func(ctx context.Context, s scenario.Snapshot) (float64, error) {
		call++
		if call == 2 {
			return 0, fmt.Errorf("pricer blew up")
		}
		return 100, nil
	})

	series, err := scenario.Replay(context.Background(), scenario.ReplayParams{
		Base:          base,
		ScenarioDates: replayDates(),
		Pricer:        pricer,
	})
	if err == nil {
		t.Fatalf("expected replay to fail")
	}
	if series != nil {
		t.Fatalf("expected no partial series, got %d points", series.Size())
	}
}

func TestReplay_ContextCancellation(t *testing.T) {
	t.Parallel()

	base := scenario.Snapshot{
		eurDisc: nodal(t, eurDisc, []string{"1Y"}, []float64{0.01}),
	}
	ctx, cancel := context.WithCancel(context.Background())
	pricer := scenario.PricerFunc(func(ctx context.Context, s scenario.Snapshot) (float64, error) {
		cancel() // cancel after the base valuation
		return 100, nil
	})

	_, err := scenario.Replay(ctx, scenario.ReplayParams{
		Base:          base,
		ScenarioDates: replayDates(),
		Pricer:        pricer,
	})
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestReplay_Validation(t *testing.T) {
	t.Parallel()

	pricer := scenario.PricerFunc(func(ctx context.Context, s scenario.Snapshot) (float64, error) {
		return 0, nil
	})
	base := scenario.Snapshot{
		eurDisc: nodal(t, eurDisc, []string{"1Y"}, []float64{0.01}),
	}

	if _, err := scenario.Replay(context.Background(), scenario.ReplayParams{
		ScenarioDates: replayDates(), Pricer: pricer,
	}); err == nil {
		t.Fatalf("expected error for missing base snapshot")
	}
	if _, err := scenario.Replay(context.Background(), scenario.ReplayParams{
		Base: base, ScenarioDates: replayDates(),
	}); err == nil {
		t.Fatalf("expected error for missing pricer")
	}
	if _, err := scenario.Replay(context.Background(), scenario.ReplayParams{
		Base: base, Pricer: pricer,
	}); err == nil {
		t.Fatalf("expected error for missing scenario dates")
	}
}
