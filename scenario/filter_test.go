package scenario_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/meenmo/riskcore/curve"
	"github.com/meenmo/riskcore/scenario"
)

func TestCurveFilters(t *testing.T) {
	t.Parallel()

	eurDiscGBP := curve.ID{Name: "EUR-Disc", Currency: "GBP"}

	cases := []struct {
		name   string
		filter scenario.CurveFilter
		id     curve.ID
		want   bool
	}{
		{"any matches", scenario.AnyCurve{}, usdDisc, true},
		{"id exact match", scenario.CurveIDFilter{ID: eurDisc}, eurDisc, true},
		{"id rejects other name", scenario.CurveIDFilter{ID: eurDisc}, usdDisc, false},
		{"id rejects same name other currency", scenario.CurveIDFilter{ID: eurDisc}, eurDiscGBP, false},
		{"name matches across currencies", scenario.CurveNameFilter{Name: "EUR-Disc"}, eurDiscGBP, true},
		{"name rejects other name", scenario.CurveNameFilter{Name: "EUR-Disc"}, usdDisc, false},
		{"currency matches", scenario.CurveCurrencyFilter{Currency: "USD"}, usdDisc, true},
		{"currency rejects", scenario.CurveCurrencyFilter{Currency: "USD"}, eurDisc, false},
	}
	for _, tc := range cases {
		if got := tc.filter.Matches(tc.id); got != tc.want {
			t.Errorf("%s: Matches(%s) = %v, want %v", tc.name, tc.id, got, tc.want)
		}
	}
}

func TestReplay_IDFilterKeepsCurrenciesApart(t *testing.T) {
	t.Parallel()

	// Two curves share a name in different currencies; shifts routed by
	// full ID must only reach their own curve.
	eurDiscGBP := curve.ID{Name: "EUR-Disc", Currency: "GBP"}
	base := scenario.Snapshot{
		eurDisc:    nodal(t, eurDisc, []string{"1Y"}, []float64{0.01}),
		eurDiscGBP: nodal(t, eurDiscGBP, []string{"1Y"}, []float64{0.02}),
	}

	b := scenario.NewShiftsBuilder(scenario.Absolute)
	if err := b.AddShift(1, "1Y", 0.005); err != nil {
		t.Fatalf("AddShift error: %v", err)
	}
	shifts, err := b.Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	mappings := []scenario.PerturbationMapping{
		{Filter: scenario.CurveIDFilter{ID: eurDisc}, Shifts: shifts},
	}

	var gotEUR, gotGBP float64
	pricer := scenario.PricerFunc(func(ctx context.Context, s scenario.Snapshot) (float64, error) {
		gotEUR = s[eurDisc].Value(0)
		gotGBP = s[eurDiscGBP].Value(0)
		return 0, nil
	})

	_, err = scenario.Replay(context.Background(), scenario.ReplayParams{
		Base:          base,
		Mappings:      mappings,
		ScenarioDates: []time.Time{snapD0, snapD1},
		Pricer:        pricer,
	})
	if err != nil {
		t.Fatalf("Replay error: %v", err)
	}
	if math.Abs(gotEUR-0.015) > 1e-12 {
		t.Errorf("EUR curve value = %v, want 0.015", gotEUR)
	}
	if gotGBP != 0.02 {
		t.Errorf("GBP curve shifted: got %v, want 0.02", gotGBP)
	}
}
