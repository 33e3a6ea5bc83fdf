package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/meenmo/riskcore/curve"
)

// Snapshot is one market state: every curve needed to price the portfolio.
type Snapshot map[curve.ID]*curve.NodalCurve

// Clone copies the snapshot map. Curves are immutable and shared.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for id, c := range s {
		out[id] = c
	}
	return out
}

// Pricer values a portfolio against one market snapshot. Implementations
// live outside this module.
type Pricer interface {
	Price(ctx context.Context, snapshot Snapshot) (float64, error)
}

// PricerFunc adapts a function to the Pricer interface.
type PricerFunc func(ctx context.Context, snapshot Snapshot) (float64, error)

func (f PricerFunc) Price(ctx context.Context, snapshot Snapshot) (float64, error) {
	return f(ctx, snapshot)
}

// Point is one entry of a scenario series.
type Point struct {
	Date  time.Time
	Value float64
}

// Series is the replay output: one point per scenario index, index 0
// being the unperturbed base valuation.
type Series struct {
	points []Point
}

// Size returns the number of points including the base.
func (s *Series) Size() int {
	return len(s.points)
}

// Point returns the entry at scenario index i.
func (s *Series) Point(i int) Point {
	return s.points[i]
}

// Base returns the unperturbed valuation.
func (s *Series) Base() float64 {
	return s.points[0].Value
}

// PnL derives the profit-and-loss series: scenario value minus base, for
// every scenario index from 1 on, keeping the scenario dates.
func (s *Series) PnL() []Point {
	out := make([]Point, 0, len(s.points)-1)
	base := s.Base()
	for _, p := range s.points[1:] {
		out = append(out, Point{Date: p.Date, Value: p.Value - base})
	}
	return out
}

// ReplayParams bundles the inputs to Replay.
type ReplayParams struct {
	// Base is the market snapshot on the valuation date.
	Base Snapshot
	// Mappings route each shift set onto the curves it perturbs.
	Mappings []PerturbationMapping
	// ScenarioDates labels the series: index 0 is the base valuation
	// date, indices 1..N-1 are the scenario dates. Its length fixes the
	// number of pricer invocations.
	ScenarioDates []time.Time
	// Pricer is invoked once per scenario.
	Pricer Pricer
}

// Replay prices the base snapshot, then every scenario with its shifts
// applied additively (per shift type) to cloned curves, and assembles the
// results into a Series ordered by scenario index.
//
// Scenarios are independent; this driver prices them sequentially and
// deterministically. A pricer failure for any scenario aborts the whole
// replay with no partial series, since a P&L series with a missing point
// cannot feed VaR statistics.
func Replay(ctx context.Context, params ReplayParams) (*Series, error) {
	if len(params.Base) == 0 {
		return nil, fmt.Errorf("Replay: base snapshot is required")
	}
	if params.Pricer == nil {
		return nil, fmt.Errorf("Replay: pricer is required")
	}
	if len(params.ScenarioDates) == 0 {
		return nil, fmt.Errorf("Replay: scenario dates are required")
	}

	points := make([]Point, 0, len(params.ScenarioDates))

	base, err := params.Pricer.Price(ctx, params.Base)
	if err != nil {
		return nil, fmt.Errorf("Replay: base valuation: %w", err)
	}
	points = append(points, Point{Date: params.ScenarioDates[0], Value: base})

	for i := 1; i < len(params.ScenarioDates); i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("Replay: scenario %d: %w", i, err)
		}
		perturbed, err := perturb(params.Base, params.Mappings, i)
		if err != nil {
			return nil, fmt.Errorf("Replay: scenario %d: %w", i, err)
		}
		value, err := params.Pricer.Price(ctx, perturbed)
		if err != nil {
			return nil, fmt.Errorf("Replay: scenario %d: %w", i, err)
		}
		points = append(points, Point{Date: params.ScenarioDates[i], Value: value})
	}

	return &Series{points: points}, nil
}

// perturb applies every matching mapping's shifts for one scenario to a
// cloned snapshot. Curves no mapping touches stay shared with the base.
func perturb(base Snapshot, mappings []PerturbationMapping, scenarioIndex int) (Snapshot, error) {
	out := base.Clone()
	for id, c := range base {
		shifted := c
		for _, m := range mappings {
			if m.Filter == nil || m.Shifts == nil || !m.Filter.Matches(id) {
				continue
			}
			var err error
			shifted, err = m.Shifts.ApplyTo(scenarioIndex, shifted)
			if err != nil {
				return nil, fmt.Errorf("curve %s: %w", id, err)
			}
		}
		out[id] = shifted
	}
	return out, nil
}
