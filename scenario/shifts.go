// Package scenario derives curve perturbations from historical data and
// replays them against a base market snapshot to produce a P&L series.
package scenario

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/meenmo/riskcore/curve"
)

// ShiftType determines how a shift combines with a node value.
type ShiftType string

const (
	// Absolute adds the shift to the node value.
	Absolute ShiftType = "ABSOLUTE"
	// Relative scales the node value by (1 + shift).
	Relative ShiftType = "RELATIVE"
)

// Apply combines a node value with a shift.
func (st ShiftType) Apply(value, shift float64) float64 {
	if st == Relative {
		return value * (1 + shift)
	}
	return value + shift
}

// PointShifts holds per-node shifts for a set of scenarios, keyed by
// scenario index and node label. Scenario index 0 is reserved for the
// unperturbed base case and never carries shifts.
type PointShifts struct {
	shiftType ShiftType
	shifts    map[int]map[string]float64
}

// ShiftType returns how the shifts apply to node values.
func (p *PointShifts) ShiftType() ShiftType {
	return p.shiftType
}

// Shift returns the shift for a scenario and node label, with false when
// no shift was recorded. A missing shift means "no perturbation", which
// is distinct from a recorded zero.
func (p *PointShifts) Shift(scenarioIndex int, nodeLabel string) (float64, bool) {
	byLabel, ok := p.shifts[scenarioIndex]
	if !ok {
		return 0, false
	}
	v, ok := byLabel[nodeLabel]
	return v, ok
}

// ApplyTo clones the curve with this scenario's shifts applied to the
// nodes whose labels carry a shift. Topology is unchanged; nodes without
// a recorded shift keep their base values.
func (p *PointShifts) ApplyTo(scenarioIndex int, c *curve.NodalCurve) (*curve.NodalCurve, error) {
	byLabel, ok := p.shifts[scenarioIndex]
	if !ok {
		return c, nil
	}
	values := c.Values()
	for i := range values {
		if shift, ok := byLabel[c.Metadata(i).Label]; ok {
			values[i] = p.shiftType.Apply(values[i], shift)
		}
	}
	return c.WithValues(values)
}

// ShiftsBuilder accumulates shifts per scenario and freezes them exactly
// once. The builder has two states, accumulating and built; only the
// forward transition exists, and a built builder rejects further use.
type ShiftsBuilder struct {
	shiftType ShiftType
	shifts    map[int]map[string]float64
	built     bool
}

// NewShiftsBuilder starts an accumulating builder for the shift type.
func NewShiftsBuilder(shiftType ShiftType) *ShiftsBuilder {
	return &ShiftsBuilder{
		shiftType: shiftType,
		shifts:    make(map[int]map[string]float64),
	}
}

// AddShift records a shift for one node under one scenario. Scenario
// index 0 is the base case and cannot carry shifts.
func (b *ShiftsBuilder) AddShift(scenarioIndex int, nodeLabel string, shift float64) error {
	if b.built {
		return fmt.Errorf("AddShift: builder already built")
	}
	if scenarioIndex < 1 {
		return fmt.Errorf("AddShift: scenario index %d is reserved for the base case", scenarioIndex)
	}
	if nodeLabel == "" {
		return fmt.Errorf("AddShift: node label is required")
	}
	byLabel, ok := b.shifts[scenarioIndex]
	if !ok {
		byLabel = make(map[string]float64)
		b.shifts[scenarioIndex] = byLabel
	}
	byLabel[nodeLabel] = shift
	return nil
}

// Build freezes the accumulated shifts. The builder cannot be used again.
func (b *ShiftsBuilder) Build() (*PointShifts, error) {
	if b.built {
		return nil, fmt.Errorf("Build: builder already built")
	}
	b.built = true
	shifts := b.shifts
	b.shifts = nil
	return &PointShifts{shiftType: b.shiftType, shifts: shifts}, nil
}

// History is a time-ordered set of historical calibrated curves:
// snapshot date -> curve id -> nodal curve.
type History map[time.Time]map[curve.ID]*curve.NodalCurve

// BuildShifts derives per-node shifts for one curve from consecutive
// historical snapshots. Scenario i (1-based) carries the difference
// between the node values at dates[i] and dates[i-1], keyed by the node
// label from the dates[i] snapshot.
//
// A date pair for which either snapshot lacks the curve produces no
// shifts for that scenario; downstream, a missing shift means "no
// perturbation", never zero. A pair whose node counts differ is a
// misalignment and fails the build, since a positional difference over
// mismatched nodes is economically meaningless. Label disagreement at a
// matching position is logged and the pair is skipped.
func BuildShifts(logger *slog.Logger, shiftType ShiftType, curveID curve.ID, history History, scenarioDates []time.Time) (*PointShifts, error) {
	if logger == nil {
		logger = slog.Default()
	}
	builder := NewShiftsBuilder(shiftType)

	for i := 1; i < len(scenarioDates); i++ {
		prevDate := scenarioDates[i-1]
		currDate := scenarioDates[i]

		prevCurves, ok := history[prevDate]
		if !ok {
			logger.Debug("no snapshot for date, skipping scenario",
				"curve", curveID.String(), "date", prevDate.Format("2006-01-02"), "scenario", i)
			continue
		}
		currCurves, ok := history[currDate]
		if !ok {
			logger.Debug("no snapshot for date, skipping scenario",
				"curve", curveID.String(), "date", currDate.Format("2006-01-02"), "scenario", i)
			continue
		}
		prev, ok := prevCurves[curveID]
		if !ok {
			logger.Debug("curve missing from snapshot, skipping scenario",
				"curve", curveID.String(), "date", prevDate.Format("2006-01-02"), "scenario", i)
			continue
		}
		curr, ok := currCurves[curveID]
		if !ok {
			logger.Debug("curve missing from snapshot, skipping scenario",
				"curve", curveID.String(), "date", currDate.Format("2006-01-02"), "scenario", i)
			continue
		}

		if prev.ParameterCount() != curr.ParameterCount() {
			return nil, fmt.Errorf("BuildShifts: curve %s has %d nodes on %s but %d on %s",
				curveID, prev.ParameterCount(), prevDate.Format("2006-01-02"),
				curr.ParameterCount(), currDate.Format("2006-01-02"))
		}

		aligned := true
		for k := 0; k < curr.ParameterCount(); k++ {
			if prev.Metadata(k).Label != curr.Metadata(k).Label {
				logger.Warn("node labels disagree between snapshots, skipping scenario",
					"curve", curveID.String(), "position", k,
					"prev", prev.Metadata(k).Label, "curr", curr.Metadata(k).Label,
					"scenario", i)
				aligned = false
				break
			}
		}
		if !aligned {
			continue
		}

		for k := 0; k < curr.ParameterCount(); k++ {
			shift := curr.Value(k) - prev.Value(k)
			if err := builder.AddShift(i, curr.Metadata(k).Label, shift); err != nil {
				return nil, fmt.Errorf("BuildShifts: %w", err)
			}
		}
	}
	return builder.Build()
}
