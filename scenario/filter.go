package scenario

import "github.com/meenmo/riskcore/curve"

// CurveFilter decides which curves in a snapshot a shift set applies to.
type CurveFilter interface {
	Matches(id curve.ID) bool
}

// AnyCurve matches every curve.
type AnyCurve struct{}

func (AnyCurve) Matches(curve.ID) bool { return true }

// CurveIDFilter matches exactly one curve, name and currency both.
// Shifts derived from one curve's history route through this filter so
// they cannot leak onto a same-named curve in another currency.
type CurveIDFilter struct {
	ID curve.ID
}

func (f CurveIDFilter) Matches(id curve.ID) bool {
	return id == f.ID
}

// CurveNameFilter matches curves by exact name.
type CurveNameFilter struct {
	Name string
}

func (f CurveNameFilter) Matches(id curve.ID) bool {
	return id.Name == f.Name
}

// CurveCurrencyFilter matches every curve in a currency.
type CurveCurrencyFilter struct {
	Currency string
}

func (f CurveCurrencyFilter) Matches(id curve.ID) bool {
	return id.Currency == f.Currency
}

// PerturbationMapping pairs a shift set with the filter selecting the
// curves it perturbs.
type PerturbationMapping struct {
	Filter CurveFilter
	Shifts *PointShifts
}
