// Package sensitivity models point sensitivities: derivatives of a
// valuation with respect to individual curve points, with the combination
// and normalization algebra the aggregation layer builds on.
package sensitivity

import (
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/riskcore/curve"
)

// PointSensitivity is the derivative of a valuation with respect to one
// curve query: a curve, a sensitivity currency and a date (for a forward
// curve, the fixing date; for a discount curve, the payment date).
//
// Two point sensitivities refer to the same query iff every field except
// Value is equal. The zero Value is meaningful and entries are never
// dropped for being zero.
type PointSensitivity struct {
	Curve    curve.ID
	Currency string
	Date     time.Time
	Value    float64
}

// New validates and builds a point sensitivity.
func New(id curve.ID, currency string, date time.Time, value float64) (PointSensitivity, error) {
	if id == (curve.ID{}) {
		return PointSensitivity{}, fmt.Errorf("sensitivity.New: curve id is required")
	}
	if currency == "" {
		return PointSensitivity{}, fmt.Errorf("sensitivity.New: currency is required")
	}
	if date.IsZero() {
		return PointSensitivity{}, fmt.Errorf("sensitivity.New: date is required")
	}
	return PointSensitivity{Curve: id, Currency: currency, Date: date, Value: value}, nil
}

// WithValue returns a copy with the value replaced.
func (s PointSensitivity) WithValue(value float64) PointSensitivity {
	s.Value = value
	return s
}

// CompareKey orders point sensitivities by query identity, excluding the
// value: curve name, then curve currency, then sensitivity currency, then
// date. It returns a negative number, zero, or a positive number as s
// sorts before, equal to, or after other. A zero result defines "same
// query" for normalization.
func (s PointSensitivity) CompareKey(other PointSensitivity) int {
	if c := strings.Compare(s.Curve.Name, other.Curve.Name); c != 0 {
		return c
	}
	if c := strings.Compare(s.Curve.Currency, other.Curve.Currency); c != 0 {
		return c
	}
	if c := strings.Compare(s.Currency, other.Currency); c != 0 {
		return c
	}
	switch {
	case s.Date.Before(other.Date):
		return -1
	case s.Date.After(other.Date):
		return 1
	default:
		return 0
	}
}
