package curve

import (
	"time"

	"github.com/meenmo/riskcore/instruments"
	"github.com/meenmo/riskcore/marketdata"
)

// ValueType identifies the quantity a curve solver calibrates for.
type ValueType string

const (
	ZeroRate       ValueType = "ZERO_RATE"
	DiscountFactor ValueType = "DISCOUNT_FACTOR"
	ForwardRate    ValueType = "FORWARD_RATE"
)

// Node converts one observable market quote (or quote pair) into a
// calibration instrument plus the metadata and solver seed that go with it.
//
// All implementations are immutable values: construction fails fast on
// missing fields, and every method is a pure function of the node, the
// valuation date and the market data passed in.
type Node interface {
	// Requirements returns the distinct observable keys this node reads
	// from market data. The result is stable for a given node instance
	// and covers exactly the lookups Trade performs.
	Requirements() []marketdata.ObservableKey

	// Metadata locates the node's resulting curve point for a valuation
	// date. It never reads market data and never fails.
	Metadata(valuationDate time.Time) NodeMetadata

	// Trade builds the concrete calibration instrument from live market
	// data. A missing key surfaces as marketdata.KeyNotFoundError.
	Trade(valuationDate time.Time, md marketdata.Source) (instruments.Trade, error)

	// InitialGuess returns the solver seed for the requested value type.
	// The mapping is a fixed per-variant table documented on each
	// implementation; a wrong value degrades solver convergence rather
	// than failing, so the tables are explicit.
	InitialGuess(valuationDate time.Time, md marketdata.Source, valueType ValueType) (float64, error)
}
