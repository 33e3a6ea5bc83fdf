// Package instruments defines the calibration trades produced by curve
// nodes. Pricing and cashflow generation live outside this module; these
// types carry the fully resolved economics an external pricer needs.
package instruments

// Trade is implemented by every calibration instrument.
type Trade interface {
	// InstrumentType returns a stable product identifier, e.g. "FRA".
	InstrumentType() string
}
