// Package fra defines the forward rate agreement calibration trade.
package fra

import (
	"fmt"
	"time"
)

// Trade is a resolved FRA paying fixed against the reference index over
// [StartDate, EndDate].
type Trade struct {
	TradeDate time.Time
	StartDate time.Time
	EndDate   time.Time
	Index     string
	Notional  float64
	FixedRate float64
}

// New validates and builds a FRA trade.
func New(tradeDate, startDate, endDate time.Time, index string, notional, fixedRate float64) (Trade, error) {
	if index == "" {
		return Trade{}, fmt.Errorf("fra.New: index is required")
	}
	if !endDate.After(startDate) {
		return Trade{}, fmt.Errorf("fra.New: end date %s not after start date %s",
			endDate.Format("2006-01-02"), startDate.Format("2006-01-02"))
	}
	return Trade{
		TradeDate: tradeDate,
		StartDate: startDate,
		EndDate:   endDate,
		Index:     index,
		Notional:  notional,
		FixedRate: fixedRate,
	}, nil
}

func (t Trade) InstrumentType() string { return "FRA" }
