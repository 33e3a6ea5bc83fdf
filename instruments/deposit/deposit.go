// Package deposit defines the term deposit calibration trade.
package deposit

import (
	"fmt"
	"time"
)

// Trade is a resolved term deposit earning Rate over [StartDate, EndDate].
type Trade struct {
	TradeDate time.Time
	StartDate time.Time
	EndDate   time.Time
	Currency  string
	Notional  float64
	Rate      float64
}

// New validates and builds a term deposit trade.
func New(tradeDate, startDate, endDate time.Time, currency string, notional, rate float64) (Trade, error) {
	if currency == "" {
		return Trade{}, fmt.Errorf("deposit.New: currency is required")
	}
	if !endDate.After(startDate) {
		return Trade{}, fmt.Errorf("deposit.New: end date %s not after start date %s",
			endDate.Format("2006-01-02"), startDate.Format("2006-01-02"))
	}
	return Trade{
		TradeDate: tradeDate,
		StartDate: startDate,
		EndDate:   endDate,
		Currency:  currency,
		Notional:  notional,
		Rate:      rate,
	}, nil
}

func (t Trade) InstrumentType() string { return "TERM_DEPOSIT" }
