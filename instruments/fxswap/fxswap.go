// Package fxswap defines the FX swap calibration trade.
package fxswap

import (
	"fmt"
	"time"
)

// BuySell indicates the direction of the near leg.
type BuySell string

const (
	Buy  BuySell = "BUY"
	Sell BuySell = "SELL"
)

// Trade is a resolved FX swap: exchange at the near date at the near rate,
// reverse at the far date at near rate plus forward points.
type Trade struct {
	TradeDate     time.Time
	NearDate      time.Time
	FarDate       time.Time
	CurrencyPair  string
	Direction     BuySell
	Notional      float64
	NearRate      float64
	ForwardPoints float64
}

// New validates and builds an FX swap trade.
func New(tradeDate, nearDate, farDate time.Time, pair string, direction BuySell, notional, nearRate, forwardPoints float64) (Trade, error) {
	if pair == "" {
		return Trade{}, fmt.Errorf("fxswap.New: currency pair is required")
	}
	if farDate.Before(nearDate) {
		return Trade{}, fmt.Errorf("fxswap.New: far date %s before near date %s",
			farDate.Format("2006-01-02"), nearDate.Format("2006-01-02"))
	}
	return Trade{
		TradeDate:     tradeDate,
		NearDate:      nearDate,
		FarDate:       farDate,
		CurrencyPair:  pair,
		Direction:     direction,
		Notional:      notional,
		NearRate:      nearRate,
		ForwardPoints: forwardPoints,
	}, nil
}

// FarRate returns the all-in rate for the far leg.
func (t Trade) FarRate() float64 {
	return t.NearRate + t.ForwardPoints
}

func (t Trade) InstrumentType() string { return "FX_SWAP" }
