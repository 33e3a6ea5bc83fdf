package curve

import (
	"fmt"
	"time"

	"github.com/meenmo/riskcore/calendar"
	"github.com/meenmo/riskcore/dates"
	"github.com/meenmo/riskcore/instruments"
	"github.com/meenmo/riskcore/instruments/fra"
	"github.com/meenmo/riskcore/marketdata"
)

// FraNode is a curve node whose instrument is a forward rate agreement.
// It consumes one observable quote (the forward rate) plus a static spread.
type FraNode struct {
	periodToStartMonth int
	indexTenorMonth    int
	index              string
	cal                calendar.CalendarID
	rateKey            marketdata.ObservableKey
	spread             float64
}

// NewFraNode validates and builds a FRA node for an index such as
// "EUR-EURIBOR-3M", starting periodToStartMonth after the valuation date
// and accruing for the index tenor.
func NewFraNode(periodToStartMonth, indexTenorMonth int, index string, cal calendar.CalendarID, rateKey marketdata.ObservableKey, spread float64) (FraNode, error) {
	if periodToStartMonth < 0 {
		return FraNode{}, fmt.Errorf("NewFraNode: negative period to start %dM", periodToStartMonth)
	}
	if indexTenorMonth <= 0 {
		return FraNode{}, fmt.Errorf("NewFraNode: index tenor %dM must be positive", indexTenorMonth)
	}
	if index == "" {
		return FraNode{}, fmt.Errorf("NewFraNode: index is required")
	}
	if cal == "" {
		return FraNode{}, fmt.Errorf("NewFraNode: calendar is required")
	}
	if (rateKey == marketdata.ObservableKey{}) {
		return FraNode{}, fmt.Errorf("NewFraNode: rate key is required")
	}
	return FraNode{
		periodToStartMonth: periodToStartMonth,
		indexTenorMonth:    indexTenorMonth,
		index:              index,
		cal:                cal,
		rateKey:            rateKey,
		spread:             spread,
	}, nil
}

func (n FraNode) Requirements() []marketdata.ObservableKey {
	return []marketdata.ObservableKey{n.rateKey}
}

// Metadata places the node at the FRA end date, labelled with the total
// months to the end of the accrual period.
func (n FraNode) Metadata(valuationDate time.Time) NodeMetadata {
	endMonths := n.periodToStartMonth + n.indexTenorMonth
	end := calendar.NextOrSame(n.cal, dates.AddMonths(valuationDate, endMonths))
	return NodeMetadata{Date: end, Label: TenorLabel(endMonths)}
}

func (n FraNode) Trade(valuationDate time.Time, md marketdata.Source) (instruments.Trade, error) {
	rate, err := md.Value(n.rateKey)
	if err != nil {
		return nil, fmt.Errorf("FraNode.Trade: %w", err)
	}
	start := calendar.NextOrSame(n.cal, dates.AddMonths(valuationDate, n.periodToStartMonth))
	end := calendar.NextOrSame(n.cal, dates.AddMonths(valuationDate, n.periodToStartMonth+n.indexTenorMonth))
	trade, err := fra.New(valuationDate, start, end, n.index, 1, rate+n.spread)
	if err != nil {
		return nil, fmt.Errorf("FraNode.Trade: %w", err)
	}
	return trade, nil
}

// InitialGuess seed table: ZeroRate and ForwardRate -> the observed market
// rate, anything else (DiscountFactor included) -> 0.0.
func (n FraNode) InitialGuess(valuationDate time.Time, md marketdata.Source, valueType ValueType) (float64, error) {
	if valueType == ZeroRate || valueType == ForwardRate {
		rate, err := md.Value(n.rateKey)
		if err != nil {
			return 0, fmt.Errorf("FraNode.InitialGuess: %w", err)
		}
		return rate, nil
	}
	return 0, nil
}
