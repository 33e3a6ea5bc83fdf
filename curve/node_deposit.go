package curve

import (
	"fmt"
	"time"

	"github.com/meenmo/riskcore/calendar"
	"github.com/meenmo/riskcore/dates"
	"github.com/meenmo/riskcore/instruments"
	"github.com/meenmo/riskcore/instruments/deposit"
	"github.com/meenmo/riskcore/marketdata"
)

// DepositNode is a curve node whose instrument is a term deposit. It
// consumes one observable quote: the deposit rate for its tenor.
type DepositNode struct {
	tenorMonth  int
	currency    string
	cal         calendar.CalendarID
	spotLagDays int
	rateKey     marketdata.ObservableKey
}

// NewDepositNode validates and builds a term deposit node.
func NewDepositNode(tenorMonth int, currency string, cal calendar.CalendarID, spotLagDays int, rateKey marketdata.ObservableKey) (DepositNode, error) {
	if tenorMonth <= 0 {
		return DepositNode{}, fmt.Errorf("NewDepositNode: tenor %dM must be positive", tenorMonth)
	}
	if currency == "" {
		return DepositNode{}, fmt.Errorf("NewDepositNode: currency is required")
	}
	if cal == "" {
		return DepositNode{}, fmt.Errorf("NewDepositNode: calendar is required")
	}
	if (rateKey == marketdata.ObservableKey{}) {
		return DepositNode{}, fmt.Errorf("NewDepositNode: rate key is required")
	}
	return DepositNode{
		tenorMonth:  tenorMonth,
		currency:    currency,
		cal:         cal,
		spotLagDays: spotLagDays,
		rateKey:     rateKey,
	}, nil
}

func (n DepositNode) Requirements() []marketdata.ObservableKey {
	return []marketdata.ObservableKey{n.rateKey}
}

// Metadata places the node at the deposit maturity.
func (n DepositNode) Metadata(valuationDate time.Time) NodeMetadata {
	start := calendar.SpotDate(n.cal, valuationDate, n.spotLagDays)
	end := calendar.Adjust(n.cal, dates.AddMonths(start, n.tenorMonth))
	return NodeMetadata{Date: end, Label: TenorLabel(n.tenorMonth)}
}

func (n DepositNode) Trade(valuationDate time.Time, md marketdata.Source) (instruments.Trade, error) {
	rate, err := md.Value(n.rateKey)
	if err != nil {
		return nil, fmt.Errorf("DepositNode.Trade: %w", err)
	}
	start := calendar.SpotDate(n.cal, valuationDate, n.spotLagDays)
	end := calendar.Adjust(n.cal, dates.AddMonths(start, n.tenorMonth))
	trade, err := deposit.New(valuationDate, start, end, n.currency, 1, rate)
	if err != nil {
		return nil, fmt.Errorf("DepositNode.Trade: %w", err)
	}
	return trade, nil
}

// InitialGuess seed table: DiscountFactor -> 1.0 (deposits are par at
// inception), ZeroRate -> the observed market rate, anything else -> 0.0.
func (n DepositNode) InitialGuess(valuationDate time.Time, md marketdata.Source, valueType ValueType) (float64, error) {
	switch valueType {
	case DiscountFactor:
		return 1, nil
	case ZeroRate:
		rate, err := md.Value(n.rateKey)
		if err != nil {
			return 0, fmt.Errorf("DepositNode.InitialGuess: %w", err)
		}
		return rate, nil
	default:
		return 0, nil
	}
}
