package curve

import (
	"fmt"
	"time"

	"github.com/meenmo/riskcore/calendar"
	"github.com/meenmo/riskcore/dates"
	"github.com/meenmo/riskcore/instruments"
	"github.com/meenmo/riskcore/instruments/fxswap"
	"github.com/meenmo/riskcore/marketdata"
)

// FxSwapTemplate parameterizes the FX swap built by an FxSwapNode: the
// currency pair, the calendar, and the horizon of near and far legs in
// months after spot.
type FxSwapTemplate struct {
	CurrencyPair      string
	Calendar          calendar.CalendarID
	SpotLagDays       int
	PeriodToNearMonth int
	PeriodToFarMonth  int
}

// ToTrade materializes the template at a valuation date with the given
// near rate and forward points.
func (t FxSwapTemplate) ToTrade(valuationDate time.Time, notional, nearRate, forwardPoints float64) (fxswap.Trade, error) {
	spot := calendar.SpotDate(t.Calendar, valuationDate, t.SpotLagDays)
	nearDate := calendar.Adjust(t.Calendar, dates.AddMonths(spot, t.PeriodToNearMonth))
	farDate := calendar.Adjust(t.Calendar, dates.AddMonths(spot, t.PeriodToFarMonth))
	return fxswap.New(valuationDate, nearDate, farDate, t.CurrencyPair, fxswap.Buy, notional, nearRate, forwardPoints)
}

// FxSwapNode is a curve node whose instrument is an FX swap. It consumes
// two observable quotes: the near (spot) rate and the forward points.
type FxSwapNode struct {
	template FxSwapTemplate
	nearKey  marketdata.ObservableKey
	ptsKey   marketdata.ObservableKey
}

// NewFxSwapNode validates and builds an FX swap node.
func NewFxSwapNode(template FxSwapTemplate, nearKey, ptsKey marketdata.ObservableKey) (FxSwapNode, error) {
	if template.CurrencyPair == "" {
		return FxSwapNode{}, fmt.Errorf("NewFxSwapNode: template currency pair is required")
	}
	if template.Calendar == "" {
		return FxSwapNode{}, fmt.Errorf("NewFxSwapNode: template calendar is required")
	}
	if template.PeriodToFarMonth <= template.PeriodToNearMonth {
		return FxSwapNode{}, fmt.Errorf("NewFxSwapNode: far period %dM not after near period %dM",
			template.PeriodToFarMonth, template.PeriodToNearMonth)
	}
	if (nearKey == marketdata.ObservableKey{}) {
		return FxSwapNode{}, fmt.Errorf("NewFxSwapNode: near rate key is required")
	}
	if (ptsKey == marketdata.ObservableKey{}) {
		return FxSwapNode{}, fmt.Errorf("NewFxSwapNode: forward points key is required")
	}
	return FxSwapNode{template: template, nearKey: nearKey, ptsKey: ptsKey}, nil
}

// Template returns the node's instrument template.
func (n FxSwapNode) Template() FxSwapTemplate {
	return n.template
}

func (n FxSwapNode) Requirements() []marketdata.ObservableKey {
	return []marketdata.ObservableKey{n.nearKey, n.ptsKey}
}

// Metadata derives the curve point from a nominal trade built at zero
// market impact (rate 1, points 0), so date generation matches Trade
// without reading market data.
func (n FxSwapNode) Metadata(valuationDate time.Time) NodeMetadata {
	trade, err := n.template.ToTrade(valuationDate, 1, 1, 0)
	if err != nil {
		// Template validity is established at construction; a nominal
		// trade from a valid template cannot fail.
		panic(fmt.Sprintf("FxSwapNode.Metadata: %v", err))
	}
	return NodeMetadata{Date: trade.FarDate, Label: TenorLabel(n.template.PeriodToFarMonth)}
}

func (n FxSwapNode) Trade(valuationDate time.Time, md marketdata.Source) (instruments.Trade, error) {
	nearRate, err := md.Value(n.nearKey)
	if err != nil {
		return nil, fmt.Errorf("FxSwapNode.Trade: %w", err)
	}
	pts, err := md.Value(n.ptsKey)
	if err != nil {
		return nil, fmt.Errorf("FxSwapNode.Trade: %w", err)
	}
	trade, err := n.template.ToTrade(valuationDate, 1, nearRate, pts)
	if err != nil {
		return nil, fmt.Errorf("FxSwapNode.Trade: %w", err)
	}
	return trade, nil
}

// InitialGuess seed table: DiscountFactor -> 1.0 (the node is par by
// construction), anything else -> 0.0.
func (n FxSwapNode) InitialGuess(valuationDate time.Time, md marketdata.Source, valueType ValueType) (float64, error) {
	if valueType == DiscountFactor {
		return 1, nil
	}
	return 0, nil
}
