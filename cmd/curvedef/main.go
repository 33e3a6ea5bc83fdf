// Command curvedef builds a sample EUR discount curve definition and
// prints its market data requirements, node metadata and solver seeds
// for a valuation date. Quotes come from Redis when -redis is set,
// otherwise from a built-in sample set.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/meenmo/riskcore/calendar"
	"github.com/meenmo/riskcore/curve"
	"github.com/meenmo/riskcore/marketdata"
	"github.com/meenmo/riskcore/marketdata/redisfeed"
)

type nodeOutput struct {
	Label        string  `json:"label"`
	Date         string  `json:"date"`
	Instrument   string  `json:"instrument"`
	InitialGuess float64 `json:"initial_guess"`
}

type curveOutput struct {
	Curve         string       `json:"curve"`
	ValuationDate string       `json:"valuation_date"`
	ValueType     string       `json:"value_type"`
	Requirements  []string     `json:"requirements"`
	Nodes         []nodeOutput `json:"nodes"`
}

func main() {
	valDate := flag.String("date", time.Now().Format("2006-01-02"), "Valuation date (YYYY-MM-DD)")
	redisAddr := flag.String("redis", "", "Redis address for live quotes (uses sample quotes if omitted)")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: curvedef [-date <YYYY-MM-DD>] [-redis <addr>]")
		fmt.Fprintln(os.Stderr, "Print the sample curve definition resolved at a valuation date.")
		return
	}

	if err := run(*valDate, *redisAddr); err != nil {
		fmt.Fprintln(os.Stderr, "curvedef:", err)
		os.Exit(1)
	}
}

func run(valDate, redisAddr string) error {
	valuationDate, err := time.Parse("2006-01-02", strings.TrimSpace(valDate))
	if err != nil {
		return fmt.Errorf("parse -date: %w", err)
	}

	def, err := sampleDefinition()
	if err != nil {
		return err
	}

	md, err := quoteSource(redisAddr, def.Requirements())
	if err != nil {
		return err
	}

	guesses, err := def.InitialGuesses(valuationDate, md, curve.ZeroRate)
	if err != nil {
		return err
	}

	out := curveOutput{
		Curve:         def.ID().String(),
		ValuationDate: valuationDate.Format("2006-01-02"),
		ValueType:     string(curve.ZeroRate),
	}
	for _, key := range def.Requirements() {
		out.Requirements = append(out.Requirements, key.String())
	}
	for i, node := range def.Nodes() {
		meta := node.Metadata(valuationDate)
		trade, err := node.Trade(valuationDate, md)
		if err != nil {
			return fmt.Errorf("node %d (%s): %w", i, meta.Label, err)
		}
		out.Nodes = append(out.Nodes, nodeOutput{
			Label:        meta.Label,
			Date:         meta.Date.Format("2006-01-02"),
			Instrument:   trade.InstrumentType(),
			InitialGuess: guesses[i],
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// sampleDefinition is a small EUR discount curve: deposits at the short
// end, FRAs in the belly, an FX swap point at the long end.
func sampleDefinition() (*curve.Definition, error) {
	depo3M, err := curve.NewDepositNode(3, "EUR", calendar.TARGET, 2,
		marketdata.MustKey("OG-Ticker", "EUR-DEPO-3M"))
	if err != nil {
		return nil, err
	}
	depo6M, err := curve.NewDepositNode(6, "EUR", calendar.TARGET, 2,
		marketdata.MustKey("OG-Ticker", "EUR-DEPO-6M"))
	if err != nil {
		return nil, err
	}
	fra3x6, err := curve.NewFraNode(3, 3, "EUR-EURIBOR-3M", calendar.TARGET,
		marketdata.MustKey("OG-Ticker", "EUR-FRA-3X6"), 0)
	if err != nil {
		return nil, err
	}
	fra6x9, err := curve.NewFraNode(6, 3, "EUR-EURIBOR-3M", calendar.TARGET,
		marketdata.MustKey("OG-Ticker", "EUR-FRA-6X9"), 0)
	if err != nil {
		return nil, err
	}
	fxSwap1Y, err := curve.NewFxSwapNode(
		curve.FxSwapTemplate{
			CurrencyPair:      "EUR/USD",
			Calendar:          calendar.TARGET,
			SpotLagDays:       2,
			PeriodToNearMonth: 0,
			PeriodToFarMonth:  12,
		},
		marketdata.MustKey("OG-Ticker", "EUR-USD-SPOT"),
		marketdata.MustKey("OG-Ticker", "EUR-USD-1Y-PTS"),
	)
	if err != nil {
		return nil, err
	}

	id, err := curve.NewID("EUR-Disc", "EUR")
	if err != nil {
		return nil, err
	}
	return curve.NewDefinition(id, []curve.Node{depo3M, depo6M, fra3x6, fra6x9, fxSwap1Y})
}

func quoteSource(redisAddr string, keys []marketdata.ObservableKey) (marketdata.Source, error) {
	if redisAddr == "" {
		return marketdata.NewMapSource(map[marketdata.ObservableKey]float64{
			marketdata.MustKey("OG-Ticker", "EUR-DEPO-3M"):    0.0195,
			marketdata.MustKey("OG-Ticker", "EUR-DEPO-6M"):    0.0210,
			marketdata.MustKey("OG-Ticker", "EUR-FRA-3X6"):    0.0221,
			marketdata.MustKey("OG-Ticker", "EUR-FRA-6X9"):    0.0232,
			marketdata.MustKey("OG-Ticker", "EUR-USD-SPOT"):   1.0850,
			marketdata.MustKey("OG-Ticker", "EUR-USD-1Y-PTS"): 0.0162,
		}), nil
	}

	ctx := context.Background()
	feed, err := redisfeed.New(ctx, redisfeed.Config{Addr: redisAddr})
	if err != nil {
		return nil, err
	}
	defer feed.Close()
	return feed.Fetch(ctx, keys)
}
