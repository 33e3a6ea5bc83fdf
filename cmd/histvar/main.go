// Command histvar replays historical curve moves over the configured
// portfolio delta vector and prints the resulting P&L series.
//
// Curve snapshots come from Postgres; the most recent snapshot is the
// base, and each consecutive pair of earlier snapshots becomes one
// scenario of node shifts.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/meenmo/riskcore/config"
	"github.com/meenmo/riskcore/curve"
	"github.com/meenmo/riskcore/logging"
	"github.com/meenmo/riskcore/marketdata/curvestore"
	"github.com/meenmo/riskcore/scenario"
)

type pnlOutput struct {
	BaseValue float64       `json:"base_value"`
	Scenarios []scenarioPnl `json:"scenarios"`
}

type scenarioPnl struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	PnL   float64 `json:"pnl"`
}

func main() {
	configPath := flag.String("config", "config.yaml", "Configuration file path")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: histvar -config <path>")
		fmt.Fprintln(os.Stderr, "Replay historical curve moves and print the P&L series as JSON.")
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "histvar:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Logging.Level, cfg.Logging.File)
	slog.SetDefault(logger)

	store, err := curvestore.Open(curvestore.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	ids := make([]curve.ID, len(cfg.Risk.Curves))
	for i, c := range cfg.Risk.Curves {
		id, err := curve.NewID(c.Name, c.Currency)
		if err != nil {
			return err
		}
		ids[i] = id
	}

	history, snapDates, err := store.LoadHistory(ctx, ids)
	if err != nil {
		return err
	}
	if len(snapDates) < 2 {
		return fmt.Errorf("need at least 2 snapshot dates, found %d", len(snapDates))
	}
	logger.Info("loaded curve history",
		"curves", len(ids), "snapshots", len(snapDates),
		"from", snapDates[0].Format("2006-01-02"),
		"to", snapDates[len(snapDates)-1].Format("2006-01-02"))

	baseDate := snapDates[len(snapDates)-1]
	base := scenario.Snapshot(history[baseDate])
	for _, id := range ids {
		if _, ok := base[id]; !ok {
			return fmt.Errorf("base snapshot %s is missing curve %s", baseDate.Format("2006-01-02"), id)
		}
	}

	shiftType := scenario.Absolute
	if cfg.Risk.ShiftType == "relative" {
		shiftType = scenario.Relative
	}

	mappings := make([]scenario.PerturbationMapping, 0, len(ids))
	for _, id := range ids {
		shifts, err := scenario.BuildShifts(logger, shiftType, id, scenario.History(history), snapDates)
		if err != nil {
			return err
		}
		mappings = append(mappings, scenario.PerturbationMapping{
			Filter: scenario.CurveIDFilter{ID: id},
			Shifts: shifts,
		})
	}

	pricer, err := deltaPricer(cfg.Risk.Deltas)
	if err != nil {
		return err
	}

	// Scenario i of the shifts is the move from snapDates[i-1] to
	// snapDates[i]; the replay re-applies each move to the base snapshot.
	// Index 0 of the series carries the base valuation date.
	seriesDates := append([]time.Time{baseDate}, snapDates[1:]...)
	series, err := scenario.Replay(ctx, scenario.ReplayParams{
		Base:          base,
		Mappings:      mappings,
		ScenarioDates: seriesDates,
		Pricer:        pricer,
	})
	if err != nil {
		return err
	}

	out := pnlOutput{BaseValue: series.Base()}
	for _, p := range series.PnL() {
		out.Scenarios = append(out.Scenarios, scenarioPnl{
			Date:  p.Date.Format("2006-01-02"),
			Value: series.Base() + p.Value,
			PnL:   p.Value,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// deltaPricer values the portfolio as a fixed delta vector against
// curve node values: PV = sum(delta * node value) over configured
// (curve, label) entries. Good enough for replaying historical moves
// without a full pricing stack.
func deltaPricer(deltas []config.DeltaConfig) (scenario.Pricer, error) {
	if len(deltas) == 0 {
		return nil, fmt.Errorf("risk.deltas is empty, nothing to value")
	}
	return scenario.PricerFunc(func(_ context.Context, snapshot scenario.Snapshot) (float64, error) {
		var pv float64
		for _, d := range deltas {
			id := curve.ID{Name: d.Curve, Currency: d.Currency}
			c, ok := snapshot[id]
			if !ok {
				return 0, fmt.Errorf("snapshot is missing curve %s", id)
			}
			found := false
			for k := 0; k < c.ParameterCount(); k++ {
				if c.Metadata(k).Label == d.Label {
					pv += d.Value * c.Value(k)
					found = true
					break
				}
			}
			if !found {
				return 0, fmt.Errorf("curve %s has no node %q", id, d.Label)
			}
		}
		return pv, nil
	}), nil
}
