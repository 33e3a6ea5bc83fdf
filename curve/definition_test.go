package curve_test

import (
	"testing"
	"time"

	"github.com/meenmo/riskcore/calendar"
	"github.com/meenmo/riskcore/curve"
	"github.com/meenmo/riskcore/marketdata"
)

func TestDefinition_RequirementsDeduplicated(t *testing.T) {
	t.Parallel()

	depo, err := curve.NewDepositNode(3, "EUR", calendar.TARGET, 2, eurDepo6MKey)
	if err != nil {
		t.Fatalf("NewDepositNode error: %v", err)
	}
	// Second node reuses the same key on purpose.
	depo2, err := curve.NewDepositNode(6, "EUR", calendar.TARGET, 2, eurDepo6MKey)
	if err != nil {
		t.Fatalf("NewDepositNode error: %v", err)
	}
	fraNode, err := curve.NewFraNode(3, 3, "EUR-EURIBOR-3M", calendar.TARGET, euribor3x6Key, 0)
	if err != nil {
		t.Fatalf("NewFraNode error: %v", err)
	}

	id, _ := curve.NewID("EUR-Disc", "EUR")
	def, err := curve.NewDefinition(id, []curve.Node{depo, depo2, fraNode})
	if err != nil {
		t.Fatalf("NewDefinition error: %v", err)
	}

	reqs := def.Requirements()
	if len(reqs) != 2 {
		t.Fatalf("expected 2 distinct keys, got %d: %v", len(reqs), reqs)
	}
	if reqs[0] != eurDepo6MKey || reqs[1] != euribor3x6Key {
		t.Fatalf("requirements order mismatch: got %v", reqs)
	}
}

func TestDefinition_MetadataAndGuesses(t *testing.T) {
	t.Parallel()

	depo, _ := curve.NewDepositNode(6, "EUR", calendar.TARGET, 2, eurDepo6MKey)
	fraNode, _ := curve.NewFraNode(6, 3, "EUR-EURIBOR-3M", calendar.TARGET, euribor3x6Key, 0)
	id, _ := curve.NewID("EUR-Disc", "EUR")
	def, err := curve.NewDefinition(id, []curve.Node{depo, fraNode})
	if err != nil {
		t.Fatalf("NewDefinition error: %v", err)
	}

	valuation := time.Date(2025, 4, 23, 0, 0, 0, 0, time.UTC)
	md := def.Metadata(valuation)
	if len(md) != 2 {
		t.Fatalf("expected 2 metadata entries, got %d", len(md))
	}
	if md[0].Label != "6M" || md[1].Label != "9M" {
		t.Fatalf("labels mismatch: got %s, %s", md[0].Label, md[1].Label)
	}
	if !md[1].Date.After(md[0].Date) {
		t.Fatalf("metadata dates not increasing: %v then %v", md[0].Date, md[1].Date)
	}

	src := marketdata.NewMapSource(map[marketdata.ObservableKey]float64{
		eurDepo6MKey:  0.019,
		euribor3x6Key: 0.021,
	})
	guesses, err := def.InitialGuesses(valuation, src, curve.ZeroRate)
	if err != nil {
		t.Fatalf("InitialGuesses error: %v", err)
	}
	if len(guesses) != 2 || guesses[0] != 0.019 || guesses[1] != 0.021 {
		t.Fatalf("guesses mismatch: got %v", guesses)
	}

	// A missing quote fails the whole vector with node context.
	_, err = def.InitialGuesses(valuation, marketdata.NewMapSource(nil), curve.ZeroRate)
	if err == nil {
		t.Fatalf("expected error for missing quotes")
	}
}

func TestNewDefinition_Validation(t *testing.T) {
	t.Parallel()

	id, _ := curve.NewID("EUR-Disc", "EUR")
	if _, err := curve.NewDefinition(id, nil); err == nil {
		t.Fatalf("expected error for empty node list")
	}
	if _, err := curve.NewDefinition(curve.ID{}, nil); err == nil {
		t.Fatalf("expected error for empty id")
	}
}
