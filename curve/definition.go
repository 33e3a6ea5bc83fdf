package curve

import (
	"fmt"
	"time"

	"github.com/meenmo/riskcore/marketdata"
)

// Definition pairs a curve identifier with the ordered calibration nodes
// that define it. The external solver consumes the aggregated requirements,
// metadata and initial guesses; this type performs no solving itself.
type Definition struct {
	id    ID
	nodes []Node
}

// NewDefinition validates and builds a curve definition.
func NewDefinition(id ID, nodes []Node) (*Definition, error) {
	if id == (ID{}) {
		return nil, fmt.Errorf("NewDefinition: curve id is required")
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("NewDefinition: curve %s has no nodes", id)
	}
	copied := make([]Node, len(nodes))
	copy(copied, nodes)
	return &Definition{id: id, nodes: copied}, nil
}

// ID returns the curve identifier.
func (d *Definition) ID() ID {
	return d.id
}

// Nodes returns a copy of the node list.
func (d *Definition) Nodes() []Node {
	out := make([]Node, len(d.nodes))
	copy(out, d.nodes)
	return out
}

// Requirements returns the distinct observable keys across all nodes,
// in first-seen order.
func (d *Definition) Requirements() []marketdata.ObservableKey {
	seen := make(map[marketdata.ObservableKey]struct{})
	var keys []marketdata.ObservableKey
	for _, n := range d.nodes {
		for _, k := range n.Requirements() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}

// Metadata derives the per-node curve point metadata for a valuation date.
func (d *Definition) Metadata(valuationDate time.Time) []NodeMetadata {
	out := make([]NodeMetadata, len(d.nodes))
	for i, n := range d.nodes {
		out[i] = n.Metadata(valuationDate)
	}
	return out
}

// InitialGuesses assembles the solver seed vector, one entry per node.
func (d *Definition) InitialGuesses(valuationDate time.Time, md marketdata.Source, valueType ValueType) ([]float64, error) {
	out := make([]float64, len(d.nodes))
	for i, n := range d.nodes {
		guess, err := n.InitialGuess(valuationDate, md, valueType)
		if err != nil {
			return nil, fmt.Errorf("Definition.InitialGuesses: curve %s node %d: %w", d.id, i, err)
		}
		out[i] = guess
	}
	return out, nil
}
