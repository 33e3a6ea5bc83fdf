// Package curve defines curve identifiers, node metadata, the nodal curve
// value container used by the scenario engine, and the calibration node
// contract consumed by an external bootstrap solver.
package curve

import (
	"fmt"
	"time"
)

// ID identifies a curve by name and currency.
type ID struct {
	Name     string
	Currency string
}

// NewID validates and builds a curve identifier.
func NewID(name, currency string) (ID, error) {
	if name == "" {
		return ID{}, fmt.Errorf("curve.NewID: name is required")
	}
	if currency == "" {
		return ID{}, fmt.Errorf("curve.NewID: currency is required")
	}
	return ID{Name: name, Currency: currency}, nil
}

func (id ID) String() string {
	return id.Name + "/" + id.Currency
}

// TenorLabel renders a tenor in months as a market label, e.g. "6M" or "2Y".
func TenorLabel(months int) string {
	if months >= 12 && months%12 == 0 {
		return fmt.Sprintf("%dY", months/12)
	}
	return fmt.Sprintf("%dM", months)
}

// NodeMetadata locates one node's resulting point on a curve: the date the
// point applies to and its tenor label. It is derived deterministically
// from a node and a valuation date, never from market data.
type NodeMetadata struct {
	Date  time.Time
	Label string
}

// NodalCurve holds a calibrated curve's node values with their metadata.
//
// Interpolation over the nodes belongs to the external curve layer; the
// scenario engine only needs aligned (metadata, value) pairs and the
// ability to clone with perturbed values.
type NodalCurve struct {
	id       ID
	metadata []NodeMetadata
	values   []float64
}

// NewNodalCurve copies the provided slices into an immutable curve.
// Metadata and values must be the same length and non-empty.
func NewNodalCurve(id ID, metadata []NodeMetadata, values []float64) (*NodalCurve, error) {
	if len(metadata) == 0 {
		return nil, fmt.Errorf("NewNodalCurve: curve %s has no nodes", id)
	}
	if len(metadata) != len(values) {
		return nil, fmt.Errorf("NewNodalCurve: curve %s has %d metadata entries but %d values",
			id, len(metadata), len(values))
	}
	md := make([]NodeMetadata, len(metadata))
	copy(md, metadata)
	vals := make([]float64, len(values))
	copy(vals, values)
	return &NodalCurve{id: id, metadata: md, values: vals}, nil
}

// ID returns the curve identifier.
func (c *NodalCurve) ID() ID {
	return c.id
}

// ParameterCount returns the number of nodes.
func (c *NodalCurve) ParameterCount() int {
	return len(c.values)
}

// Value returns the node value at position i.
func (c *NodalCurve) Value(i int) float64 {
	return c.values[i]
}

// Metadata returns the node metadata at position i.
func (c *NodalCurve) Metadata(i int) NodeMetadata {
	return c.metadata[i]
}

// Values returns a copy of the node values.
func (c *NodalCurve) Values() []float64 {
	out := make([]float64, len(c.values))
	copy(out, c.values)
	return out
}

// WithValues clones the curve with replaced node values. The topology
// (node count, metadata, ordering) is unchanged.
func (c *NodalCurve) WithValues(values []float64) (*NodalCurve, error) {
	if len(values) != len(c.values) {
		return nil, fmt.Errorf("WithValues: curve %s has %d nodes, got %d values",
			c.id, len(c.values), len(values))
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	return &NodalCurve{id: c.id, metadata: c.metadata, values: vals}, nil
}
