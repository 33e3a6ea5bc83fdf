// Package marketdata defines the observable-quote lookup used by curve
// calibration: an identifier for a single market quote and a read-only
// source mapping identifiers to values.
package marketdata

import "fmt"

// ObservableKey identifies one observable market quote, e.g. a deposit rate
// or an FX forward-point quote. Equality is on both fields.
type ObservableKey struct {
	Scheme string
	ID     string
}

// NewObservableKey validates and builds a key.
func NewObservableKey(scheme, id string) (ObservableKey, error) {
	if scheme == "" {
		return ObservableKey{}, fmt.Errorf("NewObservableKey: scheme is required")
	}
	if id == "" {
		return ObservableKey{}, fmt.Errorf("NewObservableKey: id is required")
	}
	return ObservableKey{Scheme: scheme, ID: id}, nil
}

// MustKey builds a key or panics. Intended for package-level fixtures.
func MustKey(scheme, id string) ObservableKey {
	k, err := NewObservableKey(scheme, id)
	if err != nil {
		panic(err)
	}
	return k
}

func (k ObservableKey) String() string {
	return k.Scheme + "~" + k.ID
}

// KeyNotFoundError reports a lookup for a key the source does not hold.
type KeyNotFoundError struct {
	Key ObservableKey
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("market data not found for key %s", e.Key)
}

// Source supplies market quotes by key.
//
// Implementations are read-only from the caller's perspective and must be
// safe for concurrent use.
type Source interface {
	Value(key ObservableKey) (float64, error)
}

// MapSource is a static map-backed Source for development and testing.
type MapSource struct {
	values map[ObservableKey]float64
}

// NewMapSource copies the provided quotes into a source.
func NewMapSource(values map[ObservableKey]float64) *MapSource {
	copied := make(map[ObservableKey]float64, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &MapSource{values: copied}
}

func (m *MapSource) Value(key ObservableKey) (float64, error) {
	v, ok := m.values[key]
	if !ok {
		return 0, &KeyNotFoundError{Key: key}
	}
	return v, nil
}

// Len returns the number of quotes held.
func (m *MapSource) Len() int {
	return len(m.values)
}
