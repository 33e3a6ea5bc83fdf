package sensitivity

import (
	"sort"
)

// PointSensitivities is an immutable collection of point sensitivities,
// each referring to a specific curve point that was queried during
// pricing. The order of entries has no meaning, and duplicates of the
// same query are allowed until Normalized merges them.
type PointSensitivities struct {
	entries []PointSensitivity
}

// None is the canonical empty sensitivities instance.
var None = PointSensitivities{}

// Of wraps a defensive copy of the provided entries. A nil slice is a
// programmer error and panics; an empty slice is valid and equals None.
func Of(entries []PointSensitivity) PointSensitivities {
	if entries == nil {
		panic("sensitivity.Of: nil entries")
	}
	copied := make([]PointSensitivity, len(entries))
	copy(copied, entries)
	return PointSensitivities{entries: copied}
}

// OfSingle builds a collection holding one entry.
func OfSingle(entry PointSensitivity) PointSensitivities {
	return PointSensitivities{entries: []PointSensitivity{entry}}
}

// Size returns the number of entries.
func (ps PointSensitivities) Size() int {
	return len(ps.entries)
}

// Entries returns a copy of the entries.
func (ps PointSensitivities) Entries() []PointSensitivity {
	out := make([]PointSensitivity, len(ps.entries))
	copy(out, ps.entries)
	return out
}

// CombinedWith concatenates both collections' entries, preserving
// duplicate queries. The receiver and argument are unaffected.
func (ps PointSensitivities) CombinedWith(other PointSensitivities) PointSensitivities {
	if len(ps.entries) == 0 {
		return other
	}
	if len(other.entries) == 0 {
		return ps
	}
	combined := make([]PointSensitivity, 0, len(ps.entries)+len(other.entries))
	combined = append(combined, ps.entries...)
	combined = append(combined, other.entries...)
	return PointSensitivities{entries: combined}
}

// MultipliedBy scales every entry's value by factor.
func (ps PointSensitivities) MultipliedBy(factor float64) PointSensitivities {
	return ps.MapValues(func(v float64) float64 { return v * factor })
}

// MapValues applies op to every entry's value, preserving the entries
// themselves. For example, op could take the inverse of each sensitivity.
func (ps PointSensitivities) MapValues(op func(float64) float64) PointSensitivities {
	mapped := make([]PointSensitivity, len(ps.entries))
	for i, e := range ps.entries {
		mapped[i] = e.WithValue(op(e.Value))
	}
	return PointSensitivities{entries: mapped}
}

// Normalized sorts the entries by query identity and merges any entries
// that represent the same curve query, summing their values. The result
// has one entry per distinct query, in ascending query order.
//
// Normalization is intended to run once, after all point sensitivities
// have been gathered; only then may the result be read as a vector
// indexed by curve parameter. An empty collection returns itself.
func (ps PointSensitivities) Normalized() PointSensitivities {
	if len(ps.entries) == 0 {
		return ps
	}
	sorted := make([]PointSensitivity, len(ps.entries))
	copy(sorted, ps.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompareKey(sorted[j]) < 0
	})
	merged := sorted[:1]
	for _, e := range sorted[1:] {
		last := &merged[len(merged)-1]
		if e.CompareKey(*last) == 0 {
			last.Value += e.Value
			continue
		}
		merged = append(merged, e)
	}
	return PointSensitivities{entries: merged}
}

// Equal reports whether both collections hold the same entries in the
// same order.
func (ps PointSensitivities) Equal(other PointSensitivities) bool {
	if len(ps.entries) != len(other.entries) {
		return false
	}
	for i, e := range ps.entries {
		o := other.entries[i]
		if e.CompareKey(o) != 0 || e.Value != o.Value {
			return false
		}
	}
	return true
}
