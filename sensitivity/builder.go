package sensitivity

// Builder accumulates point sensitivities while one or more trades are
// being priced, then freezes them into an immutable PointSensitivities.
//
// A Builder is not safe for concurrent use; accumulate per goroutine and
// combine the frozen results instead.
type Builder struct {
	entries []PointSensitivity
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends one point sensitivity.
func (b *Builder) Add(entry PointSensitivity) *Builder {
	b.entries = append(b.entries, entry)
	return b
}

// AddAll appends every entry in the slice.
func (b *Builder) AddAll(entries []PointSensitivity) *Builder {
	b.entries = append(b.entries, entries...)
	return b
}

// Combine appends every entry of an already-frozen collection.
func (b *Builder) Combine(ps PointSensitivities) *Builder {
	b.entries = append(b.entries, ps.entries...)
	return b
}

// Size returns the number of accumulated entries.
func (b *Builder) Size() int {
	return len(b.entries)
}

// Build freezes a snapshot of the accumulated entries. The builder may
// keep accumulating afterwards without affecting the snapshot.
func (b *Builder) Build() PointSensitivities {
	if len(b.entries) == 0 {
		return None
	}
	return Of(b.entries)
}
