package tree

// Flange is a read-only side table attaching one value of type T to
// every index of some Tree, without copying or modifying the tree
// itself. It is a plain borrow: a Flange only makes sense alongside
// the Tree it was built for, and indices must match.
type Flange[T any] struct {
	values []T
}

// NewFlange returns a Flange of length n with every slot set to
// fill.
func NewFlange[T any](n int, fill T) Flange[T] {
	values := make([]T, n)
	for i := range values {
		values[i] = fill
	}
	return Flange[T]{values: values}
}

// Get returns the value attached to index i.
func (f Flange[T]) Get(i int) T { return f.values[i] }

// Len returns the number of indices covered by f.
func (f Flange[T]) Len() int { return len(f.values) }

// FlangeBuilder is a mutable Flange meant for pipelines that fill in
// per-node data across several passes (for example, one pass per
// configured fingerprint rule) before handing the result to readers
// as a read-only Flange.
type FlangeBuilder[T any] struct {
	values []T
}

// NewFlangeBuilder returns a FlangeBuilder of length n with every slot
// set to fill.
func NewFlangeBuilder[T any](n int, fill T) *FlangeBuilder[T] {
	values := make([]T, n)
	for i := range values {
		values[i] = fill
	}
	return &FlangeBuilder[T]{values: values}
}

// Set stores v at index i.
func (b *FlangeBuilder[T]) Set(i int, v T) { b.values[i] = v }

// Get returns the value currently stored at index i.
func (b *FlangeBuilder[T]) Get(i int) T { return b.values[i] }

// Done finalizes the builder into a read-only Flange. The builder
// must not be used afterwards.
func (b *FlangeBuilder[T]) Done() Flange[T] {
	return Flange[T]{values: b.values}
}

// ReplaceMapFlange returns a new Flange of the same length as f,
// whose value at each index is fn applied to f's value at that index.
// The tree the flange belongs to is preserved by construction (same
// length, same index space), only the per-node payload changes.
func ReplaceMapFlange[T, U any](f Flange[T], fn func(idx int, v T) U) Flange[U] {
	out := make([]U, len(f.values))
	for i, v := range f.values {
		out[i] = fn(i, v)
	}
	return Flange[U]{values: out}
}
