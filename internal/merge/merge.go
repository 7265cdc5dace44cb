// Package merge implements the structural deep merge that backs every
// override and overlay in the generator.
package merge

import "github.com/specialistvlad/blockgen/internal/document"

// ListPolicy decides how two arrays are aligned when both sides of a merge
// hold an array at the same position.
type ListPolicy int

const (
	// GreaterLength aligns by index up to the longer of the two arrays.
	GreaterLength ListPolicy = iota
	// SmallerLength aligns by index up to the shorter of the two arrays.
	SmallerLength
	// BLength aligns by index up to the length of b.
	BLength
	// Append concatenates a's items and then b's items without aligning.
	Append
)

// String implements fmt.Stringer.
func (p ListPolicy) String() string {
	switch p {
	case GreaterLength:
		return "greater_length"
	case SmallerLength:
		return "smaller_length"
	case BLength:
		return "b_length"
	case Append:
		return "append"
	}
	return "unknown"
}

// Merge combines a and b, with b winning every conflict that cannot be
// merged. Values of different structural kinds (object, array, scalar) are
// replaced by b outright. Objects keep a's key order followed by the keys
// only b has. Arrays are combined according to policy.
//
// Neither input is modified and the result shares no mutable state with
// them.
func Merge(a, b document.Value, policy ListPolicy) document.Value {
	switch av := a.(type) {
	case *document.Object:
		if bv, ok := b.(*document.Object); ok {
			return mergeObjects(av, bv, policy)
		}
	case *document.Array:
		if bv, ok := b.(*document.Array); ok {
			return mergeArrays(av, bv, policy)
		}
	}
	return b.Clone()
}

// Objects merges two objects with the default list policy.
func Objects(a, b *document.Object) *document.Object {
	return mergeObjects(a, b, GreaterLength)
}

func mergeObjects(a, b *document.Object, policy ListPolicy) *document.Object {
	out := document.NewObject()
	for k, av := range a.All() {
		if bv, ok := b.Get(k); ok {
			out.Set(k, Merge(av, bv, policy))
			continue
		}
		out.Set(k, av.Clone())
	}
	for k, bv := range b.All() {
		if !a.Has(k) {
			out.Set(k, bv.Clone())
		}
	}
	return out
}

func mergeArrays(a, b *document.Array, policy ListPolicy) *document.Array {
	out := document.NewArray()
	if policy == Append {
		for _, v := range a.All() {
			out.Append(v.Clone())
		}
		for _, v := range b.All() {
			out.Append(v.Clone())
		}
		return out
	}

	n := max(a.Len(), b.Len())
	switch policy {
	case SmallerLength:
		n = min(a.Len(), b.Len())
	case BLength:
		n = b.Len()
	}
	for i := 0; i < n; i++ {
		switch {
		case i < a.Len() && i < b.Len():
			out.Append(Merge(a.At(i), b.At(i), policy))
		case i < b.Len():
			out.Append(b.At(i).Clone())
		default:
			out.Append(a.At(i).Clone())
		}
	}
	return out
}
