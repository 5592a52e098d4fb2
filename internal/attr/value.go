// Package attr implements the typed attribute-value model used for
// SVG element attributes: plain strings, affine transform matrices,
// normalised path data, view boxes, and canonicalised colours.
//
// Dynamic polymorphism is replaced throughout by a closed set of
// concrete types that all satisfy Value: each concrete type carries
// its own full contract (parsing, canonical serialisation, and a
// stable hash contribution) rather than being distinguished by a type
// tag field.
package attr

import "hash/maphash"

// Kind identifies which concrete Value a given attribute holds.
type Kind int

const (
	KindString Kind = iota
	KindMatrix
	KindPath
	KindViewBox
	KindColour
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindMatrix:
		return "matrix"
	case KindPath:
		return "path"
	case KindViewBox:
		return "viewBox"
	case KindColour:
		return "colour"
	default:
		return "unknown"
	}
}

// Value is one typed SVG attribute value.
//
// Every concrete Value is immutable after construction: ToString
// always returns the same canonical text, and HashWithModifier always
// feeds the same byte sequence into a hasher for the same modifiers.
type Value interface {
	// Kind reports which concrete type this Value holds.
	Kind() Kind

	// ToString returns the canonical serialisation of the value, fit
	// to be written back into an attribute of an emitted SVG element.
	ToString() string

	// HashWithModifier feeds a stable byte sequence representing the
	// value into h. withPos controls whether Path includes its
	// leading absolute MoveTo; withStyle is reserved for future
	// per-variant style stripping and is currently a no-op for every
	// concrete Value (stripping of style-bearing attributes such as
	// fill/stroke happens one level up, in the attribute filter, not
	// inside the colour value itself).
	HashWithModifier(withPos, withStyle bool, h *maphash.Hash)
}

// namedAttrs are the attribute names that get a typed parse instead
// of falling back to String. Any attribute not in this set is always
// a String value.
var namedAttrs = map[string]func(raw string) (Value, error){
	"transform": func(raw string) (Value, error) { return ParseMatrix(raw) },
	"viewBox":   func(raw string) (Value, error) { return ParseViewBox(raw) },
	"d":         func(raw string) (Value, error) { return ParsePath(raw) },
	"fill":      func(raw string) (Value, error) { return ParseColour(raw) },
	"stroke":    func(raw string) (Value, error) { return ParseColour(raw) },
}

// FromProp parses raw as the attribute value for an attribute named
// name, returning a typed Value for the five attribute names the SVG
// data model recognises (transform, viewBox, d, fill, stroke), or a
// String for everything else.
//
// FromProp returns an error if name names a typed attribute but raw
// does not conform to that attribute's grammar. Unknown attribute
// names never produce an error.
func FromProp(name, raw string) (Value, error) {
	if parse, ok := namedAttrs[name]; ok {
		return parse(raw)
	}
	return String(raw), nil
}

// String is an opaque attribute value, the default for any attribute
// name not otherwise recognised.
type String string

func (s String) Kind() Kind       { return KindString }
func (s String) ToString() string { return string(s) }

func (s String) HashWithModifier(_, _ bool, h *maphash.Hash) {
	h.WriteString(string(s))
}
