// Package svgparse turns an SVG document string into a flat
// internal/tree.Tree of Tag nodes, with every attribute eagerly parsed
// into its internal/attr.Value.
package svgparse

import (
	"sort"

	"github.com/svgdiff/engine/internal/attr"
)

// Tag is one SVG element: its local name, character data (the last
// run seen inside it), and typed attributes.
type Tag struct {
	Name string
	Text string
	Args map[string]attr.Value
}

// SortedAttrNames returns t's attribute names in sorted order, the
// order required whenever fingerprinting or serialisation needs a
// deterministic attribute walk.
func (t Tag) SortedAttrNames() []string {
	names := make([]string, 0, len(t.Args))
	for k := range t.Args {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
