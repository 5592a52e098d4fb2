package attr

import (
	"fmt"
	"hash/maphash"
	"strings"
)

// ViewBox is the normalised "viewBox" attribute: min-x, min-y, width,
// height.
type ViewBox struct {
	MinX, MinY, Width, Height float64
}

func (v ViewBox) Kind() Kind { return KindViewBox }

func (v ViewBox) ToString() string {
	return strings.Join([]string{
		formatFloat(v.MinX), formatFloat(v.MinY),
		formatFloat(v.Width), formatFloat(v.Height),
	}, " ")
}

// HashWithModifier feeds the four components into h, each rounded to
// 8 fractional digits.
func (v ViewBox) HashWithModifier(_, _ bool, h *maphash.Hash) {
	for _, f := range [...]float64{v.MinX, v.MinY, v.Width, v.Height} {
		h.WriteString(roundTo8(f))
	}
}

// ParseViewBox parses the "viewBox" attribute grammar: four numbers,
// comma and/or whitespace separated, giving min-x, min-y, width and
// height.
func ParseViewBox(raw string) (ViewBox, error) {
	args, err := parseFloatList(raw)
	if err != nil {
		return ViewBox{}, fmt.Errorf("viewBox: %w", err)
	}
	if len(args) != 4 {
		return ViewBox{}, fmt.Errorf("viewBox: requires 4 numbers, got %d", len(args))
	}
	return ViewBox{MinX: args[0], MinY: args[1], Width: args[2], Height: args[3]}, nil
}
