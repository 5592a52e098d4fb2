package attr

import (
	"fmt"
	"hash/maphash"
	"strconv"
	"strings"
)

// Colour is a normalised colour value: an RGB triple plus alpha
// (0-255, opaque by default), or the "none" keyword.
type Colour struct {
	R, G, B, A uint8
	None       bool
}

func (c Colour) Kind() Kind { return KindColour }

// ToString serialises c to lowercase hex: "#rrggbb" when fully
// opaque, "#rrggbbaa" otherwise, or the literal "none".
func (c Colour) ToString() string {
	if c.None {
		return "none"
	}
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Colour) HashWithModifier(_, _ bool, h *maphash.Hash) {
	h.WriteString(c.ToString())
}

// namedColours covers the SVG/CSS basic colour keyword set; any
// keyword not listed here falls through to a parse error, same as an
// unrecognised hex or functional form.
var namedColours = map[string]Colour{
	"black":       {0, 0, 0, 0xff, false},
	"white":       {0xff, 0xff, 0xff, 0xff, false},
	"red":         {0xff, 0, 0, 0xff, false},
	"green":       {0, 0x80, 0, 0xff, false},
	"blue":        {0, 0, 0xff, 0xff, false},
	"yellow":      {0xff, 0xff, 0, 0xff, false},
	"cyan":        {0, 0xff, 0xff, 0xff, false},
	"magenta":     {0xff, 0, 0xff, 0xff, false},
	"gray":        {0x80, 0x80, 0x80, 0xff, false},
	"grey":        {0x80, 0x80, 0x80, 0xff, false},
	"silver":      {0xc0, 0xc0, 0xc0, 0xff, false},
	"maroon":      {0x80, 0, 0, 0xff, false},
	"purple":      {0x80, 0, 0x80, 0xff, false},
	"olive":       {0x80, 0x80, 0, 0xff, false},
	"navy":        {0, 0, 0x80, 0xff, false},
	"teal":        {0, 0x80, 0x80, 0xff, false},
	"lime":        {0, 0xff, 0, 0xff, false},
	"orange":      {0xff, 0xa5, 0, 0xff, false},
	"pink":        {0xff, 0xc0, 0xcb, 0xff, false},
	"brown":       {0xa5, 0x2a, 0x2a, 0xff, false},
	"transparent": {0, 0, 0, 0, false},
}

// ParseColour parses the "fill"/"stroke" attribute grammar: the
// "none" keyword, a named colour, a "#rgb"/"#rrggbb"/"#rrggbbaa" hex
// literal, or an "rgb(...)"/"rgba(...)" functional form.
func ParseColour(raw string) (Colour, error) {
	s := strings.TrimSpace(raw)
	switch {
	case s == "none":
		return Colour{None: true}, nil
	case strings.HasPrefix(s, "#"):
		return parseHexColour(s)
	case strings.HasPrefix(strings.ToLower(s), "rgb"):
		return parseFuncColour(s)
	}
	if c, ok := namedColours[strings.ToLower(s)]; ok {
		return c, nil
	}
	return Colour{}, fmt.Errorf("colour: unrecognised value %q", raw)
}

func parseHexColour(s string) (Colour, error) {
	hex := s[1:]
	expand := func(c byte) (byte, byte) { return c, c }

	switch len(hex) {
	case 3, 4:
		r1, r2 := expand(hex[0])
		g1, g2 := expand(hex[1])
		b1, b2 := expand(hex[2])
		a := byte('f')
		a2 := byte('f')
		if len(hex) == 4 {
			a, a2 = expand(hex[3])
		}
		return hexBytesToColour(string([]byte{r1, r2, g1, g2, b1, b2, a, a2}))
	case 6:
		return hexBytesToColour(hex + "ff")
	case 8:
		return hexBytesToColour(hex)
	default:
		return Colour{}, fmt.Errorf("colour: invalid hex literal %q", s)
	}
}

func hexBytesToColour(hex string) (Colour, error) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Colour{}, fmt.Errorf("colour: invalid hex literal %q: %w", hex, err)
	}
	return Colour{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

func parseFuncColour(s string) (Colour, error) {
	open := strings.IndexByte(s, '(')
	close := strings.LastIndexByte(s, ')')
	if open < 0 || close < open {
		return Colour{}, fmt.Errorf("colour: malformed functional form %q", s)
	}
	name := strings.ToLower(strings.TrimSpace(s[:open]))
	fields := strings.FieldsFunc(s[open+1:close], func(r rune) bool { return r == ',' || r == ' ' })

	switch name {
	case "rgb":
		if len(fields) != 3 {
			return Colour{}, fmt.Errorf("colour: rgb() requires 3 components, got %d", len(fields))
		}
	case "rgba":
		if len(fields) != 4 {
			return Colour{}, fmt.Errorf("colour: rgba() requires 4 components, got %d", len(fields))
		}
	default:
		return Colour{}, fmt.Errorf("colour: unknown function %q", name)
	}

	comp := make([]uint8, 3)
	for i := 0; i < 3; i++ {
		n, err := parseColourChannel(fields[i])
		if err != nil {
			return Colour{}, err
		}
		comp[i] = n
	}
	alpha := uint8(0xff)
	if name == "rgba" {
		f, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		if err != nil {
			return Colour{}, fmt.Errorf("colour: invalid alpha %q: %w", fields[3], err)
		}
		alpha = uint8(roundFloat(f*255, 0))
	}
	return Colour{R: comp[0], G: comp[1], B: comp[2], A: alpha}, nil
}

func parseColourChannel(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("colour: invalid channel %q: %w", s, err)
		}
		return uint8(roundFloat(f*255/100, 0)), nil
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("colour: invalid channel %q: %w", s, err)
	}
	if n > 255 {
		n = 255
	}
	return uint8(n), nil
}
