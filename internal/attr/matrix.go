package attr

import (
	"fmt"
	"hash/maphash"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Matrix is a 2x3 affine transform matrix, normalised from the SVG
// 1.1 "transform" attribute grammar. Every function in the grammar
// (matrix, translate, scale, rotate, skewX, skewY) is reduced to one
// matrix by composing left-to-right in the order the functions
// appear, exactly as SVG defines chained transforms to behave.
//
// The six components are conventionally named after the CSS/SVG
// matrix() argument order:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
type Matrix struct {
	A, B, C, D, E, F float64
}

func (m Matrix) Kind() Kind { return KindMatrix }

// ToString serialises m back to the canonical single matrix(...)
// function form.
func (m Matrix) ToString() string {
	return fmt.Sprintf("matrix(%s,%s,%s,%s,%s,%s)",
		formatFloat(m.A), formatFloat(m.B), formatFloat(m.C),
		formatFloat(m.D), formatFloat(m.E), formatFloat(m.F))
}

// HashWithModifier feeds the six components into h, each rounded to 8
// fractional digits so that floating-point noise doesn't defeat
// matching.
func (m Matrix) HashWithModifier(_, _ bool, h *maphash.Hash) {
	for _, v := range [...]float64{m.A, m.B, m.C, m.D, m.E, m.F} {
		h.WriteString(roundTo8(v))
	}
}

// identityMatrix is the neutral element of transform composition.
var identityMatrix = Matrix{A: 1, D: 1}

// compose returns the matrix representing "apply m, then apply n",
// i.e. n ∘ m in function-composition notation.
func (m Matrix) compose(n Matrix) Matrix {
	return Matrix{
		A: n.A*m.A + n.C*m.B,
		B: n.B*m.A + n.D*m.B,
		C: n.A*m.C + n.C*m.D,
		D: n.B*m.C + n.D*m.D,
		E: n.A*m.E + n.C*m.F + n.E,
		F: n.B*m.E + n.D*m.F + n.F,
	}
}

var transformFuncRe = regexp.MustCompile(`([a-zA-Z]+)\s*\(([^)]*)\)`)

// ParseMatrix parses the "transform" attribute grammar (a
// whitespace/comma separated sequence of matrix/translate/scale/
// rotate/skewX/skewY functions) and reduces it to one Matrix.
func ParseMatrix(raw string) (Matrix, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return identityMatrix, nil
	}

	matches := transformFuncRe.FindAllStringSubmatch(raw, -1)
	if matches == nil {
		return Matrix{}, fmt.Errorf("transform: no recognised function in %q", raw)
	}

	ret := identityMatrix
	for _, match := range matches {
		fn, err := parseTransformFunc(match[1], match[2])
		if err != nil {
			return Matrix{}, fmt.Errorf("transform: %w", err)
		}
		// The list multiplies out left to right, so a point meets the
		// rightmost function first: fn runs before what came earlier.
		ret = fn.compose(ret)
	}
	return ret, nil
}

func parseTransformFunc(name, argStr string) (Matrix, error) {
	args, err := parseFloatList(argStr)
	if err != nil {
		return Matrix{}, fmt.Errorf("%s(%s): %w", name, argStr, err)
	}

	switch strings.ToLower(name) {
	case "matrix":
		if len(args) != 6 {
			return Matrix{}, fmt.Errorf("matrix() requires 6 arguments, got %d", len(args))
		}
		return Matrix{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}, nil

	case "translate":
		switch len(args) {
		case 1:
			return Matrix{A: 1, D: 1, E: args[0]}, nil
		case 2:
			return Matrix{A: 1, D: 1, E: args[0], F: args[1]}, nil
		}
		return Matrix{}, fmt.Errorf("translate() requires 1 or 2 arguments, got %d", len(args))

	case "scale":
		switch len(args) {
		case 1:
			return Matrix{A: args[0], D: args[0]}, nil
		case 2:
			return Matrix{A: args[0], D: args[1]}, nil
		}
		return Matrix{}, fmt.Errorf("scale() requires 1 or 2 arguments, got %d", len(args))

	case "rotate":
		var cx, cy float64
		switch len(args) {
		case 1:
		case 3:
			cx, cy = args[1], args[2]
		default:
			return Matrix{}, fmt.Errorf("rotate() requires 1 or 3 arguments, got %d", len(args))
		}
		rad := args[0] * math.Pi / 180
		sin, cos := math.Sin(rad), math.Cos(rad)
		rot := Matrix{A: cos, B: sin, C: -sin, D: cos}
		if cx == 0 && cy == 0 {
			return rot, nil
		}
		toOrigin := Matrix{A: 1, D: 1, E: -cx, F: -cy}
		back := Matrix{A: 1, D: 1, E: cx, F: cy}
		return toOrigin.compose(rot).compose(back), nil

	case "skewx":
		if len(args) != 1 {
			return Matrix{}, fmt.Errorf("skewX() requires 1 argument, got %d", len(args))
		}
		return Matrix{A: 1, D: 1, C: math.Tan(args[0] * math.Pi / 180)}, nil

	case "skewy":
		if len(args) != 1 {
			return Matrix{}, fmt.Errorf("skewY() requires 1 argument, got %d", len(args))
		}
		return Matrix{A: 1, D: 1, B: math.Tan(args[0] * math.Pi / 180)}, nil

	default:
		return Matrix{}, fmt.Errorf("unknown transform function %q", name)
	}
}

// parseFloatList splits a comma/whitespace separated list of SVG
// numbers.
func parseFloatList(s string) ([]float64, error) {
	fields := splitNumberList(s)
	ret := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", f, err)
		}
		ret = append(ret, v)
	}
	return ret, nil
}

// splitNumberList splits s on commas and/or whitespace, dropping empty
// fields. SVG allows either separator interchangeably between
// numeric arguments.
func splitNumberList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

// roundTo8 formats v rounded to 8 fractional digits, trimming
// trailing zeros, so that two floats that are equal up to accumulated
// floating-point noise hash identically.
func roundTo8(v float64) string {
	return strconv.FormatFloat(roundFloat(v, 8), 'f', -1, 64)
}

func roundFloat(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// formatFloat serialises v using the shortest round-trippable
// representation, matching how browsers and other SVG tools print
// numbers back into markup.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
