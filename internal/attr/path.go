package attr

import (
	"fmt"
	"hash/maphash"
	"regexp"
	"strconv"
	"strings"
)

// Segment is one command of a normalised path.
//
// Cmd is the command letter, always uppercase ('M', 'L', 'H', 'V',
// 'C', 'S', 'Q', 'T', 'A', or 'Z'). Abs is true only for the leading
// MoveTo of a normalised Path; every other segment is relative, and
// Args holds its numbers already translated relative to the pen
// position in effect when the segment runs.
type Segment struct {
	Cmd  byte
	Abs  bool
	Args []float64
}

// Path is a normalised "d" attribute: the first segment is always an
// absolute MoveTo, and every following segment is rewritten to its
// relative form.
type Path struct {
	Segments []Segment

	// withPos controls whether HashWithModifier includes the leading
	// absolute MoveTo. It does not affect ToString, which always
	// emits the full path including its anchor point.
	withPos bool
}

func (p Path) Kind() Kind { return KindPath }

// ToString serialises p back to "d" attribute syntax: the leading
// absolute MoveTo, followed by every other segment in relative form,
// space-joined.
func (p Path) ToString() string {
	var b strings.Builder
	for i, seg := range p.Segments {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(segmentToString(seg))
	}
	return b.String()
}

func segmentToString(seg Segment) string {
	cmd := seg.Cmd
	if !seg.Abs {
		cmd = cmd - 'A' + 'a'
	}
	if len(seg.Args) == 0 {
		return string(cmd)
	}
	parts := make([]string, len(seg.Args))
	for i, a := range seg.Args {
		parts[i] = formatFloat(a)
	}
	return string(cmd) + strings.Join(parts, " ")
}

// HashWithModifier feeds every segment's command letter and its
// 8-fractional-digit-rounded numeric arguments into h, in segment
// order. If withPos is false, the leading absolute MoveTo is skipped
// entirely, so that two paths differing only in translation but
// otherwise identical in shape can be made to hash equal by
// requesting a position-insensitive comparison.
func (p Path) HashWithModifier(withPos, withStyle bool, h *maphash.Hash) {
	segs := p.Segments
	if !withPos && len(segs) > 0 && segs[0].Cmd == 'M' {
		segs = segs[1:]
	}
	for _, seg := range segs {
		h.WriteByte(seg.Cmd)
		for _, a := range seg.Args {
			h.WriteString(roundTo8(a))
		}
	}
}

// WithPos returns a copy of p with its recorded position flag set to
// with. HashWithModifier ignores this flag and follows its own withPos
// argument.
func (p Path) WithPos(with bool) Path {
	p.withPos = with
	return p
}

var pathTokenRe = regexp.MustCompile(`[MmLlHhVvCcSsQqTtAaZz]|[+-]?(?:\d+\.\d+|\.\d+|\d+)(?:[eE][+-]?\d+)?`)

// argCounts gives the number of numeric arguments consumed by one
// repetition of each command.
var argCounts = map[byte]int{
	'M': 2, 'L': 2, 'T': 2,
	'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4,
	'A': 7,
	'Z': 0,
}

type rawSegment struct {
	cmd  byte // uppercase
	abs  bool
	args []float64
}

// ParsePath parses the "d" attribute grammar into a normalised Path:
// the first segment becomes an absolute MoveTo, and every following
// segment (including any implicit extra coordinate pairs, and
// including an originally-absolute first MoveTo's own trailing
// implicit LineTos) is rewritten relative to the pen position in
// effect when it runs.
func ParsePath(raw string) (Path, error) {
	tokens := pathTokenRe.FindAllString(raw, -1)
	raws, err := tokenizeSegments(tokens)
	if err != nil {
		return Path{}, fmt.Errorf("path: %w", err)
	}
	if len(raws) == 0 {
		return Path{}, nil
	}
	if raws[0].cmd != 'M' {
		return Path{}, fmt.Errorf("path: first command must be M or m, got %q", raws[0].cmd)
	}

	return Path{Segments: normalizeSegments(raws), withPos: true}, nil
}

func tokenizeSegments(tokens []string) ([]rawSegment, error) {
	var ret []rawSegment
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		if len(tok) != 1 || !isCommandLetter(tok[0]) {
			return nil, fmt.Errorf("expected a command letter, got %q", tok)
		}
		cmd := upperCmd(tok[0])
		abs := tok[0] == cmd
		i++

		n := argCounts[cmd]
		if n == 0 {
			ret = append(ret, rawSegment{cmd: cmd, abs: abs})
			continue
		}

		// Parse the first mandatory group, then keep consuming
		// further complete groups of numbers as implicit repeats of
		// the same command (SVG path grammar).
		first := true
		for {
			if i+n > len(tokens) {
				if first {
					return nil, fmt.Errorf("command %q needs %d arguments", tok, n)
				}
				break
			}
			args := make([]float64, n)
			ok := true
			for j := 0; j < n; j++ {
				v, err := strconv.ParseFloat(tokens[i+j], 64)
				if err != nil {
					if first {
						return nil, fmt.Errorf("invalid number %q: %w", tokens[i+j], err)
					}
					ok = false
					break
				}
				args[j] = v
			}
			if !ok {
				break
			}

			segCmd, segAbs := cmd, abs
			if first && cmd == 'M' {
				// only the leading pair of a MoveTo is itself a
				// MoveTo; subsequent implicit pairs are LineTo.
			} else if cmd == 'M' {
				segCmd = 'L'
			}
			ret = append(ret, rawSegment{cmd: segCmd, abs: segAbs, args: args})
			i += n
			first = false

			// Implicit repeats stop as soon as the next token is a
			// command letter.
			if i < len(tokens) {
				if t := tokens[i]; len(t) == 1 && isCommandLetter(t[0]) {
					break
				}
			} else {
				break
			}
		}
	}
	return ret, nil
}

func isCommandLetter(b byte) bool {
	switch b {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

func upperCmd(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// normalizeSegments rewrites raws (whose first element is always a
// MoveTo) into the canonical form: absolute leading MoveTo, every
// later segment relative to the running pen position.
func normalizeSegments(raws []rawSegment) []Segment {
	ret := make([]Segment, 0, len(raws))

	var penX, penY float64
	var startX, startY float64

	for idx, seg := range raws {
		absArgs := toAbsolute(seg, penX, penY)

		if idx == 0 {
			ret = append(ret, Segment{Cmd: seg.cmd, Abs: true, Args: append([]float64(nil), absArgs...)})
		} else {
			ret = append(ret, Segment{Cmd: seg.cmd, Abs: false, Args: toRelative(seg.cmd, absArgs, penX, penY)})
		}

		penX, penY, startX, startY = advancePen(seg.cmd, absArgs, penX, penY, startX, startY)
	}
	return ret
}

// toAbsolute returns seg's numeric arguments with every coordinate
// component expressed as an absolute position, given the pen position
// in effect before seg runs.
func toAbsolute(seg rawSegment, penX, penY float64) []float64 {
	if seg.abs || len(seg.args) == 0 {
		return append([]float64(nil), seg.args...)
	}
	out := append([]float64(nil), seg.args...)
	for _, pair := range coordPairs(seg.cmd) {
		out[pair[0]] += penX
		out[pair[1]] += penY
	}
	for _, idx := range coordXOnly(seg.cmd) {
		out[idx] += penX
	}
	for _, idx := range coordYOnly(seg.cmd) {
		out[idx] += penY
	}
	return out
}

// toRelative returns absArgs (already absolute) rewritten relative to
// the pen position in effect before the segment runs.
func toRelative(cmd byte, absArgs []float64, penX, penY float64) []float64 {
	if len(absArgs) == 0 {
		return nil
	}
	out := append([]float64(nil), absArgs...)
	for _, pair := range coordPairs(cmd) {
		out[pair[0]] -= penX
		out[pair[1]] -= penY
	}
	for _, idx := range coordXOnly(cmd) {
		out[idx] -= penX
	}
	for _, idx := range coordYOnly(cmd) {
		out[idx] -= penY
	}
	return out
}

// coordPairs returns the (x,y) argument index pairs of cmd that are
// positions relative to the pen position in effect when the segment
// starts (i.e. everything except H/V's single-axis values and A's
// leading radius/rotation/flag arguments).
func coordPairs(cmd byte) [][2]int {
	switch cmd {
	case 'M', 'L', 'T':
		return [][2]int{{0, 1}}
	case 'C':
		return [][2]int{{0, 1}, {2, 3}, {4, 5}}
	case 'S', 'Q':
		return [][2]int{{0, 1}, {2, 3}}
	case 'A':
		return [][2]int{{5, 6}}
	default:
		return nil
	}
}

func coordXOnly(cmd byte) []int {
	if cmd == 'H' {
		return []int{0}
	}
	return nil
}

func coordYOnly(cmd byte) []int {
	if cmd == 'V' {
		return []int{0}
	}
	return nil
}

// advancePen returns the new pen position and subpath-start position
// after running a segment with the given (already absolute) args.
func advancePen(cmd byte, absArgs []float64, penX, penY, startX, startY float64) (newX, newY, newStartX, newStartY float64) {
	switch cmd {
	case 'M':
		return absArgs[0], absArgs[1], absArgs[0], absArgs[1]
	case 'L', 'T':
		return absArgs[0], absArgs[1], startX, startY
	case 'H':
		return absArgs[0], penY, startX, startY
	case 'V':
		return penX, absArgs[0], startX, startY
	case 'C':
		return absArgs[4], absArgs[5], startX, startY
	case 'S', 'Q':
		return absArgs[2], absArgs[3], startX, startY
	case 'A':
		return absArgs[5], absArgs[6], startX, startY
	case 'Z':
		return startX, startY, startX, startY
	default:
		return penX, penY, startX, startY
	}
}
