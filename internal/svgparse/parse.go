package svgparse

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"

	"github.com/svgdiff/engine/internal/attr"
	"github.com/svgdiff/engine/internal/tree"
)

// svgRegion matches from the first "<svg" open tag to the last
// "</svg>" close tag in the input, inclusive, dot-matching newlines.
// This intentionally isolates the *outermost* svg element even when
// it is embedded in an arbitrary preamble (e.g. an HTML wrapper); it
// is brittle against genuinely nested <svg> siblings at the top
// level, a known, accepted limitation.
var svgRegion = regexp.MustCompile(`(?s)<svg[\s>].*</svg\s*>`)

// svgSelfClosing matches a root <svg/> or <svg .../> with no children
// at all.
var svgSelfClosing = regexp.MustCompile(`(?s)<svg\b[^>]*/>`)

// Parse parses raw as an SVG document: it normalises the byte
// encoding, isolates the outermost "<svg>...</svg>" substring, and
// drives an XML event stream into a flat tree.Tree of Tag, eagerly
// parsing every attribute through attr.FromProp.
func Parse(raw string) (*tree.Tree[Tag], error) {
	utf8Bytes, err := normalizeToUTF8([]byte(raw))
	if err != nil {
		return nil, ErrXMLParse{Err: err}
	}

	region := svgRegion.Find(utf8Bytes)
	if region == nil {
		region = svgSelfClosing.Find(utf8Bytes)
	}
	if region == nil {
		return nil, ErrNoSvgFound{}
	}

	return parseXML(region)
}

func parseXML(svgBytes []byte) (*tree.Tree[Tag], error) {
	dec := xml.NewDecoder(bytes.NewReader(svgBytes))

	var b tree.Builder[Tag]
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ErrXMLParse{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			tag, err := newTag(t)
			if err != nil {
				return nil, err
			}
			b.StartElement(tag)

		case xml.EndElement:
			b.EndElement()

		case xml.CharData:
			if cur, ok := b.CurrentValue(); ok {
				cur.Text = string(t)
				b.SetCurrent(cur)
			}

		case xml.ProcInst:
			if t.Target == "xml" {
				// Declaration: legacy quirk, preserved verbatim as
				// the enclosing tag's text.
				if cur, ok := b.CurrentValue(); ok {
					cur.Text = string(t.Inst)
					b.SetCurrent(cur)
				}
			}
			// Any other processing instruction is ignored.

		case xml.Comment:
			// ignored

		default:
			// xml.Directive and anything else: ignored.
		}
	}

	if b.Depth() != 0 {
		return nil, ErrXMLParse{Err: fmt.Errorf("unclosed element at end of document")}
	}

	return b.Build(), nil
}

func newTag(t xml.StartElement) (Tag, error) {
	args := make(map[string]attr.Value, len(t.Attr))
	for _, a := range t.Attr {
		name := a.Name.Local
		v, err := attr.FromProp(name, a.Value)
		if err != nil {
			return Tag{}, ErrAttributeParse{Attr: name, Raw: a.Value, Err: err}
		}
		args[name] = v
	}
	return Tag{Name: t.Name.Local, Args: args}, nil
}
