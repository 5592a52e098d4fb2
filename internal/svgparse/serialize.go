package svgparse

import (
	"encoding/xml"
	"strings"

	"github.com/svgdiff/engine/internal/tree"
)

// IDLookup supplies the "id" attribute value to stamp onto a node
// during serialisation, overriding (or adding to) whatever the node's
// own Args["id"] already holds. ok is false to leave a node's id
// attribute exactly as parsed.
type IDLookup func(idx int) (id string, ok bool)

// Serialize renders the subtree rooted at idx back to SVG markup,
// with attributes in sorted key order and, where ids reports one, an
// "id" attribute overriding whatever was parsed.
func Serialize(tr *tree.Tree[Tag], idx int, ids IDLookup) string {
	var b strings.Builder
	serializeNode(&b, tr, idx, ids)
	return b.String()
}

func serializeNode(b *strings.Builder, tr *tree.Tree[Tag], idx int, ids IDLookup) {
	tag := tr.Node(idx)

	b.WriteByte('<')
	b.WriteString(tag.Name)

	overrideID, hasOverride := "", false
	if ids != nil {
		overrideID, hasOverride = ids(idx)
	}

	for _, name := range tag.SortedAttrNames() {
		if name == "id" && hasOverride {
			continue
		}
		writeAttr(b, name, tag.Args[name].ToString())
	}
	if hasOverride {
		writeAttr(b, "id", overrideID)
	}

	if tag.Text == "" {
		if !tr.IsLeaf(idx) {
			b.WriteByte('>')
			for c := range tr.Children(idx) {
				serializeNode(b, tr, c, ids)
			}
			b.WriteString("</")
			b.WriteString(tag.Name)
			b.WriteByte('>')
			return
		}
		b.WriteString("/>")
		return
	}

	b.WriteByte('>')
	xml.EscapeText(b, []byte(tag.Text))
	for c := range tr.Children(idx) {
		serializeNode(b, tr, c, ids)
	}
	b.WriteString("</")
	b.WriteString(tag.Name)
	b.WriteByte('>')
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	xml.EscapeText(b, []byte(value))
	b.WriteByte('"')
}
