package fingerprint

import (
	"testing"

	"github.com/svgdiff/engine/internal/attr"
	"github.com/svgdiff/engine/internal/rules"
	"github.com/svgdiff/engine/internal/svgparse"
	"github.com/svgdiff/engine/internal/tree"
)

func tag(name string, args map[string]attr.Value) svgparse.Tag {
	if args == nil {
		args = map[string]attr.Value{}
	}
	return svgparse.Tag{Name: name, Args: args}
}

// buildTree builds:
//
//	svg
//	├─ circle fill=red
//	└─ rect fill=blue
func buildTree(rectFill string) *tree.Tree[svgparse.Tag] {
	var b tree.Builder[svgparse.Tag]
	b.StartElement(tag("svg", nil))
	b.StartEndElement(tag("circle", map[string]attr.Value{"fill": attr.String("red")}))
	b.StartEndElement(tag("rect", map[string]attr.Value{"fill": attr.String(rectFill)}))
	b.EndElement()
	return b.Build()
}

func TestComputeAllDigestIdenticalTreesEqual(t *testing.T) {
	set := rules.Default()
	a := Compute(buildTree("blue"), set)
	b := Compute(buildTree("blue"), set)
	if a[0].All != b[0].All {
		t.Errorf("identical trees: All digests differ")
	}
	if a[0].AllWithoutSubtrees != b[0].AllWithoutSubtrees {
		t.Errorf("identical trees: AllWithoutSubtrees digests differ")
	}
}

func TestComputeAllDigestDiffersOnAttrChange(t *testing.T) {
	set := rules.Default()
	a := Compute(buildTree("blue"), set)
	b := Compute(buildTree("green"), set)
	if a[0].All == b[0].All {
		t.Errorf("changed rect fill: root All digest should differ")
	}
}

func TestComputeAllWithoutSubtreesIgnoresChildAttr(t *testing.T) {
	set := rules.Default()
	a := Compute(buildTree("blue"), set)
	b := Compute(buildTree("green"), set)
	if a[0].AllWithoutSubtrees != b[0].AllWithoutSubtrees {
		t.Errorf("all_without_subtrees should ignore descendant attribute changes")
	}
}

func TestComputeOnlyTagIgnoresAttributesAndText(t *testing.T) {
	set := rules.Default()
	a := Compute(buildTree("blue"), set)
	b := Compute(buildTree("green"), set)
	da := a[2].ByRule["only_tag"]
	db := b[2].ByRule["only_tag"]
	if !da.Present || !db.Present {
		t.Fatalf("only_tag should be present for a plain rect node")
	}
	if da.Value != db.Value {
		t.Errorf("only_tag digest should be attribute-independent, got %v vs %v", da, db)
	}
}

func TestComputeWithReorderInsensitiveToChildOrder(t *testing.T) {
	set := rules.Default()

	var b1 tree.Builder[svgparse.Tag]
	b1.StartElement(tag("svg", nil))
	b1.StartEndElement(tag("circle", nil))
	b1.StartEndElement(tag("rect", nil))
	b1.EndElement()
	t1 := b1.Build()

	var b2 tree.Builder[svgparse.Tag]
	b2.StartElement(tag("svg", nil))
	b2.StartEndElement(tag("rect", nil))
	b2.StartEndElement(tag("circle", nil))
	b2.EndElement()
	t2 := b2.Build()

	fp1 := Compute(t1, set)
	fp2 := Compute(t2, set)

	d1 := fp1[0].ByRule["with_reorder"]
	d2 := fp2[0].ByRule["with_reorder"]
	if !d1.Present || !d2.Present {
		t.Fatalf("with_reorder should be present at the root")
	}
	if d1.Value != d2.Value {
		t.Errorf("with_reorder should be insensitive to sibling order, got %v vs %v", d1, d2)
	}
}

// labelledTree builds:
//
//	svg
//	├─ circle cx=<cx>
//	└─ text "Hello"
func labelledTree(cx string) *tree.Tree[svgparse.Tag] {
	var b tree.Builder[svgparse.Tag]
	b.StartElement(tag("svg", nil))
	b.StartEndElement(tag("circle", map[string]attr.Value{"cx": attr.String(cx)}))
	b.StartElement(tag("text", nil))
	cur, _ := b.CurrentValue()
	cur.Text = "Hello"
	b.SetCurrent(cur)
	b.EndElement()
	b.EndElement()
	return b.Build()
}

func TestComputeNextIsSameTextChainsThroughTextSibling(t *testing.T) {
	// next_is_same_text is only defined for a node whose next sibling
	// carries a same_text_in_text digest, i.e. is a <text> element. The
	// circle's own cx never contributes (the rule's attribute whitelist
	// is empty), so two circles differing only in cx but sharing the
	// same following label digest equal.
	set := rules.Default()
	a := Compute(labelledTree("50"), set)
	b := Compute(labelledTree("49"), set)

	da := a[1].ByRule["next_is_same_text"]
	db := b[1].ByRule["next_is_same_text"]
	if !da.Present || !db.Present {
		t.Fatalf("next_is_same_text should be present for a node followed by a <text> sibling")
	}
	if da.Value != db.Value {
		t.Errorf("next_is_same_text should ignore the node's own attributes, got %v vs %v", da, db)
	}
}

func TestComputeNextIsSameTextAbsentWithoutTextSibling(t *testing.T) {
	set := rules.Default()
	fp := Compute(buildTree("blue"), set)
	// circle's next sibling is a rect, rect has no next sibling at all:
	// neither carries a same_text_in_text digest to chain from.
	for _, i := range []int{1, 2} {
		if d := fp[i].ByRule["next_is_same_text"]; d.Present {
			t.Errorf("node %d: next_is_same_text.Present = true, want false", i)
		}
	}
}

func TestComputeSameLinkHostAppliesOnlyToHrefAttr(t *testing.T) {
	set := rules.Default()
	var b tree.Builder[svgparse.Tag]
	b.StartElement(tag("svg", nil))
	b.StartEndElement(tag("a", map[string]attr.Value{"href": attr.String("https://example.com/a")}))
	b.EndElement()
	tr := b.Build()
	fp := Compute(tr, set)
	d := fp[1].ByRule["same_link_host"]
	if !d.Present {
		t.Errorf("same_link_host should be present on a tag carrying href")
	}
}

func linkTree(href string) *tree.Tree[svgparse.Tag] {
	var b tree.Builder[svgparse.Tag]
	b.StartElement(tag("svg", nil))
	b.StartEndElement(tag("a", map[string]attr.Value{"href": attr.String(href)}))
	b.EndElement()
	return b.Build()
}

func TestComputeSameLinkHostFoldsSchemeAndCase(t *testing.T) {
	set := rules.Default()
	a := Compute(linkTree("https://EXAMPLE.com/a"), set)
	b := Compute(linkTree("http://example.com/b"), set)
	da := a[1].ByRule["same_link_host"]
	db := b[1].ByRule["same_link_host"]
	if !da.Present || !db.Present {
		t.Fatalf("same_link_host should be present for both links")
	}
	if da.Value != db.Value {
		t.Errorf("same_link_host should fold scheme/case differences, got %v vs %v", da, db)
	}
}

func TestComputeSameLinkHostDiffersOnDifferentHost(t *testing.T) {
	set := rules.Default()
	a := Compute(linkTree("https://example.com/a"), set)
	b := Compute(linkTree("https://example.org/a"), set)
	if a[1].ByRule["same_link_host"].Value == b[1].ByRule["same_link_host"].Value {
		t.Errorf("same_link_host should differ across distinct hosts")
	}
}
