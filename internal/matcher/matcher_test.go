package matcher

import (
	"testing"

	"github.com/svgdiff/engine/internal/fingerprint"
	"github.com/svgdiff/engine/internal/idgen"
	"github.com/svgdiff/engine/internal/rules"
	"github.com/svgdiff/engine/internal/svgparse"
	"github.com/svgdiff/engine/internal/tree"
)

func match(t *testing.T, origin, target string) (Result, *tree.Tree[svgparse.Tag], *tree.Tree[svgparse.Tag]) {
	t.Helper()
	set := rules.Default()

	oTree, err := svgparse.Parse(origin)
	if err != nil {
		t.Fatalf("parsing origin: %v", err)
	}
	tTree, err := svgparse.Parse(target)
	if err != nil {
		t.Fatalf("parsing target: %v", err)
	}

	oFP := fingerprint.Compute(oTree, set)
	tFP := fingerprint.Compute(tTree, set)
	return Match(oTree, tTree, oFP, tFP, set, idgen.New()), oTree, tTree
}

func TestMatchIdenticalDocuments(t *testing.T) {
	const doc = `<svg><g><circle cx="10" cy="10" r="5"/><rect width="4" height="4"/></g></svg>`
	res, oTree, _ := match(t, doc, doc)

	for i := 0; i < oTree.Len(); i++ {
		st := res.Origin[i]
		if !st.Matched {
			t.Errorf("origin[%d]: Matched = false, want true for identical documents", i)
			continue
		}
		if !st.NoChanges || st.SubtreeChanges || st.InternalChanges {
			t.Errorf("origin[%d]: flags = (%v,%v,%v), want (true,false,false)",
				i, st.NoChanges, st.SubtreeChanges, st.InternalChanges)
		}
	}
}

func TestMatchCoverage(t *testing.T) {
	// Every node on both sides must end up with exactly one state, with
	// its own index recorded on the side it belongs to.
	res, oTree, tTree := match(t,
		`<svg><circle cx="1"/><rect width="2"/><text>bye</text></svg>`,
		`<svg><rect width="2"/><ellipse rx="3"/></svg>`)

	if got, want := len(res.Origin), oTree.Len(); got != want {
		t.Fatalf("len(res.Origin) = %d, want %d", got, want)
	}
	if got, want := len(res.Target), tTree.Len(); got != want {
		t.Fatalf("len(res.Target) = %d, want %d", got, want)
	}
	for i, st := range res.Origin {
		if st.OriginIndex != i {
			t.Errorf("origin[%d].OriginIndex = %d, want %d", i, st.OriginIndex, i)
		}
		if !st.Matched && st.TargetIndex != -1 {
			t.Errorf("origin[%d]: unmatched but TargetIndex = %d", i, st.TargetIndex)
		}
	}
	for i, st := range res.Target {
		if st.Matched && st.TargetIndex != i {
			t.Errorf("target[%d].TargetIndex = %d, want %d", i, st.TargetIndex, i)
		}
		if !st.Matched && st.OriginIndex != -1 {
			t.Errorf("target[%d]: unmatched but OriginIndex = %d", i, st.OriginIndex)
		}
	}
}

func TestMatchIdentifierUniqueness(t *testing.T) {
	res, _, _ := match(t,
		`<svg><circle cx="1"/><circle cx="2"/><circle cx="3"/></svg>`,
		`<svg><circle cx="2"/><circle cx="4"/></svg>`)

	seen := make(map[string]int)
	for i, st := range res.Origin {
		if st.ID == "" {
			t.Errorf("origin[%d]: empty id", i)
			continue
		}
		if prev, dup := seen[st.ID]; dup {
			t.Errorf("origin[%d] and origin[%d] share id %q", prev, i, st.ID)
		}
		seen[st.ID] = i
	}
	// Matched target states share the origin id; that is the one
	// permitted form of reuse.
	for i, st := range res.Target {
		if !st.Matched {
			continue
		}
		if o, ok := seen[st.ID]; !ok || o != st.OriginIndex {
			t.Errorf("target[%d]: id %q does not name its matched origin node", i, st.ID)
		}
	}
}

func TestMatchInheritsOriginIDAttribute(t *testing.T) {
	res, _, _ := match(t,
		`<svg id="root"><circle id="c" cx="1"/></svg>`,
		`<svg><circle cx="1"/></svg>`)

	if got := res.Origin[0].ID; got != "root" {
		t.Errorf("root id = %q, want %q", got, "root")
	}
	if got := res.Origin[1].ID; got != "c" {
		t.Errorf("circle id = %q, want %q", got, "c")
	}
}

func TestMatchUnmatchedOriginKeepsOwnID(t *testing.T) {
	res, oTree, _ := match(t,
		`<svg><circle id="gone" cx="1"/></svg>`,
		`<svg/>`)

	var found bool
	for i := 0; i < oTree.Len(); i++ {
		st := res.Origin[i]
		if oTree.Node(i).Name != "circle" {
			continue
		}
		found = true
		if st.Matched {
			t.Errorf("removed circle matched, want unmatched")
		}
		if st.ID != "gone" {
			t.Errorf("removed circle id = %q, want %q", st.ID, "gone")
		}
	}
	if !found {
		t.Fatalf("no circle node in origin tree")
	}
}

func TestMatchAttributeChangeFlags(t *testing.T) {
	res, oTree, _ := match(t,
		`<svg><circle cx="50" cy="50" r="40"/></svg>`,
		`<svg><circle cx="49" cy="50" r="40"/></svg>`)

	var circle State
	for i := 0; i < oTree.Len(); i++ {
		if oTree.Node(i).Name == "circle" {
			circle = res.Origin[i]
		}
	}
	if !circle.Matched {
		t.Fatalf("circle did not match across an attribute change")
	}
	if circle.NoChanges {
		t.Errorf("circle.NoChanges = true, want false")
	}
	if !circle.InternalChanges {
		t.Errorf("circle.InternalChanges = false, want true")
	}
	if circle.SubtreeChanges {
		t.Errorf("circle.SubtreeChanges = true, want false (leaf node)")
	}

	root := res.Origin[0]
	if root.InternalChanges {
		t.Errorf("root.InternalChanges = true, want false (only a descendant changed)")
	}
}

func TestMatchReorderSetsSubtreeChangesOnly(t *testing.T) {
	res, _, _ := match(t,
		`<svg><g/><text>Hello</text></svg>`,
		`<svg><text>Hello</text><g/></svg>`)

	root := res.Origin[0]
	if !root.SubtreeChanges {
		t.Errorf("root.SubtreeChanges = false, want true after a reorder")
	}
	if root.InternalChanges {
		t.Errorf("root.InternalChanges = true, want false after a pure reorder")
	}
	for i, st := range res.Origin {
		if i == 0 {
			continue
		}
		if !st.Matched {
			t.Errorf("origin[%d]: reordered child should still match", i)
		}
	}
}

func TestMatchPrefersEqualSubtreeOverLooserRule(t *testing.T) {
	// Both target circles are candidates for the origin circle under
	// only_tag, but the "all" rule runs first and pairs the exact
	// attribute match, leaving the changed one to a later rule.
	res, oTree, tTree := match(t,
		`<svg><circle cx="1"/></svg>`,
		`<svg><circle cx="9"/><circle cx="1"/></svg>`)

	var oCircle int
	for i := 0; i < oTree.Len(); i++ {
		if oTree.Node(i).Name == "circle" {
			oCircle = i
		}
	}
	st := res.Origin[oCircle]
	if !st.Matched {
		t.Fatalf("origin circle did not match")
	}
	if got := tTree.Node(st.TargetIndex).Args["cx"].ToString(); got != "1" {
		t.Errorf("origin circle paired with cx=%s, want the identical cx=1", got)
	}
}
