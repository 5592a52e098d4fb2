package fingerprint

import (
	"hash/maphash"
	"sort"

	"github.com/svgdiff/engine/internal/attr"
	"github.com/svgdiff/engine/internal/hostlink"
	"github.com/svgdiff/engine/internal/rules"
	"github.com/svgdiff/engine/internal/svgparse"
	"github.com/svgdiff/engine/internal/tree"
)

// Fingerprint is the full set of digests computed for one node: the
// three always-available baselines, addressable directly, plus every
// rule known to the Set used to compute it (baselines included again,
// under their own names, for uniform lookup by name).
type Fingerprint struct {
	All                uint64
	AllSubtrees        uint64
	AllWithoutSubtrees uint64
	ByRule             map[string]Digest
}

// Compute folds every rule in set over tr, bottom-up, and returns one
// Fingerprint per node index.
//
// Each rule's digests live in their own tree.Flange overlay, one slot
// per node index, so a later rule can read an earlier rule's finished
// table without the tree itself ever changing.
//
// Rules are evaluated in set.Ordered's declaration order, not index
// order: a rule's prev_sibling_rule/next_sibling_rule/childrens_rule
// names a rule that must already be fully computed, which declaration
// order guarantees (a rule can only be configured to reference a rule
// declared earlier). Within a single rule's own evaluation, nodes are
// folded in reverse index order, since the tree invariant that a
// parent's index is always smaller than any descendant's guarantees
// every child digest is ready before its parent needs it.
func Compute(tr *tree.Tree[svgparse.Tag], set *rules.Set) []Fingerprint {
	n := tr.Len()
	computed := make(map[string]tree.Flange[Digest], len(set.Ordered()))

	for _, r := range set.Ordered() {
		computed[r.Name] = computeRule(tr, r, computed)
	}

	result := make([]Fingerprint, n)
	for i := 0; i < n; i++ {
		byRule := make(map[string]Digest, len(computed))
		for name, fl := range computed {
			byRule[name] = fl.Get(i)
		}
		result[i] = Fingerprint{
			All:                computed["all"].Get(i).Value,
			AllSubtrees:        computed["all_subtrees"].Get(i).Value,
			AllWithoutSubtrees: computed["all_without_subtrees"].Get(i).Value,
			ByRule:             byRule,
		}
	}
	return result
}

// writeAttrDigest feeds the fingerprint contribution of one attribute
// into h. same_link_host folds in the canonicalized link host instead
// of the raw href text, so that two documents linking to the same
// resource across a scheme, case, or punycode rewrite still match;
// every other rule/attribute combination just hashes the typed value.
func writeAttrDigest(h *maphash.Hash, r rules.Rule, name string, val attr.Value) {
	if r.Name == "same_link_host" && (name == "href" || name == "xlink:href") {
		if host, ok := hostlink.CanonicalHost(val.ToString()); ok {
			h.WriteString(host)
			return
		}
	}
	val.HashWithModifier(r.Attr.WithPos, r.Attr.WithStyle, h)
}

func digestAt(computed map[string]tree.Flange[Digest], name string, idx int) Digest {
	fl, ok := computed[name]
	if !ok || idx < 0 || idx >= fl.Len() {
		return Digest{}
	}
	return fl.Get(idx)
}

func computeRule(tr *tree.Tree[svgparse.Tag], r rules.Rule, computed map[string]tree.Flange[Digest]) tree.Flange[Digest] {
	n := tr.Len()
	out := tree.NewFlangeBuilder(n, Digest{})
	childRuleName := r.ChildRuleName()
	selfRecurses := childRuleName == r.Name

	for i := n - 1; i >= 0; i-- {
		tag := tr.Node(i)
		if !r.AppliesToTag(tag.Name) {
			continue
		}
		if r.Name == "same_link_host" {
			_, href := tag.Args["href"]
			_, xlinkHref := tag.Args["xlink:href"]
			if !href && !xlinkHref {
				continue
			}
		}

		var prevDigest, nextDigest Digest
		if r.PrevSiblingRule != "" {
			prev, ok := tr.PrevSibling(i)
			if !ok {
				continue
			}
			prevDigest = digestAt(computed, r.PrevSiblingRule, prev)
			if !prevDigest.Present {
				continue
			}
		}
		if r.NextSiblingRule != "" {
			next, ok := tr.NextSibling(i)
			if !ok {
				continue
			}
			nextDigest = digestAt(computed, r.NextSiblingRule, next)
			if !nextDigest.Present {
				continue
			}
		}

		h := newHash()
		if r.PrevSiblingRule != "" {
			writeDigest(&h, prevDigest.Value)
		}
		if r.NextSiblingRule != "" {
			writeDigest(&h, nextDigest.Value)
		}
		h.WriteString(tag.Name)
		if r.IncludesText() {
			h.WriteString(tag.Text)
		}

		if r.Recursive {
			var childVals []uint64
			for c := range tr.Children(i) {
				var cd Digest
				if selfRecurses {
					cd = out.Get(c)
				} else {
					cd = digestAt(computed, childRuleName, c)
				}
				if cd.Present {
					childVals = append(childVals, cd.Value)
				}
			}
			if r.SortChildren {
				sort.Slice(childVals, func(a, b int) bool { return childVals[a] < childVals[b] })
			}
			for _, v := range childVals {
				writeDigest(&h, v)
			}
		}

		for _, name := range r.FilterAttrNames(tag.SortedAttrNames()) {
			writeAttrDigest(&h, r, name, tag.Args[name])
			h.WriteString(name)
		}

		out.Set(i, Digest{Value: h.Sum64(), Present: true})
	}

	return out.Done()
}
