package editscript

import (
	"sort"

	"github.com/svgdiff/engine/internal/attr"
	"github.com/svgdiff/engine/internal/idgen"
	"github.com/svgdiff/engine/internal/matcher"
	"github.com/svgdiff/engine/internal/svgparse"
	"github.com/svgdiff/engine/internal/tree"
)

// Build derives the edit script that transforms the identified origin
// tree into target, from res (matcher.Match's output for the same
// pair) and gen, the same identifier generator threaded through
// matching, needed here because newly added subtrees mint their ids
// lazily, only when the Add phase actually serialises them.
//
// Steps are appended in the fixed phase order the external contract
// requires: every Add precedes every Remove, which precedes every
// Move, which precedes every Change/ChangeText.
func Build(origin, target *tree.Tree[svgparse.Tag], res matcher.Result, gen *idgen.Generator) []Step {
	targetIDs := assignTargetIDs(target, res, gen)

	var steps []Step
	steps = append(steps, buildAdds(target, res, targetIDs)...)
	steps = append(steps, buildRemoves(origin, res)...)
	steps = append(steps, buildMoves(origin, target, res)...)
	steps = append(steps, buildChanges(origin, target, res)...)
	return steps
}

// assignTargetIDs returns, for every target index, the id it should
// be addressed by in the edit script: the shared matching id for a
// matched node, or (lazily minted here, since the matcher defers this
// decision to whichever pass first serialises the new subtree) the
// node's own "id" attribute if it has one, else a freshly generated
// one.
func assignTargetIDs(target *tree.Tree[svgparse.Tag], res matcher.Result, gen *idgen.Generator) []string {
	ids := make([]string, target.Len())
	for i, st := range res.Target {
		if st.Matched {
			ids[i] = st.ID
		}
	}
	for i := range target.DFS() {
		if ids[i] == "" {
			ids[i] = gen.Next(defaultID(target.Node(i)))
		}
	}
	return ids
}

func defaultID(tag svgparse.Tag) string {
	v, ok := tag.Args["id"]
	if !ok {
		return ""
	}
	if s, ok := v.(attr.String); ok {
		return string(s)
	}
	return v.ToString()
}

// isSubtreeRoot reports whether i either has no parent or has a
// matched parent. Callers check that i itself is unmatched first, so
// that together these pick the topmost node of a maximal run of
// same-sided-unmatched nodes. Adds and Removes
// only fire at subtree roots, since the svg/subtree they carry
// already includes every descendant.
func isSubtreeRoot(tr *tree.Tree[svgparse.Tag], i int, matchedAt func(int) bool) bool {
	p, ok := tr.Parent(i)
	if !ok {
		return true
	}
	return matchedAt(p)
}

func buildAdds(target *tree.Tree[svgparse.Tag], res matcher.Result, ids []string) []Step {
	matchedAt := func(i int) bool { return res.Target[i].Matched }

	var steps []Step
	for i := range target.DFS() {
		if res.Target[i].Matched {
			continue
		}
		if !isSubtreeRoot(target, i, matchedAt) {
			continue
		}

		parentIdx, _ := target.Parent(i)
		step := Add{
			Action:   ActionAdd,
			SVG:      svgparse.Serialize(target, i, func(idx int) (string, bool) { return ids[idx], true }),
			ID:       ids[i],
			ParentID: ids[parentIdx],
		}
		if p, ok := target.PrevSibling(i); ok {
			v := ids[p]
			step.PrevChildID = &v
		}
		if n, ok := target.NextSibling(i); ok {
			v := ids[n]
			step.NextChildID = &v
		}
		steps = append(steps, step)
	}
	return steps
}

func buildRemoves(origin *tree.Tree[svgparse.Tag], res matcher.Result) []Step {
	matchedAt := func(i int) bool { return res.Origin[i].Matched }

	var steps []Step
	for i := range origin.DFS() {
		if res.Origin[i].Matched {
			continue
		}
		if !isSubtreeRoot(origin, i, matchedAt) {
			continue
		}

		parentIdx, hasParent := origin.Parent(i)
		var parentID string
		if hasParent {
			parentID = res.Origin[parentIdx].ID
		}
		step := Remove{
			Action:   ActionRemove,
			ID:       res.Origin[i].ID,
			ParentID: parentID,
		}
		if p, ok := origin.PrevSibling(i); ok {
			v := res.Origin[p].ID
			step.PrevChildID = &v
		}
		if n, ok := origin.NextSibling(i); ok {
			v := res.Origin[n].ID
			step.NextChildID = &v
		}
		steps = append(steps, step)
	}
	return steps
}

// matchedChildIDs returns the ids of the Matched children of i, in
// document order: the "still-present" sibling list buildMoves
// reorders.
func matchedChildIDs(tr *tree.Tree[svgparse.Tag], i int, matchedAt func(int) bool, idAt func(int) string) []string {
	var ids []string
	for c := range tr.Children(i) {
		if matchedAt(c) {
			ids = append(ids, idAt(c))
		}
	}
	return ids
}

func buildMoves(origin, target *tree.Tree[svgparse.Tag], res matcher.Result) []Step {
	var steps []Step
	for i, st := range res.Origin {
		if !st.Matched || !st.SubtreeChanges {
			continue
		}
		oIdx, tIdx := i, st.TargetIndex

		originList := matchedChildIDs(origin, oIdx,
			func(c int) bool { return res.Origin[c].Matched },
			func(c int) string { return res.Origin[c].ID })
		targetList := matchedChildIDs(target, tIdx,
			func(c int) bool { return res.Target[c].Matched },
			func(c int) string { return res.Target[c].ID })

		working := append([]string(nil), originList...)
		for pos, wantID := range targetList {
			if working[pos] == wantID {
				continue
			}
			from := indexOf(working, wantID)
			working[pos], working[from] = working[from], working[pos]

			step := Move{
				Action:      ActionMove,
				ID:          wantID,
				NewParentID: st.ID,
			}
			if pos > 0 {
				v := targetList[pos-1]
				step.NewPrevChildID = &v
			}
			if pos < len(targetList)-1 {
				v := targetList[pos+1]
				step.NewNextChildID = &v
			}
			steps = append(steps, step)
		}
	}
	return steps
}

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}

func buildChanges(origin, target *tree.Tree[svgparse.Tag], res matcher.Result) []Step {
	var steps []Step
	for i, st := range res.Origin {
		if !st.Matched || !st.InternalChanges {
			continue
		}
		oTag := origin.Node(i)
		tTag := target.Node(st.TargetIndex)

		if oTag.Text != tTag.Text {
			steps = append(steps, ChangeText{
				Action:  ActionChangeText,
				ID:      st.ID,
				NewText: tTag.Text,
			})
		}

		if props := propertyDelta(oTag, tTag); props != nil {
			props.Action = ActionChange
			props.ID = st.ID
			steps = append(steps, *props)
		}
	}
	return steps
}

// propertyDelta compares the attributes of oTag and tTag, returning
// nil if there is no difference at all.
func propertyDelta(oTag, tTag svgparse.Tag) *ChangeProperties {
	var adds, removes []PropValue
	var changes []PropChange

	for _, name := range sortedUnion(oTag.Args, tTag.Args) {
		oVal, inO := oTag.Args[name]
		tVal, inT := tTag.Args[name]
		switch {
		case inO && !inT:
			removes = append(removes, PropValue{Prop: name, Value: oVal.ToString()})
		case !inO && inT:
			adds = append(adds, PropValue{Prop: name, Value: tVal.ToString()})
		case oVal.ToString() != tVal.ToString():
			changes = append(changes, PropChange{Prop: name, Start: oVal.ToString(), End: tVal.ToString()})
		}
	}

	if len(adds) == 0 && len(removes) == 0 && len(changes) == 0 {
		return nil
	}
	return &ChangeProperties{Adds: adds, Removes: removes, Changes: changes}
}

func sortedUnion(a, b map[string]attr.Value) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var names []string
	for name := range a {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for name := range b {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
