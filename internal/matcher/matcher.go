// Package matcher assigns shared identifiers to origin/target node
// pairs across two parsed SVG trees, via a recursive priority-ordered
// pairing of their fingerprints. Its output drives internal/editscript:
// every matched pair becomes a potential change, every still-unmatched
// node becomes an add or a remove.
package matcher

import (
	"github.com/svgdiff/engine/internal/attr"
	"github.com/svgdiff/engine/internal/fingerprint"
	"github.com/svgdiff/engine/internal/idgen"
	"github.com/svgdiff/engine/internal/rules"
	"github.com/svgdiff/engine/internal/svgparse"
	"github.com/svgdiff/engine/internal/tree"
)

// State is one node's outcome after matching: either Matched, pairing
// this node with its counterpart on the other side, or not. Every
// node on both sides ends up with exactly one State, regardless of
// whether its ancestors matched, so that the origin tree can always be
// fully id-annotated for serialisation.
//
// OriginIndex/TargetIndex are -1 on the side that does not apply: a
// Matched state always has both; an Unmatched origin state has only
// OriginIndex; an Unmatched target state has only TargetIndex.
type State struct {
	Matched bool
	ID      string

	OriginIndex int
	TargetIndex int

	// NoChanges, SubtreeChanges and InternalChanges are only meaningful
	// when Matched: they are derived from the all, all_subtrees and
	// all_without_subtrees baseline digests of the two paired nodes.
	NoChanges       bool
	SubtreeChanges  bool
	InternalChanges bool
}

// Result is the per-index matching outcome for both trees, indexed
// directly by node index (Result.Origin[i] describes origin node i,
// Result.Target[j] describes target node j).
type Result struct {
	Origin []State
	Target []State
}

// Match pairs origin against target. originFP/targetFP must be
// fingerprint.Compute's output for the respective tree, computed under
// the same rule set. gen mints every identifier Match assigns; callers
// diffing a sequence of documents share one Generator across every
// adjacent pair, so ids stay unique across the whole output sequence.
func Match(origin, target *tree.Tree[svgparse.Tag], originFP, targetFP []fingerprint.Fingerprint, set *rules.Set, gen *idgen.Generator) Result {
	m := &matcherState{
		origin: origin, target: target,
		originFP: originFP, targetFP: targetFP,
		set: set, gen: gen,
		originStates: make([]State, origin.Len()),
		targetStates: make([]State, target.Len()),
		originDone:   make([]bool, origin.Len()),
		targetDone:   make([]bool, target.Len()),
	}
	m.matchPair(0, 0)
	return Result{Origin: m.originStates, Target: m.targetStates}
}

type matcherState struct {
	origin, target         *tree.Tree[svgparse.Tag]
	originFP, targetFP     []fingerprint.Fingerprint
	set                    *rules.Set
	gen                    *idgen.Generator
	originStates           []State
	targetStates           []State
	originDone, targetDone []bool
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

// matchPair records oIdx/tIdx as matched to each other, then recurses
// into their still-unmatched children. It is a programming error to
// call matchPair on a node either side has already matched.
func (m *matcherState) matchPair(oIdx, tIdx int) {
	if m.originDone[oIdx] {
		panic("matcher: origin node matched twice")
	}
	if m.targetDone[tIdx] {
		panic("matcher: target node matched twice")
	}

	oFP := m.originFP[oIdx]
	tFP := m.targetFP[tIdx]
	id := m.gen.Next(defaultID(m.origin.Node(oIdx)))

	state := State{
		Matched:         true,
		ID:              id,
		OriginIndex:     oIdx,
		TargetIndex:     tIdx,
		NoChanges:       oFP.All == tFP.All,
		SubtreeChanges:  oFP.AllSubtrees != tFP.AllSubtrees,
		InternalChanges: oFP.AllWithoutSubtrees != tFP.AllWithoutSubtrees,
	}
	m.originStates[oIdx] = state
	m.targetStates[tIdx] = state
	m.originDone[oIdx] = true
	m.targetDone[tIdx] = true

	if state.NoChanges {
		// Full match: the subtrees are interchangeable, so every
		// descendant pair is matched too, walked in lockstep document
		// order.
		m.matchIdenticalChildren(oIdx, tIdx)
		return
	}

	for _, ruleName := range m.set.Priorities() {
		for {
			oc, tc, ok := m.findFirstMatch(oIdx, tIdx, ruleName)
			if !ok {
				break
			}
			m.matchPair(oc, tc)
		}
	}

	for c := range m.origin.Children(oIdx) {
		if !m.originDone[c] {
			m.markUnmatchedOrigin(c)
		}
	}
	for c := range m.target.Children(tIdx) {
		if !m.targetDone[c] {
			m.markUnmatchedTarget(c)
		}
	}
}

// matchIdenticalChildren walks the children of a full-match pair in
// lockstep document order, matching each corresponding pair. A full
// match (all(O)==all(T)) implies both sides have the same child count
// and every child pair is itself a full match, since the all digest
// folds in every descendant.
func (m *matcherState) matchIdenticalChildren(oIdx, tIdx int) {
	var oChildren, tChildren []int
	for c := range m.origin.Children(oIdx) {
		oChildren = append(oChildren, c)
	}
	for c := range m.target.Children(tIdx) {
		tChildren = append(tChildren, c)
	}
	if len(oChildren) != len(tChildren) {
		panic("matcher: full-match pair with unequal child counts")
	}
	for i := range oChildren {
		m.matchPair(oChildren[i], tChildren[i])
	}
}

// findFirstMatch scans unmatched children of oIdx against unmatched
// children of tIdx, in document order on both sides, for the first
// pair whose digest under ruleName is present and equal on both sides.
func (m *matcherState) findFirstMatch(oIdx, tIdx int, ruleName string) (oc, tc int, ok bool) {
	for oc := range m.origin.Children(oIdx) {
		if m.originDone[oc] {
			continue
		}
		od := m.originFP[oc].ByRule[ruleName]
		if !od.Present {
			continue
		}
		for tc := range m.target.Children(tIdx) {
			if m.targetDone[tc] {
				continue
			}
			td := m.targetFP[tc].ByRule[ruleName]
			if !td.Present {
				continue
			}
			if od.Value == td.Value {
				return oc, tc, true
			}
		}
	}
	return 0, 0, false
}

// markUnmatchedOrigin records c, and every one of its descendants, as
// Unmatched: a node never entered by matchPair can never contain a
// matched descendant either, since matching only ever recurses from an
// already-matched pair. Every one still gets an id, since the whole
// origin tree is serialised (with ids) as the diff's starting point,
// including the subtrees it is about to remove.
func (m *matcherState) markUnmatchedOrigin(c int) {
	m.originStates[c] = State{
		ID:          m.gen.Next(defaultID(m.origin.Node(c))),
		OriginIndex: c,
		TargetIndex: -1,
	}
	m.originDone[c] = true
	for gc := range m.origin.Children(c) {
		m.markUnmatchedOrigin(gc)
	}
}

// markUnmatchedTarget records c, and every one of its descendants, as
// Unmatched. Unlike the origin side, no id is assigned here: an added
// subtree is only ever serialised once, in full, when
// internal/editscript emits its Add step, and ids for it (including
// every descendant) are minted there.
func (m *matcherState) markUnmatchedTarget(c int) {
	m.targetStates[c] = State{
		OriginIndex: -1,
		TargetIndex: c,
	}
	m.targetDone[c] = true
	for gc := range m.target.Children(c) {
		m.markUnmatchedTarget(gc)
	}
}
