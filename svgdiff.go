// Package svgdiff is the root entry point of the structural SVG diff
// engine: parse two (or more) documents, fingerprint and match their
// trees, and emit a typed edit script plus an id-annotated origin
// document for each adjacent pair.
//
// Each exported function is a pure function of its inputs, with no
// shared mutable state and no suspension points: a caller diffing a
// sequence of documents gets back exactly as many results as there
// are adjacent pairs, computed synchronously on the calling
// goroutine.
package svgdiff

import (
	"errors"

	"github.com/svgdiff/engine/internal/attr"
	"github.com/svgdiff/engine/internal/editscript"
	"github.com/svgdiff/engine/internal/fingerprint"
	"github.com/svgdiff/engine/internal/idgen"
	"github.com/svgdiff/engine/internal/matcher"
	"github.com/svgdiff/engine/internal/rules"
	"github.com/svgdiff/engine/internal/svgparse"
	"github.com/svgdiff/engine/internal/tree"
)

// ErrTooFewDocuments reports that DiffSequence was called with fewer
// than two documents, so there is no adjacent pair to diff.
var ErrTooFewDocuments = errors.New("svgdiff: need at least two documents")

// Result is the outcome of diffing one adjacent pair of documents.
type Result struct {
	// OriginSVG is the origin document, rewritten so that every
	// surviving and every about-to-be-removed element carries its
	// assigned matching identifier as an "id" attribute.
	OriginSVG string

	// Script is the typed edit script that transforms OriginSVG into
	// the target document, in the fixed add/remove/move/change phase
	// order.
	Script []editscript.Step
}

// Diff parses originRaw and targetRaw, matches their trees under set
// (rules.Default() if nil), and returns the resulting Result. gen
// mints every identifier the match and edit-script phases assign (a
// fresh one if nil); a caller diffing more than one pair should share
// one Generator across every Diff call so that ids stay unique across
// the whole output sequence (DiffSequence does this automatically).
func Diff(originRaw, targetRaw string, set *rules.Set, gen *idgen.Generator) (Result, error) {
	if set == nil {
		set = rules.Default()
	}
	if gen == nil {
		gen = idgen.New()
	}

	originTree, err := svgparse.Parse(originRaw)
	if err != nil {
		return Result{}, err
	}
	targetTree, err := svgparse.Parse(targetRaw)
	if err != nil {
		return Result{}, err
	}

	return diffTrees(originTree, targetTree, set, gen, nil), nil
}

// diffTrees runs the fingerprint/match/edit-script pipeline over an
// already-parsed pair. If viewBoxOverride is non-nil, the origin
// tree's root viewBox is rewritten to it before final serialisation,
// after fingerprinting and matching have already run against the
// tree's real viewBox, so the override only affects the emitted
// OriginSVG string, never the diff itself.
func diffTrees(originTree, targetTree *tree.Tree[svgparse.Tag], set *rules.Set, gen *idgen.Generator, viewBoxOverride *attr.ViewBox) Result {
	originFP := fingerprint.Compute(originTree, set)
	targetFP := fingerprint.Compute(targetTree, set)

	res := matcher.Match(originTree, targetTree, originFP, targetFP, set, gen)
	steps := editscript.Build(originTree, targetTree, res, gen)

	if viewBoxOverride != nil {
		overrideRootViewBox(originTree, *viewBoxOverride)
	}

	ids := make([]string, originTree.Len())
	for i, st := range res.Origin {
		ids[i] = st.ID
	}
	originSVG := svgparse.Serialize(originTree, 0, func(idx int) (string, bool) {
		id := ids[idx]
		return id, id != ""
	})

	return Result{OriginSVG: originSVG, Script: steps}
}

func overrideRootViewBox(tr *tree.Tree[svgparse.Tag], union attr.ViewBox) {
	root := tr.Node(0)
	args := make(map[string]attr.Value, len(root.Args)+1)
	for k, v := range root.Args {
		args[k] = v
	}
	args["viewBox"] = union
	root.Args = args
	tr.SetNode(0, root)
}

// DiffSequence parses every document in docs (which must contain at
// least two) and produces one Result per adjacent pair, sharing a
// single identifier generator so ids are unique across the whole
// output. A parse failure on any document aborts the whole batch;
// there are no partial results.
//
// Every returned Result.OriginSVG additionally has its root viewBox
// attribute rewritten to the bounding union of every input document's
// own viewBox (documents without one are ignored, and the override is
// skipped entirely if no document has one), so an animation layer can
// play every frame of the sequence in one shared coordinate system.
func DiffSequence(docs []string, set *rules.Set) ([]Result, error) {
	if len(docs) < 2 {
		return nil, ErrTooFewDocuments
	}
	if set == nil {
		set = rules.Default()
	}

	trees := make([]*tree.Tree[svgparse.Tag], len(docs))
	for i, doc := range docs {
		t, err := svgparse.Parse(doc)
		if err != nil {
			return nil, err
		}
		trees[i] = t
	}

	var override *attr.ViewBox
	if union, ok := unionViewBox(trees); ok {
		override = &union
	}

	gen := idgen.New()
	results := make([]Result, len(trees)-1)
	for i := 0; i < len(trees)-1; i++ {
		results[i] = diffTrees(trees[i], trees[i+1], set, gen, override)
	}
	return results, nil
}

// unionViewBox computes the bounding box spanning every tree's root
// viewBox attribute, skipping any tree whose root has none. ok is
// false if no tree in trees has one.
func unionViewBox(trees []*tree.Tree[svgparse.Tag]) (union attr.ViewBox, ok bool) {
	first := true
	var minX, minY, maxX, maxY float64

	for _, t := range trees {
		root := t.Node(0)
		v, present := root.Args["viewBox"]
		if !present {
			continue
		}
		vb, isVB := v.(attr.ViewBox)
		if !isVB {
			continue
		}
		x0, y0 := vb.MinX, vb.MinY
		x1, y1 := vb.MinX+vb.Width, vb.MinY+vb.Height
		if first {
			minX, minY, maxX, maxY = x0, y0, x1, y1
			first = false
			continue
		}
		minX = min(minX, x0)
		minY = min(minY, y0)
		maxX = max(maxX, x1)
		maxY = max(maxY, y1)
	}

	if first {
		return attr.ViewBox{}, false
	}
	return attr.ViewBox{MinX: minX, MinY: minY, Width: maxX - minX, Height: maxY - minY}, true
}
