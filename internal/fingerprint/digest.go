// Package fingerprint computes, for every node of a parsed SVG tree,
// a 64-bit digest per matching rule. Two nodes digest equal under a
// rule exactly when internal/rules considers them interchangeable
// under that rule, which is what internal/matcher pairs on.
package fingerprint

import (
	"hash/maphash"
	"strconv"
)

// hashSeed is shared by every Hash built in this process, so that
// digests computed from two separate documents (an origin and a
// target, each folded independently) are directly comparable. A fresh
// seed per process is fine: nothing persists a digest across runs, it
// only ever compares digests computed within the same comparison.
var hashSeed = maphash.MakeSeed()

func newHash() maphash.Hash {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	return h
}

// Digest is one rule's fingerprint contribution at a single node.
// Present is false when the rule does not apply at this node at all
// (wrong tag, or a required sibling rule digest is itself absent),
// distinct from a present digest that happens to equal another node's.
type Digest struct {
	Value   uint64
	Present bool
}

func writeDigest(h *maphash.Hash, d uint64) {
	h.WriteString(strconv.FormatUint(d, 16))
}
