package attr

import "hash/maphash"

// testHashSeed is shared by every newTestHash call in this package's
// tests, so that two hashes built in the same test are directly
// comparable by Sum64.
var testHashSeed = maphash.MakeSeed()

// newTestHash returns a zero-value maphash.Hash with the shared test
// seed assigned, suitable for comparing two hash computations within
// a single test.
func newTestHash() maphash.Hash {
	var h maphash.Hash
	h.SetSeed(testHashSeed)
	return h
}
