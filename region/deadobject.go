package region

// deadObjectTagBit marks a header word as belonging to a dead-object
// filler cell rather than a live object. Live-object header layout is
// owned by the (out-of-scope) type system; this package only needs to
// recognize its own fillers well enough to keep the region parseable, so
// a single reserved high bit on the size word is sufficient. An explicit
// tag bit rather than a sign bit, since this package also needs a
// distinct tag for free-chunk cells (see freeChunkTagBit in freelist.go).
const deadObjectTagBit = uint64(1) << 63

// fillDead writes a dead-object header covering [from, to) so that the
// range stays parseable: the single most pervasive correctness constraint
// in this package. Called from fillUp's refill-tail and allocateAligned's
// gap fill; dark matter is left to the external sweeper.
//
// The write is unconditional rather than special-cased for small gaps.
// It is safe because every caller is required to only produce gaps that
// are either zero or at least cellHeaderSize bytes (alignmentGap enforces
// this for the aligned path; refill-policy chunk sizes, bounded below by
// MinFreeChunkSize, enforce it for refill tails) — debugRegion asserts
// that contract here.
func fillDead(data []byte, from, to uintptr) {
	size := to - from
	if size == 0 {
		return
	}
	if debugRegion && size < cellHeaderSize {
		panic("region: fillDead gap smaller than a dead-object header")
	}
	writeWord(data, from, uint64(size)|deadObjectTagBit)
}

// readDeadObject reports the size of the dead-object cell starting at
// off, if any.
func readDeadObject(data []byte, off uintptr) (size uintptr, ok bool) {
	w := readWord(data, off)
	if w&deadObjectTagBit == 0 {
		return 0, false
	}
	return uintptr(w &^ deadObjectTagBit), true
}
