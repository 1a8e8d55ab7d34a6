package region

// Collector is the external tracing collector this core delegates to
// when the Small (or Large) refill policy exhausts the free-chunk list.
//
// Collect returns true if, after running, a chunk of at least
// requestedSize bytes is available on the free-chunk list (installed via
// Sweeper.Install below). The core re-enters its fast path on true; on
// false it raises ErrOutOfMemory.
//
// Before invoking Collect, the refill policy calls fillUp on its own
// allocator and holds that allocator's refill mutex, so the calling
// allocator's mark is pinned to its end. The other allocators are not
// filled up: their marks and chunks are left as they are.
type Collector interface {
	Collect(requestedSize uintptr) bool
}

// Sweeper is the external collaborator that rebuilds the free-chunk list
// after a collection cycle. The Region Manager never scans for free
// space itself; it only ever consumes a head address the sweeper hands
// it.
type Sweeper interface {
	// Sweep walks the committed region (by whatever means the collector's
	// own bookkeeping provides) and returns the head address of a freshly
	// built free-chunk list, with (next, size) already written into the
	// trailing two words of every free range and a free-chunk size header
	// (the size tagged with freeChunkTagBit) in its leading word, the
	// layout FreeChunkList reads.
	Sweep() Address
}

// NoCollector is a Collector that always reports failure, for use before
// a real tracing collector exists. Every refill path above it still
// functions; it simply means exhaustion is always fatal (ErrOutOfMemory).
type NoCollector struct{}

// Collect always returns false.
func (NoCollector) Collect(uintptr) bool { return false }
