package region

import "sync/atomic"

// largeRefillPolicy implements the Large allocator's refill behavior:
// rather than failing immediately, the Large allocator first asks the
// same free-chunk list the Small allocator maintains (via the same
// first-fit search, so there is only one free-list-search implementation
// in the package, not two), and only escalates to the Collector if that
// also comes up empty.
type largeRefillPolicy struct {
	small     *LinearAllocator
	list      *FreeChunkList
	largeIdx  *largeIndex
	collector Collector
	counters  *regionCounters
}

func (lp *largeRefillPolicy) handleAllocationFailure(la *LinearAllocator, size uintptr) (refillResult, error) {
	la.mu.Lock()
	defer la.mu.Unlock()
	la.fillUp()

	if addr, sz, ok := lp.popFreeChunk(size); ok {
		la.refill(addr, sz)
		atomic.AddUint64(&lp.counters.largeRefills, 1)
		return refillResult{retry: true}, nil
	}
	atomic.AddUint64(&lp.counters.collectorRuns, 1)
	if lp.collector.Collect(size) {
		return refillResult{retry: true}, nil
	}
	return refillResult{}, ErrOutOfMemory
}

func (lp *largeRefillPolicy) handleAllocationFailureAligned(la *LinearAllocator, size, alignment uintptr) (refillResult, error) {
	// See smallRefillPolicy.handleAllocationFailureAligned: alignmentGap
	// can add up to one further alignment increment, so the slack must
	// cover size+alignment+tinyCellSize, not just size+alignment.
	need := size + alignment + tinyCellSize

	la.mu.Lock()
	defer la.mu.Unlock()
	la.fillUp()

	if addr, sz, ok := lp.popFreeChunk(need); ok {
		la.refill(addr, sz)
		atomic.AddUint64(&lp.counters.largeRefills, 1)
		return refillResult{retry: true}, nil
	}
	atomic.AddUint64(&lp.counters.collectorRuns, 1)
	if lp.collector.Collect(need) {
		return refillResult{retry: true}, nil
	}
	return refillResult{}, ErrOutOfMemory
}

// popFreeChunk acquires the Small allocator's refill mutex — the one
// that owns the free-chunk list — for the duration of the lookup, since
// the Large policy is not itself the list's owner. A chunk found through
// the index is used only if it is still on the authoritative list; an
// index entry whose chunk has already left the list (for example, taken
// by the Small policy's first-fit walk) is dropped and the list walk
// decides instead.
func (lp *largeRefillPolicy) popFreeChunk(need uintptr) (Address, uintptr, bool) {
	lp.small.mu.Lock()
	defer lp.small.mu.Unlock()

	if lp.largeIdx != nil && lp.largeIdx.len() > 0 {
		if addr, sz, ok := lp.largeIdx.popAtLeast(need); ok {
			if _, onList := lp.list.Remove(addr); onList {
				return addr, sz, true
			}
		}
	}
	return lp.list.PopFirstFit(need)
}
