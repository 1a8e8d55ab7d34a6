package region

import "sync/atomic"

// smallRefillPolicy implements ceiling delegation to Large, a first-fit
// scan over the shared free-chunk list on miss, and Collector escalation
// when the list is empty. There is no splitting — a chunk larger than
// required is consumed whole, per the explicit tie-break rule.
//
// The Small allocator's own refill mutex (la.mu, where la is the Small
// LinearAllocator) doubles as the free-chunk list's mutex: the list is
// mutated only under the Small allocator's refill mutex, and since this
// policy IS the Small allocator's policy, every method below is only
// ever entered already holding that lock by the time it touches the
// list. largeRefillPolicy, which also needs to touch the shared list,
// acquires this same mutex explicitly (see large_policy.go).
type smallRefillPolicy struct {
	large     *LinearAllocator
	list      *FreeChunkList
	largeIdx  *largeIndex
	collector Collector
	counters  *regionCounters
}

func (sp *smallRefillPolicy) handleAllocationFailure(la *LinearAllocator, size uintptr) (refillResult, error) {
	if size > la.ceiling {
		addr, err := sp.large.allocate(size)
		if err != nil {
			return refillResult{}, err
		}
		return refillResult{addr: addr}, nil
	}

	la.mu.Lock()
	defer la.mu.Unlock()
	la.fillUp()

	if addr, sz, ok := sp.list.PopFirstFit(size); ok {
		la.refill(addr, sz)
		atomic.AddUint64(&sp.counters.smallRefills, 1)
		return refillResult{retry: true}, nil
	}
	atomic.AddUint64(&sp.counters.collectorRuns, 1)
	if sp.collector.Collect(size) {
		return refillResult{retry: true}, nil
	}
	return refillResult{}, ErrOutOfMemory
}

func (sp *smallRefillPolicy) handleAllocationFailureAligned(la *LinearAllocator, size, alignment uintptr) (refillResult, error) {
	// Request extra slack so the post-refill aligned bump (which applies
	// alignmentGap against whatever address the fresh chunk starts at)
	// always fits inside the chunk handed back, instead of immediately
	// missing again. alignmentGap can itself bump the gap by one further
	// alignment increment when the naive gap is non-zero but smaller than
	// tinyCellSize (align.go), so the worst case the post-refill bump can
	// consume is size+alignment+tinyCellSize-1 bytes, not size+alignment.
	need := size + alignment + tinyCellSize
	if need > la.ceiling {
		addr, err := sp.large.allocateAligned(size, alignment)
		if err != nil {
			return refillResult{}, err
		}
		return refillResult{addr: addr}, nil
	}

	la.mu.Lock()
	defer la.mu.Unlock()
	la.fillUp()

	if addr, sz, ok := sp.list.PopFirstFit(need); ok {
		la.refill(addr, sz)
		atomic.AddUint64(&sp.counters.smallRefills, 1)
		return refillResult{retry: true}, nil
	}
	atomic.AddUint64(&sp.counters.collectorRuns, 1)
	if sp.collector.Collect(need) {
		return refillResult{retry: true}, nil
	}
	return refillResult{}, ErrOutOfMemory
}
