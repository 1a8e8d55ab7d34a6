package region

import "sync/atomic"

// tinyRefillPolicy implements the Tiny allocator's refill behavior: it
// serves only requests of exactly the tiny-cell size, refilling itself
// from a fixed 1KiB, 1KiB-aligned block carved out of the Small
// allocator.
type tinyRefillPolicy struct {
	small    *LinearAllocator
	counters *regionCounters
}

func (tp *tinyRefillPolicy) handleAllocationFailure(la *LinearAllocator, size uintptr) (refillResult, error) {
	if size != tinyCellSize {
		if debugRegion {
			panic("region: tiny allocator received a non-tiny-cell request")
		}
		return refillResult{}, ErrMisalignedSize
	}

	la.mu.Lock()
	defer la.mu.Unlock()
	la.fillUp()
	assertInvariant(la.remaining() == 0, "tiny allocator had usable space left at refill")

	block, err := tp.small.allocateAligned(tinyPoolSize, tinyPoolSize)
	if err != nil {
		// Should not occur: the Small allocator backs the entire region,
		// and a 1KiB block is tiny by its own standards. It only fails to
		// exist at all if the region itself is exhausted and the
		// Collector has already failed.
		panic("region: tiny refill could not obtain 1KiB from small allocator: " + err.Error())
	}
	la.refill(block, tinyPoolSize)
	atomic.AddUint64(&tp.counters.tinyRefills, 1)
	return refillResult{retry: true}, nil
}

func (tp *tinyRefillPolicy) handleAllocationFailureAligned(la *LinearAllocator, size, alignment uintptr) (refillResult, error) {
	// The Tiny allocator only ever serves exactly-tinyCellSize requests;
	// an "aligned" tiny request carries no distinct meaning since every
	// tiny cell is already word-aligned by construction.
	_ = alignment
	return tp.handleAllocationFailure(la, size)
}
