package region

import "container/heap"

// largeChunk is one entry in the optional large-object index: a free
// chunk address/size pair, tracked alongside (never instead of) the
// authoritative FreeChunkList.
type largeChunk struct {
	addr Address
	size uintptr
}

// largeChunkHeap is a min-heap over largeChunk keyed by size, giving the
// Large refill policy an O(log n) "smallest chunk that still fits"
// lookup instead of a linear walk when many large free chunks exist.
type largeChunkHeap []largeChunk

func (h largeChunkHeap) Len() int           { return len(h) }
func (h largeChunkHeap) Less(i, j int) bool { return h[i].size < h[j].size }
func (h largeChunkHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *largeChunkHeap) Push(x any)        { *h = append(*h, x.(largeChunk)) }
func (h *largeChunkHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// largeIndex is a supplemental large-chunk index. It is purely a
// performance accelerator: every entry it holds must also be present in,
// or have been removed from, the authoritative FreeChunkList by its
// owner (largeRefillPolicy), so region correctness never depends on
// whether this index is populated.
type largeIndex struct {
	h largeChunkHeap
}

func newLargeIndex() *largeIndex {
	li := &largeIndex{}
	heap.Init(&li.h)
	return li
}

// add records a chunk as available. Callers must only add a chunk once
// per time it is free.
func (li *largeIndex) add(addr Address, size uintptr) {
	heap.Push(&li.h, largeChunk{addr: addr, size: size})
}

// popAtLeast removes and returns the smallest tracked chunk that is at
// least need bytes. Smaller entries popped along the way are pushed back
// before it returns, so they stay tracked whether or not a fit is found.
func (li *largeIndex) popAtLeast(need uintptr) (Address, uintptr, bool) {
	var skipped []largeChunk
	var found *largeChunk
	for li.h.Len() > 0 {
		c := heap.Pop(&li.h).(largeChunk)
		if c.size >= need {
			found = &c
			break
		}
		skipped = append(skipped, c)
	}
	for _, c := range skipped {
		heap.Push(&li.h, c)
	}
	if found == nil {
		return 0, 0, false
	}
	return found.addr, found.size, true
}

func (li *largeIndex) len() int { return li.h.Len() }

// reset discards every tracked entry in place. Used when an external
// sweeper installs a fresh free-chunk list: the policies holding a
// pointer to this index must keep seeing the same instance, so the
// index is cleared rather than replaced.
func (li *largeIndex) reset() {
	li.h = li.h[:0]
}
