package region

import "sync/atomic"

// Stats is a point-in-time snapshot of allocator activity.
type Stats struct {
	TinyAllocs    uint64
	SmallAllocs   uint64
	LargeAllocs   uint64
	TinyRefills   uint64
	SmallRefills  uint64
	LargeRefills  uint64
	CollectorRuns uint64
	FreeChunks    int
}

// regionCounters holds the atomic counters RegionManager updates as
// allocations and refills happen. Kept separate from the public Stats
// type so the hot path only ever touches plain atomic adds.
type regionCounters struct {
	tinyAllocs    uint64
	smallAllocs   uint64
	largeAllocs   uint64
	tinyRefills   uint64
	smallRefills  uint64
	largeRefills  uint64
	collectorRuns uint64
}

func (c *regionCounters) snapshot(freeChunks int) Stats {
	return Stats{
		TinyAllocs:    atomic.LoadUint64(&c.tinyAllocs),
		SmallAllocs:   atomic.LoadUint64(&c.smallAllocs),
		LargeAllocs:   atomic.LoadUint64(&c.largeAllocs),
		TinyRefills:   atomic.LoadUint64(&c.tinyRefills),
		SmallRefills:  atomic.LoadUint64(&c.smallRefills),
		LargeRefills:  atomic.LoadUint64(&c.largeRefills),
		CollectorRuns: atomic.LoadUint64(&c.collectorRuns),
		FreeChunks:    freeChunks,
	}
}
