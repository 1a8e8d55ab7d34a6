package region

import "sync/atomic"

// RegionManager owns one contiguous committed memory region and the three
// size-segregated LinearAllocators (tiny, small, large) that carve it up.
// It is the only type application code constructs directly; everything
// else in this package is reached through it or through the Collector it
// is configured with.
type RegionManager struct {
	data []byte

	// owned is true only when data was obtained from reserveMemory (via
	// NewRegion), so Close knows it is safe to hand the slice back to
	// releaseMemory. A WrapRegion-supplied slice was never returned by
	// the platform's reserve call (e.g. unix.Mmap), so releasing it the
	// same way would be unsafe.
	owned bool

	opts RegionOptions

	tiny  LinearAllocator
	small LinearAllocator
	large LinearAllocator

	list     *FreeChunkList
	largeIdx *largeIndex

	counters regionCounters
}

// NewRegion reserves a committed region of exactly size bytes (via the
// platform's reserveMemory) and initializes it: per §3/§4.5, the region
// is partitioned at init time into the 1KiB tiny pool followed by the
// remainder, which becomes the Small allocator's first chunk. Large
// starts empty — it only ever owns chunks handed to it by a refill, so
// its very first allocation always goes through a refill, delegated up
// from Small or obtained from the free-chunk list.
func NewRegion(size uintptr, opts RegionOptions) (*RegionManager, error) {
	resolved, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if size < tinyPoolSize+minFreeChunkWords*wordSize {
		return nil, ErrRegionTooSmall
	}
	data, err := reserveMemory(size)
	if err != nil {
		return nil, err
	}
	mgr, err := initRegion(data, resolved)
	if err != nil {
		return nil, err
	}
	mgr.owned = true
	return mgr, nil
}

// WrapRegion initializes a RegionManager over caller-supplied backing
// storage instead of reserving fresh memory. Used by tests and by hosts
// that manage their own mmap lifecycle. The caller retains ownership of
// data's lifetime; Close is a no-op for a RegionManager built this way.
func WrapRegion(data []byte, opts RegionOptions) (*RegionManager, error) {
	resolved, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if uintptr(len(data)) < tinyPoolSize+minFreeChunkWords*wordSize {
		return nil, ErrRegionTooSmall
	}
	return initRegion(data, resolved)
}

func initRegion(data []byte, opts RegionOptions) (*RegionManager, error) {
	mgr := &RegionManager{
		data:     data,
		opts:     opts,
		list:     newFreeChunkList(data, opts.MinFreeChunkSize),
		largeIdx: newLargeIndex(),
	}

	committed := uintptr(len(data))

	tp := &tinyRefillPolicy{small: &mgr.small, counters: &mgr.counters}
	sp := &smallRefillPolicy{large: &mgr.large, list: mgr.list, largeIdx: mgr.largeIdx, collector: opts.Collector, counters: &mgr.counters}
	lp := &largeRefillPolicy{small: &mgr.small, list: mgr.list, largeIdx: mgr.largeIdx, collector: opts.Collector, counters: &mgr.counters}

	// Per §4.5/§3: the region is partitioned at init time into the 1KiB
	// tiny pool followed by the remainder, not carved lazily on first
	// tiny allocation — so the tiny pool is always the first tinyPoolSize
	// bytes of the committed region regardless of what Small has already
	// handed out by the time AllocateTiny is first called.
	mgr.tiny.initialize(mgr, "tiny", 0, tinyPoolSize, 0, tp)
	mgr.small.initialize(mgr, "small", tinyPoolSize, committed, opts.LargeObjectsMinSize, sp)
	mgr.large.initialize(mgr, "large", committed, committed, 0, lp)

	debugLogf("initialized, committed=%d tinyPool=%d", committed, tinyPoolSize)
	return mgr, nil
}

// Close releases the region's backing storage back to the platform via
// releaseMemory. Only meaningful for a RegionManager obtained from
// NewRegion: releasing memory WrapRegion never reserved itself would be
// unsafe (releaseMemory's unix implementation calls unix.Munmap, which
// requires its argument to have come from unix.Mmap), so Close no-ops
// for a wrapped region and leaves that storage's lifetime to its caller.
func (m *RegionManager) Close() error {
	if !m.owned {
		return nil
	}
	return releaseMemory(m.data)
}

// Allocate serves a request through the Small allocator if size does not
// exceed the configured ceiling, or through the Large allocator otherwise.
// size must be a positive multiple of the word size.
func (m *RegionManager) Allocate(size uintptr) (Address, error) {
	if size > m.opts.LargeObjectsMinSize {
		addr, err := m.large.allocate(size)
		if err == nil {
			atomic.AddUint64(&m.counters.largeAllocs, 1)
		}
		return addr, err
	}
	addr, err := m.small.allocate(size)
	if err == nil {
		atomic.AddUint64(&m.counters.smallAllocs, 1)
	}
	return addr, err
}

// AllocateAligned is the aligned counterpart to Allocate.
func (m *RegionManager) AllocateAligned(size, alignment uintptr) (Address, error) {
	if size > m.opts.LargeObjectsMinSize {
		addr, err := m.large.allocateAligned(size, alignment)
		if err == nil {
			atomic.AddUint64(&m.counters.largeAllocs, 1)
		}
		return addr, err
	}
	addr, err := m.small.allocateAligned(size, alignment)
	if err == nil {
		atomic.AddUint64(&m.counters.smallAllocs, 1)
	}
	return addr, err
}

// AllocateTiny serves a single tiny-cell-sized allocation from the Tiny
// allocator.
func (m *RegionManager) AllocateTiny() (Address, error) {
	addr, err := m.tiny.allocate(tinyCellSize)
	if err == nil {
		atomic.AddUint64(&m.counters.tinyAllocs, 1)
	}
	return addr, err
}

// AllocateLarge serves a request directly through the Large allocator,
// bypassing the Small allocator's ceiling check. Used by callers that
// already know a request belongs in the Large allocator (e.g. a sweeper
// reseeding after a collection).
func (m *RegionManager) AllocateLarge(size uintptr) (Address, error) {
	addr, err := m.large.allocate(size)
	if err == nil {
		atomic.AddUint64(&m.counters.largeAllocs, 1)
	}
	return addr, err
}

// InstallFreeChunks replaces the free-chunk list's head with one built by
// an external Sweeper, and reseeds the supplemental largeIndex from it.
// Must be called with every mutator quiesced (the same contract Collector
// operates under).
func (m *RegionManager) InstallFreeChunks(head Address) {
	m.list.Install(head)
	m.largeIdx.reset()
	for _, c := range m.list.Entries() {
		if c.size >= m.opts.LargeObjectsMinSize {
			m.largeIdx.add(c.addr, c.size)
		}
	}
}

// Data exposes the region's backing storage. Intended for a Sweeper or
// Collector implementation that needs to walk live/dead/free cells
// directly; ordinary allocation never needs it.
func (m *RegionManager) Data() []byte {
	return m.data
}

// ReadDeadOrFree returns the size and kind of the cell starting at addr,
// for diagnostics and sweeper implementations. ok is false if addr does
// not hold a recognizable dead-object or free-chunk header (i.e. it is a
// live object, whose layout this package does not own).
func (m *RegionManager) ReadDeadOrFree(addr Address) (size uintptr, isFree bool, ok bool) {
	off := uintptr(addr)
	if sz, isDead := readDeadObject(m.data, off); isDead {
		return sz, false, true
	}
	w := readWord(m.data, off)
	if w&freeChunkTagBit != 0 {
		return uintptr(w &^ freeChunkTagBit), true, true
	}
	return 0, false, false
}

// Stats returns a snapshot of allocation and refill counters, plus the
// current length of the free-chunk list. The list is walked under the
// Small allocator's refill mutex, which owns it, so Stats waits while a
// Small refill (including a Collector run started from one) is in
// progress.
func (m *RegionManager) Stats() Stats {
	m.small.mu.Lock()
	freeChunks := m.list.Len()
	m.small.mu.Unlock()
	return m.counters.snapshot(freeChunks)
}
