package region

// Address is a raw offset into the committed region, measured from the
// region base. It is intentionally NOT a typed/managed reference: the
// free-chunk list is represented with integer/opaque-address types so
// that a tracing collector walking object references never follows
// these links and never mistakes a free chunk for a live object.
type Address uintptr

// freeChunkTagBit marks a cell's leading header word as a free-chunk
// cell rather than a dead-object filler (deadObjectTagBit) or a live
// object (untagged, owned by the external type system). See
// deadobject.go for the sibling tag.
const freeChunkTagBit = uint64(1) << 62

// FreeChunkList is the free-chunk list threaded through the heap by the
// sweeper. Each entry occupies a contiguous range of at least
// MinFreeChunkSize bytes; its leading word is a tagged size header (for
// region walkability) and its trailing two words hold
// (next-chunk-address, size-in-bytes).
//
// A FreeChunkList does not synchronize itself: the free-chunk list head
// is mutated only under the Small allocator's refill mutex. Callers
// (smallRefillPolicy, largeRefillPolicy) are required to hold that mutex
// for every method below.
type FreeChunkList struct {
	data    []byte
	head    Address
	minSize uintptr
}

// newFreeChunkList creates an empty free-chunk list over the region's
// backing storage. minSize is the configured MinFreeChunkSize (already
// validated by RegionOptions.withDefaults to be at least the absolute
// minFreeChunkWords floor) that PushFront asserts against in debug
// builds.
func newFreeChunkList(data []byte, minSize uintptr) *FreeChunkList {
	return &FreeChunkList{data: data, minSize: minSize}
}

// Head returns the current head of the list (0 if empty). Exposed so a
// Sweeper can hand the Region Manager a pre-built list: the Region
// Manager never scans; it only consumes the head pointer and walks
// pointer-chased from there.
func (l *FreeChunkList) Head() Address {
	return l.head
}

// Install replaces the entire list with one built by an external sweeper,
// identified only by its head address: after a collection cycle the
// sweeper writes each free range in the layout writeEntry produces (a
// tagged size header in the leading word, (next, size) in the trailing
// two words) and hands over just the head.
func (l *FreeChunkList) Install(head Address) {
	l.head = head
}

// writeEntry writes one free-chunk cell covering [addr, addr+size) with
// the given next pointer, and links it as described above.
func (l *FreeChunkList) writeEntry(addr Address, size uintptr, next Address) {
	off := uintptr(addr)
	writeWord(l.data, off, uint64(size)|freeChunkTagBit)
	writeWord(l.data, off+size-2*wordSize, uint64(next))
	writeWord(l.data, off+size-wordSize, uint64(size))
}

func (l *FreeChunkList) readSize(addr Address) uintptr {
	w := readWord(l.data, uintptr(addr))
	return uintptr(w &^ freeChunkTagBit)
}

func (l *FreeChunkList) readNext(addr Address, size uintptr) Address {
	off := uintptr(addr)
	return Address(readWord(l.data, off+size-2*wordSize))
}

// PushFront prepends a chunk of size bytes starting at addr to the list.
// Used by a Collector/Sweeper integration that discovers chunks
// incrementally, and by tests constructing list fixtures.
func (l *FreeChunkList) PushFront(addr Address, size uintptr) {
	assertInvariant(size >= l.effectiveMinSize(), "free chunk below minimum size")
	l.writeEntry(addr, size, l.head)
	l.head = addr
}

// effectiveMinSize is the floor PushFront enforces: the configured
// MinFreeChunkSize if set, otherwise the absolute 4-word floor every
// free chunk must meet regardless of configuration (spec §3).
func (l *FreeChunkList) effectiveMinSize() uintptr {
	if l.minSize > minFreeChunkWords*wordSize {
		return l.minSize
	}
	return minFreeChunkWords * wordSize
}

// minFreeChunkWords is the absolute floor (4 machine words) required
// regardless of the configured MinFreeChunkSize.
const minFreeChunkWords = 4

// PopFirstFit walks the list from head looking for the first chunk whose
// size is at least need, unlinks it, and returns it. Ties are broken
// first-fit; there is no splitting, so a found chunk larger than need is
// returned and consumed whole — its unused tail is only recovered by the
// next collection cycle.
//
// Unlinking repairs the previous link (including the list head pointer
// itself, when the match is the first entry) in one step; the found
// chunk itself is handed to the caller's allocator and is no longer
// free-chunk-list state, so there is no second insertion: the found
// chunk is not moved to the front of the list, since that would leave it
// on the list and inside an allocator's [start, end) at the same time.
func (l *FreeChunkList) PopFirstFit(need uintptr) (Address, uintptr, bool) {
	var prev Address
	cur := l.head
	for cur != 0 {
		size := l.readSize(cur)
		next := l.readNext(cur, size)
		if size >= need {
			if prev == 0 {
				l.head = next
			} else {
				l.relink(prev, next)
			}
			return cur, size, true
		}
		prev = cur
		cur = next
	}
	return 0, 0, false
}

// relink rewrites prev's next-chunk-address word to point at next,
// without disturbing prev's size word.
func (l *FreeChunkList) relink(prev, next Address) {
	size := l.readSize(prev)
	off := uintptr(prev)
	writeWord(l.data, off+size-2*wordSize, uint64(next))
}

// Len walks the list and counts its entries. O(n); intended for
// diagnostics and tests, not the allocation fast or slow path.
func (l *FreeChunkList) Len() int {
	n := 0
	cur := l.head
	for cur != 0 {
		size := l.readSize(cur)
		cur = l.readNext(cur, size)
		n++
	}
	return n
}

// Remove unlinks the chunk at addr, wherever it is in the list. Used by
// largeRefillPolicy to keep the authoritative list in sync when it
// consumes a chunk located via the supplemental largeIndex. O(n);
// acceptable off the allocation fast path.
func (l *FreeChunkList) Remove(addr Address) (uintptr, bool) {
	var prev Address
	cur := l.head
	for cur != 0 {
		size := l.readSize(cur)
		next := l.readNext(cur, size)
		if cur == addr {
			if prev == 0 {
				l.head = next
			} else {
				l.relink(prev, next)
			}
			return size, true
		}
		prev = cur
		cur = next
	}
	return 0, false
}

// Entries returns every (address, size) pair currently in the list. O(n);
// used only when an external sweeper installs a fresh list and the
// Region Manager wants to seed the supplemental largeIndex.
func (l *FreeChunkList) Entries() []largeChunk {
	var out []largeChunk
	cur := l.head
	for cur != 0 {
		size := l.readSize(cur)
		out = append(out, largeChunk{addr: cur, size: size})
		cur = l.readNext(cur, size)
	}
	return out
}
