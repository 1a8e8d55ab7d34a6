// Package region implements the free-space allocator core of a managed-
// runtime heap: size-segregated bump-pointer allocators (tiny, small,
// large) backed by a free-chunk list that a sweeper threads through the
// heap between collections.
//
// # Overview
//
// A RegionManager owns one contiguous committed memory region and three
// LinearAllocators. Mutators call Allocate/AllocateTiny/AllocateLarge,
// which take a wait-free fast path (a single compare-and-swap on a bump
// pointer) and fall back to a per-allocator RefillPolicy only on miss.
// Refill policies run under a mutex, splice chunks off a free-chunk list
// discovered by an external sweeper, and escalate to a Collector when the
// free-chunk list is exhausted.
//
// # Parseability
//
// The committed region must, at every suspension point, be walkable from
// its base as a sequence of well-formed cells — live objects, dead-object
// fillers, or free-chunk entries — with no gaps and no overlaps. Every
// operation that leaves a gap (a refill tail, alignment padding, or a
// dark-matter span too small to track) writes a dead-object header via
// fillDead so the invariant holds uniformly.
//
// # Non-goals
//
// Compaction, generational policy, NUMA awareness, lock-free free-list
// surgery, and returning memory to the operating system are explicitly
// out of scope. This package is scaffolding for a mark-sweep-evacuate
// collector, not the collector itself.
//
// # Thread safety
//
// Allocate/AllocateTiny/AllocateLarge are safe for concurrent use by many
// goroutines. RegionManager.Stats is safe to call concurrently with
// allocation. Sweeper/Collector callbacks run with the contract that no
// mutator is between start and end of any allocator (see Collector).
package region
