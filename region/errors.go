package region

import "errors"

var (
	// ErrOutOfMemory is returned when the Collector runs and still cannot
	// satisfy a request; the only user-visible failure mode per the core's
	// contract (everything else either retries or is fatal).
	ErrOutOfMemory = errors.New("region: out of memory")

	// ErrMisalignedSize indicates a request size that is not a positive
	// multiple of the machine word size.
	ErrMisalignedSize = errors.New("region: size must be a positive multiple of the word size")

	// ErrRegionNotInitialized indicates an allocation was attempted against
	// a LinearAllocator that has never had initialize called on it (its
	// policy is still nil). A Clear'd-but-previously-initialized allocator
	// is distinct from this: it still has a policy and legitimately
	// refuses allocations only until its next refill.
	ErrRegionNotInitialized = errors.New("region: not initialized")

	// ErrRegionTooSmall indicates the committed region is smaller than the
	// tiny pool plus one minimum (4-word) free chunk, or that the
	// configured MinFreeChunkSize is below that 4-word floor.
	ErrRegionTooSmall = errors.New("region: committed region smaller than tiny pool")

	// ErrBadAlignment indicates an alignment argument that is not a power
	// of two.
	ErrBadAlignment = errors.New("region: alignment must be a power of two")
)
