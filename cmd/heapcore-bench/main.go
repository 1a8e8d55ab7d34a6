// Command heapcore-bench hammers a RegionManager from N goroutines and
// prints a scenario-style summary: total allocations served, refill
// counts per size class, and whether any goroutine observed an
// overlapping address.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/joshuapare/heapcore/region"
)

func main() {
	regionSize := flag.Uint64("region-size", 64<<20, "bytes reserved for the region")
	goroutines := flag.Int("goroutines", 8, "number of concurrent allocating goroutines")
	perGoroutine := flag.Int("per-goroutine", 10000, "allocations performed by each goroutine")
	largeEvery := flag.Int("large-every", 50, "emit one large allocation every N small ones (0 disables)")
	tinyEvery := flag.Int("tiny-every", 10, "emit one tiny allocation every N small ones (0 disables)")
	flag.Parse()

	mgr, err := region.NewRegion(uintptr(*regionSize), region.RegionOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "heapcore-bench: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Close()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		seen     = make(map[region.Address]bool)
		overlaps int
		failures int
	)

	for g := 0; g < *goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			local := make([]region.Address, 0, *perGoroutine)
			for i := 0; i < *perGoroutine; i++ {
				addr, err := allocateOne(mgr, i, *largeEvery, *tinyEvery)
				if err != nil {
					mu.Lock()
					failures++
					mu.Unlock()
					continue
				}
				local = append(local, addr)
			}
			mu.Lock()
			for _, addr := range local {
				if seen[addr] {
					overlaps++
				}
				seen[addr] = true
			}
			mu.Unlock()
		}(g)
	}
	wg.Wait()

	stats := mgr.Stats()
	fmt.Printf("region size:     %d bytes\n", *regionSize)
	fmt.Printf("goroutines:      %d x %d allocations\n", *goroutines, *perGoroutine)
	fmt.Printf("tiny allocs:     %d (refills %d)\n", stats.TinyAllocs, stats.TinyRefills)
	fmt.Printf("small allocs:    %d (refills %d)\n", stats.SmallAllocs, stats.SmallRefills)
	fmt.Printf("large allocs:    %d (refills %d)\n", stats.LargeAllocs, stats.LargeRefills)
	fmt.Printf("collector runs:  %d\n", stats.CollectorRuns)
	fmt.Printf("free chunks:     %d\n", stats.FreeChunks)
	fmt.Printf("failures:        %d\n", failures)
	fmt.Printf("overlapping addresses observed: %d\n", overlaps)

	if overlaps > 0 {
		os.Exit(1)
	}
}

func allocateOne(mgr *region.RegionManager, i, largeEvery, tinyEvery int) (region.Address, error) {
	switch {
	case largeEvery > 0 && i%largeEvery == 0:
		return mgr.AllocateLarge(8192)
	case tinyEvery > 0 && i%tinyEvery == 0:
		return mgr.AllocateTiny()
	default:
		return mgr.Allocate(64)
	}
}
