//go:build unix

package region

import "golang.org/x/sys/unix"

// reserveMemory commits size bytes of anonymous, zero-filled memory for a
// region's backing storage via an anonymous mmap. The mapping is
// PROT_READ|PROT_WRITE and MAP_PRIVATE|MAP_ANON, so it is never backed by
// a file and is never shared with another process.
func reserveMemory(size uintptr) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// releaseMemory unmaps a region previously obtained from reserveMemory.
func releaseMemory(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return unix.Munmap(data)
}
