package region

import "encoding/binary"

// readWord/writeWord read and write a single machine word (8 bytes,
// little-endian) at a byte offset into the committed region's backing
// slice, via encoding/binary rather than unsafe.Pointer arithmetic.
func readWord(data []byte, off uintptr) uint64 {
	return binary.LittleEndian.Uint64(data[off : off+wordSize])
}

func writeWord(data []byte, off uintptr, v uint64) {
	binary.LittleEndian.PutUint64(data[off:off+wordSize], v)
}
