package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillDead_WritesRecognizableHeader(t *testing.T) {
	data := make([]byte, 256)
	fillDead(data, 32, 96)

	size, ok := readDeadObject(data, 32)
	require.True(t, ok)
	assert.Equal(t, uintptr(64), size)
}

func TestFillDead_ZeroGapIsNoOp(t *testing.T) {
	data := make([]byte, 64)
	fillDead(data, 16, 16)

	_, ok := readDeadObject(data, 16)
	assert.False(t, ok)
}

func TestReadDeadObject_RejectsLiveOrFreeHeader(t *testing.T) {
	data := make([]byte, 64)
	writeWord(data, 0, 48) // untagged: looks like a live-object word

	_, ok := readDeadObject(data, 0)
	assert.False(t, ok)

	writeWord(data, 8, uint64(48)|freeChunkTagBit)
	_, ok = readDeadObject(data, 8)
	assert.False(t, ok)
}

func TestFillDead_PanicsBelowHeaderSizeInDebug(t *testing.T) {
	if !debugRegion {
		t.Skip("debugRegion disabled")
	}
	data := make([]byte, 64)
	assert.Panics(t, func() {
		fillDead(data, 0, cellHeaderSize-1)
	})
}
