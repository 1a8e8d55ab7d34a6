package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignUp(t *testing.T) {
	assert.Equal(t, uintptr(8), alignUp(1, 8))
	assert.Equal(t, uintptr(8), alignUp(8, 8))
	assert.Equal(t, uintptr(16), alignUp(9, 8))
	assert.Equal(t, uintptr(0), alignUp(0, 8))
}

func TestIsPowerOfTwo(t *testing.T) {
	assert.True(t, isPowerOfTwo(1))
	assert.True(t, isPowerOfTwo(2))
	assert.True(t, isPowerOfTwo(4096))
	assert.False(t, isPowerOfTwo(0))
	assert.False(t, isPowerOfTwo(3))
	assert.False(t, isPowerOfTwo(6))
}

func TestWordAligned(t *testing.T) {
	assert.True(t, wordAligned(8))
	assert.True(t, wordAligned(16))
	assert.False(t, wordAligned(0))
	assert.False(t, wordAligned(4))
	assert.False(t, wordAligned(7))
}

func TestAlignmentGap_ZeroWhenAlreadyAligned(t *testing.T) {
	assert.Equal(t, uintptr(0), alignmentGap(64, 16))
}

func TestAlignmentGap_BumpsPastTooSmallGap(t *testing.T) {
	// mark=1, alignment=16: naive gap is 15, smaller than tinyCellSize (16),
	// so alignmentGap must advance by one more increment of alignment.
	gap := alignmentGap(1, 16)
	aligned := uintptr(1) + gap
	assert.Zero(t, aligned%16)
	assert.True(t, gap == 0 || gap >= tinyCellSize)
	assert.Equal(t, uintptr(31), gap)
}

func TestAlignmentGap_NoOpWhenAlreadyLargeEnough(t *testing.T) {
	// mark=48, alignment=64: naive gap (16) already meets tinyCellSize (16),
	// so no bump is needed.
	gap := alignmentGap(48, 64)
	assert.Equal(t, uintptr(16), gap)
}

func TestPadForDebugTag_ZeroByDefault(t *testing.T) {
	old := debugTagSize
	defer func() { debugTagSize = old }()

	debugTagSize = 0
	assert.Equal(t, uintptr(64), padForDebugTag(64))

	debugTagSize = 8
	assert.Equal(t, uintptr(72), padForDebugTag(64))
}
