package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_ResizeAbsorbsSliverNeighbor: expanding into a neighbor that would
// be left below the minimum block takes the neighbor whole, and the
// header reflects the real size.
func Test_ResizeAbsorbsSliverNeighbor(t *testing.T) {
	h := newTestHeap(t, 40)

	p, _, err := h.Malloc(8) // 16-byte block, 24 free at 16
	require.NoError(t, err)

	q, _, err := h.Realloc(24, p) // grows to 32, leaving an 8-byte tail
	require.NoError(t, err)
	require.Equal(t, p, q)
	require.Equal(t, int32(32), header(h, q))
	require.Equal(t, []Span{{Off: 32, Size: 8, Level: 0}}, h.FreeSpans())

	q, buf, err := h.Realloc(28, p) // needs 4 more: the 8-byte tail goes whole
	require.NoError(t, err)
	require.Equal(t, p, q)
	require.Equal(t, int32(40), header(h, q), "sliver absorbed into the block")
	require.Len(t, buf, 32)
	require.Empty(t, h.FreeSpans())
	require.Equal(t, int32(0), h.FreeBytes())
	require.NoError(t, h.Validate())

	// Freeing returns every byte, sliver included.
	h.Free(p)
	require.Equal(t, []Span{{Off: 0, Size: 40, Level: 1}}, h.FreeSpans())
	require.NoError(t, h.Validate())
}

// Test_ResizeRefusedWhenNeighborTooSmall: an expansion the right neighbor
// cannot cover must fall back to allocate-copy-free, never hand back a
// short block.
func Test_ResizeRefusedWhenNeighborTooSmall(t *testing.T) {
	h := newTestHeap(t, 4096)

	p, buf, err := h.Malloc(8)
	require.NoError(t, err)
	copy(buf, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	gap, _, err := h.Malloc(8)
	require.NoError(t, err)
	wall, _, err := h.Malloc(8) // keeps the gap island at 16 bytes
	require.NoError(t, err)
	h.Free(gap)

	// p's neighbor has 16 bytes; asking for far more forces the copy
	// path into the trailing block.
	q, moved, err := h.Realloc(100, p)
	require.NoError(t, err)
	require.NotEqual(t, p, q)
	require.Equal(t, Ptr(56), q, "first fit lands past the wall")
	require.Equal(t, int32(108), header(h, q))
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, moved[:8], "payload must move intact")
	require.Equal(t, 1, h.Stats().ReallocCopies)

	// The old block fused with the 16-byte island behind it.
	spans := h.FreeSpans()
	require.Equal(t, Span{Off: 0, Size: 32, Level: 1}, spans[0])
	require.NoError(t, h.Validate())
	_ = wall
}

// Test_ShrinkCoalescesTailWithSmallNeighbor: the neighbor search must see
// free blocks of every size class, so a shrink next to a 16-byte island
// grows the island instead of stranding the vacated tail beside it.
func Test_ShrinkCoalescesTailWithSmallNeighbor(t *testing.T) {
	h := newTestHeap(t, 4096)

	p, _, err := h.Malloc(60) // 68-byte block: level 2
	require.NoError(t, err)
	small, _, err := h.Malloc(8) // 16-byte block: level 1
	require.NoError(t, err)
	rest, _, err := h.Malloc(4004) // 4012-byte remainder, taken whole
	require.NoError(t, err)
	require.Equal(t, int32(0), h.FreeBytes())

	// The only free block is 16 bytes at offset 68, two size classes
	// below the shrinking allocation.
	h.Free(small)

	q, _, err := h.Realloc(20, p)
	require.NoError(t, err)
	require.Equal(t, p, q)
	require.Equal(t, int32(28), header(h, q))

	// The 40-byte tail fused with the 16-byte island: one block, on the
	// right lists, in the right place.
	require.Equal(t, []Span{{Off: 28, Size: 56, Level: 1}}, h.FreeSpans())
	require.NoError(t, h.Validate())
	_ = rest
}

// Test_ShrinkGrowsNeighborDownward: the free neighbor's header moves down
// over the vacated tail and the lists follow it.
func Test_ShrinkGrowsNeighborDownward(t *testing.T) {
	h := newTestHeap(t, 4096)

	p, _, err := h.Malloc(1020) // 1028-byte block, level 3
	require.NoError(t, err)
	require.Equal(t, []Span{{Off: 1028, Size: 3068, Level: 3}}, h.FreeSpans())

	q, _, err := h.Realloc(100, p)
	require.NoError(t, err)
	require.Equal(t, p, q)
	require.Equal(t, int32(108), header(h, q))
	require.Equal(t, []Span{{Off: 108, Size: 3988, Level: 3}}, h.FreeSpans())
	require.NoError(t, h.Validate())
}

// Test_ShrinkWithLiveNeighborInsertsTail: when the block after the
// shrunk allocation is live, the vacated tail becomes a free island of
// its own.
func Test_ShrinkWithLiveNeighborInsertsTail(t *testing.T) {
	h := newTestHeap(t, 4096)

	p, _, err := h.Malloc(100) // 108-byte block
	require.NoError(t, err)
	wall, _, err := h.Malloc(40)
	require.NoError(t, err)

	q, _, err := h.Realloc(60, p) // shrinks to 68: a 40-byte tail
	require.NoError(t, err)
	require.Equal(t, p, q)
	require.Equal(t, int32(68), header(h, q))

	spans := h.FreeSpans()
	require.Len(t, spans, 2)
	require.Equal(t, Span{Off: 68, Size: 40, Level: 1}, spans[0])
	require.Equal(t, int32(156), spans[1].Off)
	require.NoError(t, h.Validate())
	_ = wall
}

// Test_ResizeExactNeighborFit: an expansion consuming the neighbor to the
// byte takes it whole.
func Test_ResizeExactNeighborFit(t *testing.T) {
	h := newTestHeap(t, 64)

	p, _, err := h.Malloc(8) // 16-byte block, 48 free
	require.NoError(t, err)
	q, buf, err := h.Realloc(56, p) // rounds to 64: exactly the arena
	require.NoError(t, err)
	require.Equal(t, p, q)
	require.Equal(t, int32(64), header(h, q))
	require.Len(t, buf, 56)
	require.Empty(t, h.FreeSpans())
	require.NoError(t, h.Validate())
}
