package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Validate walks the whole index and checks its structural invariants:
//
//   - every free block lies inside the arena, word-aligned, and at least
//     the minimum block size
//   - every list is strictly ascending by address
//   - a block of level L appears on exactly lists 0..L
//   - no two free blocks are adjacent
//   - the free byte total matches the heap's accounting
//
// It is meant for tests and diagnostic tooling; a healthy heap never
// needs it at runtime.
func (h *Heap) Validate() error {
	x := &h.index

	// Level 0 holds every free block; walk it once for the per-block
	// checks and the address ordering.
	var (
		blocks    []int32
		freeTotal int32
		prevEnd   = int32(-1)
		prevOff   = int32(-1)
	)
	for off := x.heads[0]; off != nilRef; off = x.entryNext(off, 0) {
		if off < 0 || off+format.MinAllocSize > h.totalMem {
			return fmt.Errorf("free block at %d outside arena of %d bytes", off, h.totalMem)
		}
		if off&format.AlignmentMask != 0 {
			return fmt.Errorf("free block at %d is not word-aligned", off)
		}
		size := x.entrySize(off)
		if size < format.MinAllocSize || off+size > h.totalMem {
			return fmt.Errorf("free block at %d has invalid size %d", off, size)
		}
		if off <= prevOff {
			return fmt.Errorf("list 0 not ascending: %d after %d", off, prevOff)
		}
		if off < prevEnd {
			return fmt.Errorf("free blocks at %d and %d overlap", prevOff, off)
		}
		if off == prevEnd {
			return fmt.Errorf("free blocks at %d and %d are adjacent", prevOff, off)
		}
		blocks = append(blocks, off)
		freeTotal += size
		prevOff, prevEnd = off, off+size
		if len(blocks) > len(x.data)/format.MinAllocSize {
			return fmt.Errorf("list 0 longer than the arena can hold; cycle suspected")
		}
	}

	if freeTotal != h.FreeBytes() {
		return fmt.Errorf("free bytes on index (%d) disagree with accounting (%d)",
			freeTotal, h.FreeBytes())
	}

	// Each upper list must be exactly the subsequence of level-0 blocks
	// whose size reaches it, in the same order.
	for lvl := 1; lvl < numLevels; lvl++ {
		want := make([]int32, 0, len(blocks))
		for _, off := range blocks {
			if levelForSize(x.entrySize(off)) >= lvl {
				want = append(want, off)
			}
		}
		got := make([]int32, 0, len(want))
		for off := x.heads[lvl]; off != nilRef; off = x.entryNext(off, lvl) {
			got = append(got, off)
			if len(got) > len(blocks) {
				return fmt.Errorf("list %d longer than list 0; cycle suspected", lvl)
			}
		}
		if len(got) != len(want) {
			return fmt.Errorf("list %d has %d blocks, want %d", lvl, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				return fmt.Errorf("list %d position %d: block %d, want %d", lvl, i, got[i], want[i])
			}
		}
	}

	return nil
}
