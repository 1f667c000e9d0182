package alloc

import "github.com/joshuapare/heapkit/internal/format"

// A slot reference addresses one forward-reference word: either a list
// head (held in the index struct, outside the arena) or a next[i] word
// inside a free entry. Values >= 0 are the arena byte offset of the word;
// value -(i+1) is the level-i head.
type slotRef = int32

// headSlot returns the slot reference for the level-i list head.
func headSlot(i int) slotRef {
	return slotRef(-(i + 1))
}

// nextSlot returns the slot reference for the level-i forward reference
// of the entry at off.
func nextSlot(off int32, i int) slotRef {
	return off + format.WordSize + int32(i)*format.RefSize
}

// loadSlot reads the block reference a slot currently holds.
func (x *freeIndex) loadSlot(s slotRef) int32 {
	if s < 0 {
		return x.heads[-s-1]
	}
	return format.ReadI32(x.data, int(s))
}

// storeSlot rewrites the block reference a slot holds. Every list
// mutation in the index goes through a slot; nothing ever rescans from a
// head to find a predecessor.
func (x *freeIndex) storeSlot(s slotRef, ref int32) {
	if s < 0 {
		x.heads[-s-1] = ref
		return
	}
	format.PutI32(x.data, int(s), ref)
}

// walker is the cursor over one free list. It tracks the current block on
// the driving level and, for every level, the slot that last pointed at
// or past the current block: the insertion trail used to splice blocks
// in and out without back-pointers.
//
// Invariant after advanceLinks: for each level i, loadSlot(links[i]) is
// curr itself or the first level-i block at an address >= curr (nilRef
// when the list ends before that). The slot always belongs to a block
// strictly below curr, or to a head.
type walker struct {
	x     *freeIndex
	level int
	curr  int32
	links [numLevels]slotRef
}

// newWalker positions a walker at the head of the given level. The trail
// is advanced immediately so the invariant holds even when the very first
// block on the driving list is mutated: lower lists may hold blocks below
// it that the trail must already have passed.
func (x *freeIndex) newWalker(level int) walker {
	lw := walker{x: x, level: level, curr: x.heads[level]}
	for i := range lw.links {
		lw.links[i] = headSlot(i)
	}
	lw.advanceLinks()
	return lw
}

// moveNext steps the cursor along the driving level and drags the trail
// behind it.
func (lw *walker) moveNext() {
	lw.curr = lw.x.entryNext(lw.curr, lw.level)
	lw.advanceLinks()
}

// advanceLinks advances each lagging link until it reaches the first
// block at or past curr on its level. A curr of nilRef means past the
// end; the links then advance to the tail slots, which the end-of-list
// insert and merge cases rely on.
func (lw *walker) advanceLinks() {
	for i := 0; i < numLevels; i++ {
		for {
			ref := lw.x.loadSlot(lw.links[i])
			if ref == nilRef || (lw.curr != nilRef && ref >= lw.curr) {
				break
			}
			lw.links[i] = nextSlot(ref, i)
		}
	}
}

// prevEntry returns the address-order predecessor free block of curr, or
// nilRef when curr is the first free block. The level-0 link slot lives
// inside that predecessor's header, one word past its size field.
func (lw *walker) prevEntry() int32 {
	if lw.links[0] < 0 {
		return nilRef
	}
	return lw.links[0] - format.WordSize
}
