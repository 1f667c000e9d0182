package alloc

import "github.com/joshuapare/heapkit/internal/format"

// freeIndex is the four-level skip-list over the arena's free blocks.
// The only state outside the arena bytes is the head reference per level;
// everything else lives in the free blocks themselves.
type freeIndex struct {
	data  []byte
	heads [numLevels]int32
	stats indexStats
}

// indexStats counts index-level events for instrumentation.
type indexStats struct {
	Splits         int // allocations that carved a trailing free block
	WholeBlocks    int // allocations that consumed an entire block
	MergedLeft     int // frees merged into the left neighbor only
	MergedRight    int // frees merged into the right neighbor only
	MergedBoth     int // frees that fused left and right neighbors
	Inserted       int // frees with no adjacent neighbor
	ResizedInPlace int // resizes satisfied without moving the payload
	ResizeRejected int // expansion resizes the index could not satisfy
}

// init establishes one free block spanning the whole arena and threads it
// on every list its size reaches, which is all four for any arena of
// 1024 bytes or more.
func (x *freeIndex) init(data []byte) {
	x.data = data
	length := int32(len(data))
	x.setEntrySize(0, length)
	lvl := levelForSize(length)
	for i := 0; i < numLevels; i++ {
		if i <= lvl {
			x.heads[i] = 0
			x.setEntryNext(0, i, nilRef)
		} else {
			x.heads[i] = nilRef
		}
	}
}

// reserve finds the first free block at or past the size's own level that
// fits, removes or splits it, and returns its offset together with the
// actual number of bytes handed out. A block whose remainder would be
// smaller than the minimum block is consumed whole, so actual may exceed
// size by up to MinAllocSize-1 bytes. ok is false when no block fits.
func (x *freeIndex) reserve(size int32) (off, actual int32, ok bool) {
	lw := x.newWalker(levelForSize(size))
	for lw.curr != nilRef && x.entrySize(lw.curr) < size {
		lw.moveNext()
	}
	if lw.curr == nilRef {
		return 0, 0, false
	}

	off = lw.curr
	blockSize := x.entrySize(off)
	if blockSize < size+format.MinAllocSize {
		// The leftover would be unusable. Hand out the whole block.
		x.removeCurrent(&lw)
		x.stats.WholeBlocks++
		return off, blockSize, true
	}

	// Split: keep the head for the caller, re-thread the tail as a
	// smaller entry at the same list position. The tail header may
	// overlap the old header's reference slots, hence the snapshot.
	snap := x.snapshotEntry(off)
	x.moveResizedEntry(&lw, off+size, snap, snap.size-size)
	x.stats.Splits++
	return off, size, true
}

// release returns the block [off, off+size) to the index, fusing it with
// whichever of its address neighbors are free so that no two free blocks
// are ever adjacent.
func (x *freeIndex) release(size, off int32) {
	// Walk level 0 so no potential neighbor is skipped over.
	lw := x.newWalker(0)
	for lw.curr != nilRef && lw.curr < off {
		lw.moveNext()
	}

	prev := lw.prevEntry()
	prevAdjacent := prev != nilRef && prev+x.entrySize(prev) == off
	currAdjacent := lw.curr != nilRef && off+size == lw.curr

	switch {
	case prevAdjacent && currAdjacent:
		x.mergeBoth(&lw, prev, size)
		x.stats.MergedBoth++
	case prevAdjacent:
		x.expandEntry(&lw, prev, size)
		x.stats.MergedLeft++
	case currAdjacent:
		x.coalesceWithCurr(&lw, off, size)
		x.stats.MergedRight++
	default:
		x.insertEntry(&lw, off, size)
		x.stats.Inserted++
	}
}

// resizeInPlace tries to change the live block [off, off+oldSize) to
// newSize bytes without moving its payload, by consuming or feeding the
// free block that starts exactly at its end. On success it returns the
// actual resulting block size (an expansion that leaves the right
// neighbor with an unusable remainder absorbs it whole). ok is false when
// an expansion cannot be satisfied in place; the caller falls back to
// allocate-copy-free.
func (x *freeIndex) resizeInPlace(oldSize, newSize, off int32) (actual int32, ok bool) {
	// Walk level 0: the adjacent neighbor can be of any size class, and
	// a higher-level walk would miss the small ones.
	lw := x.newWalker(0)
	for lw.curr != nilRef && lw.curr < off {
		lw.moveNext()
	}

	if lw.curr != nilRef && off+oldSize == lw.curr {
		return x.resizeAgainstNeighbor(&lw, oldSize, newSize, off)
	}

	if newSize > oldSize {
		x.stats.ResizeRejected++
		return 0, false
	}

	// Shrink with no adjacent free block: carve the vacated tail off as
	// its own entry, unless it is too small to stand alone. The trail is
	// already parked just past off, which is exactly the tail's
	// insertion point.
	delta := oldSize - newSize
	if delta < format.MinAllocSize {
		return oldSize, true
	}
	x.insertEntry(&lw, off+newSize, delta)
	x.stats.Inserted++
	x.stats.ResizedInPlace++
	return newSize, true
}

// resizeAgainstNeighbor adjusts the boundary between the live block at
// off and the free block the walker is parked on, which starts exactly at
// the live block's end.
func (x *freeIndex) resizeAgainstNeighbor(lw *walker, oldSize, newSize, off int32) (int32, bool) {
	neighborSize := x.entrySize(lw.curr)

	if newSize < oldSize {
		// Grow the neighbor downward over the vacated tail.
		delta := oldSize - newSize
		snap := x.snapshotEntry(lw.curr)
		x.moveResizedEntry(lw, lw.curr-delta, snap, snap.size+delta)
		lw.curr -= delta
		x.stats.ResizedInPlace++
		return newSize, true
	}

	delta := newSize - oldSize
	if neighborSize < delta {
		// The neighbor cannot cover the expansion.
		x.stats.ResizeRejected++
		return 0, false
	}
	if neighborSize-delta < format.MinAllocSize {
		// The neighbor's remainder would be unusable: absorb it whole.
		x.removeCurrent(lw)
		x.stats.ResizedInPlace++
		return oldSize + neighborSize, true
	}
	// Move the neighbor's header up, shrinking it by the delta.
	snap := x.snapshotEntry(lw.curr)
	x.moveResizedEntry(lw, lw.curr+delta, snap, snap.size-delta)
	lw.curr += delta
	x.stats.ResizedInPlace++
	return newSize, true
}
