package alloc

// Primitive list mutations. Every one of them rewrites only the walker's
// trail slots and the affected entry headers; list order is preserved
// because a trail slot always belongs to a block strictly below the
// insertion point.

// insertEntry writes a fresh free-entry header at off and threads it onto
// lists 0..level(size) immediately ahead of the trail.
func (x *freeIndex) insertEntry(lw *walker, off, size int32) {
	x.setEntrySize(off, size)
	for i := 0; i <= levelForSize(size); i++ {
		x.setEntryNext(off, i, x.loadSlot(lw.links[i]))
		x.storeSlot(lw.links[i], off)
	}
}

// removeCurrent unthreads the walker's current block from every list it
// occupies. The block's bytes are the caller's afterwards.
func (x *freeIndex) removeCurrent(lw *walker) {
	for i := 0; i <= levelForSize(x.entrySize(lw.curr)); i++ {
		x.storeSlot(lw.links[i], x.entryNext(lw.curr, i))
	}
}

// moveResizedEntry replaces the entry captured in src with a new entry of
// newSize at dest, carrying the forward references over and adjusting
// list membership for the level change. dest may overlap the bytes src
// was captured from; src must be a snapshot, never a live header.
//
// The walker's current block must be the entry being replaced, and the
// trail slots must still point at it.
func (x *freeIndex) moveResizedEntry(lw *walker, dest int32, src entrySnapshot, newSize int32) {
	x.setEntrySize(dest, newSize)
	oldLevel := levelForSize(src.size)
	newLevel := levelForSize(newSize)

	if newSize > src.size {
		for i := 0; i <= oldLevel; i++ {
			x.setEntryNext(dest, i, src.next[i])
			x.storeSlot(lw.links[i], dest)
		}
		// Newly reached lists: splice in ahead of the trail.
		for i := oldLevel + 1; i <= newLevel; i++ {
			x.setEntryNext(dest, i, x.loadSlot(lw.links[i]))
			x.storeSlot(lw.links[i], dest)
		}
		return
	}

	for i := 0; i <= newLevel; i++ {
		x.setEntryNext(dest, i, src.next[i])
		x.storeSlot(lw.links[i], dest)
	}
	// Lists the smaller entry no longer qualifies for: detach by routing
	// the trail straight to the old successor.
	for i := newLevel + 1; i <= oldLevel; i++ {
		x.storeSlot(lw.links[i], src.next[i])
	}
}

// expandEntry grows the entry at off (the trail's predecessor block) in
// place by delta bytes, threading it onto any lists its new size reaches.
// Used when a freed range merges into its left neighbor.
func (x *freeIndex) expandEntry(lw *walker, off, delta int32) {
	oldLevel := levelForSize(x.entrySize(off))
	newSize := x.entrySize(off) + delta
	x.setEntrySize(off, newSize)
	for i := oldLevel + 1; i <= levelForSize(newSize); i++ {
		x.setEntryNext(off, i, x.loadSlot(lw.links[i]))
		x.storeSlot(lw.links[i], off)
	}
}

// coalesceWithCurr absorbs the walker's current block into a new entry at
// off (the freed range ends exactly where curr begins). The merged entry
// reuses curr's forward references and takes curr's place in every list,
// then becomes the walker's current block.
func (x *freeIndex) coalesceWithCurr(lw *walker, off, size int32) {
	currLevel := levelForSize(x.entrySize(lw.curr))
	newSize := size + x.entrySize(lw.curr)
	newLevel := levelForSize(newSize)

	x.setEntrySize(off, newSize)
	for i := 0; i <= currLevel; i++ {
		x.setEntryNext(off, i, x.entryNext(lw.curr, i))
		x.storeSlot(lw.links[i], off)
	}
	for i := currLevel + 1; i <= newLevel; i++ {
		x.setEntryNext(off, i, x.loadSlot(lw.links[i]))
		x.storeSlot(lw.links[i], off)
	}
	lw.curr = off
}

// mergeBoth folds the freed range and the walker's current block into the
// left neighbor prev, leaving a single entry spanning all three. curr is
// unthreaded from every list; prev inherits curr's successors and joins
// any lists its new size reaches.
func (x *freeIndex) mergeBoth(lw *walker, prev, size int32) {
	prevLevel := levelForSize(x.entrySize(prev))
	currLevel := levelForSize(x.entrySize(lw.curr))
	newSize := x.entrySize(prev) + size + x.entrySize(lw.curr)
	newLevel := levelForSize(newSize)

	x.setEntrySize(prev, newSize)
	for i := 0; i <= currLevel; i++ {
		x.setEntryNext(prev, i, x.entryNext(lw.curr, i))
	}
	// Lists curr never occupied: the trail slot already references the
	// first block past the merged range.
	for i := currLevel + 1; i <= newLevel; i++ {
		x.setEntryNext(prev, i, x.loadSlot(lw.links[i]))
	}
	// On lists prev already occupied, the trail slot is prev's own
	// next reference, rewritten above. Splice prev into the rest.
	for i := prevLevel + 1; i <= newLevel; i++ {
		x.storeSlot(lw.links[i], prev)
	}
	lw.curr = prev
}
