package alloc

import "github.com/joshuapare/heapkit/internal/format"

// Free-entry layout, written in place at the start of each free block
// (word-aligned, little-endian):
//
//	Offset  Size  Description
//	0x00    4     Total block size in bytes, header included.
//	0x04    4*N   Forward references, one per occupied level
//	              (N = level(size)+1). NilRef terminates a list.
//
// Only the occupied reference slots are materialised; the bytes past them
// belong to the block's free space. The minimum block is therefore one
// size word plus one reference: format.MinAllocSize.
const nilRef = format.NilRef

// entrySize reads the total size of the free entry at off.
func (x *freeIndex) entrySize(off int32) int32 {
	return format.ReadI32(x.data, int(off))
}

// setEntrySize writes the total size of the free entry at off.
func (x *freeIndex) setEntrySize(off, size int32) {
	format.PutI32(x.data, int(off), size)
}

// entryNext reads the level-i forward reference of the entry at off.
func (x *freeIndex) entryNext(off int32, i int) int32 {
	return format.ReadI32(x.data, int(off)+format.WordSize+i*format.RefSize)
}

// setEntryNext writes the level-i forward reference of the entry at off.
func (x *freeIndex) setEntryNext(off int32, i int, ref int32) {
	format.PutI32(x.data, int(off)+format.WordSize+i*format.RefSize, ref)
}

// entrySnapshot is a stack copy of a free-entry header. Split and resize
// write a new header that overlaps the tail of the old one, so the old
// header must be captured before the destination is written. Only the
// occupied slots (level(size)+1 of them) are meaningful.
type entrySnapshot struct {
	size int32
	next [numLevels]int32
}

// snapshotEntry captures the header of the free entry at off.
func (x *freeIndex) snapshotEntry(off int32) entrySnapshot {
	s := entrySnapshot{size: x.entrySize(off)}
	for i := 0; i <= levelForSize(s.size); i++ {
		s.next[i] = x.entryNext(off, i)
	}
	return s
}
