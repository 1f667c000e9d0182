package alloc

import "github.com/joshuapare/heapkit/internal/format"

// The index partitions free blocks into four levels by size. A block of
// level L is threaded on lists 0..L inclusive, so larger blocks double as
// skip shortcuts for the lower lists and a search can start at the first
// list whose members are all big enough.
//
//	level 0:        size < 16
//	level 1:  16 <= size < 64
//	level 2:  64 <= size < 1024
//	level 3:         size >= 1024
//
// Boundary sizes belong to the higher level.
const numLevels = format.NumFreeLists

// levelForSize returns the free-list level for a block of the given total
// size.
func levelForSize(size int32) int {
	switch {
	case size >= format.Level3Min:
		return 3
	case size >= format.Level2Min:
		return 2
	case size >= format.Level1Min:
		return 1
	default:
		return 0
	}
}
