// Package format houses the low-level geometry of the heap arena: word
// size, alignment rules, header footprints, and the little-endian codec
// used to read and write words in place. The goal is to keep the byte-level
// rules focused and independent from the public API so higher-level
// packages can orchestrate the data in a more ergonomic form.
package format

const (
	// WordSize is the size of one arena word in bytes. The allocator
	// targets a 32-bit SRAM part, so sizes and forward references are
	// 4-byte words.
	WordSize = 4

	// RefSize is the size of one forward reference slot in a free-block
	// header. References are arena byte offsets stored as int32.
	RefSize = 4

	// Alignment is the required alignment of every block address and
	// every rounded allocation size.
	Alignment = WordSize

	// AlignmentMask is the bitmask used for word alignment (Alignment - 1).
	AlignmentMask = Alignment - 1

	// NumFreeLists is the number of parallel free lists in the index.
	// A free block of level L is threaded on lists 0..L inclusive.
	NumFreeLists = 4

	// MinAllocSize is the smallest block the index can represent: the
	// size word plus a single forward reference. Blocks below this can
	// neither be split off nor threaded back onto a list.
	MinAllocSize = WordSize + RefSize

	// MallocHeaderSize is the footprint of the live-block header: two
	// words, so a live block is never smaller than the smallest free
	// header and the bytes can be reinterpreted in place on free.
	MallocHeaderSize = 2 * WordSize

	// Level boundaries. A size lands on the highest level whose boundary
	// it meets; the boundary value itself belongs to the higher level.
	Level1Min = 16
	Level2Min = 64
	Level3Min = 1024

	// MaxArenaSize bounds the arena length so every offset and size fits
	// in an int32 with room for end-of-block arithmetic.
	MaxArenaSize = 1 << 30

	// NilRef marks the end of a free list inside the arena
	// (0xFFFFFFFF on the wire). Offset 0 is a valid block address.
	NilRef = int32(-1)
)

// RoundUpWord rounds n up to the next word boundary. n must be positive.
//
// Example:
//
//	RoundUpWord(1) = 4
//	RoundUpWord(4) = 4
//	RoundUpWord(5) = 8
func RoundUpWord(n int32) int32 {
	return ((n - 1) &^ AlignmentMask) + Alignment
}

// Aligned reports whether off sits on a word boundary.
func Aligned(off int32) bool {
	return off&AlignmentMask == 0
}
