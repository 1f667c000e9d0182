package format

import "encoding/binary"

// Binary encoding utilities for little-endian arena words.
//
// Implementation: Uses encoding/binary.LittleEndian. Modern Go compilers
// inline and optimize these calls extremely well; unsafe pointer variants
// provide no measurable benefit for 4-byte words.

// PutI32 writes an int32 word to the buffer at the specified offset in
// little-endian format.
func PutI32(b []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(b[off:off+4], uint32(v))
}

// ReadI32 reads an int32 word from the buffer at the specified offset in
// little-endian format.
func ReadI32(b []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(b[off : off+4]))
}

// PutU32 writes a uint32 word to the buffer at the specified offset in
// little-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// ReadU32 reads a uint32 word from the buffer at the specified offset in
// little-endian format.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	if off < 0 || n < 0 || off > len(b) {
		return false
	}
	return n <= len(b)-off
}
