package alloc

import (
	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/internal/format"
)

// Ptr is a user pointer: the arena byte offset of an allocation's
// payload. NilPtr stands for the null pointer; payloads always sit past
// the live-block header, so offset 0 is never a valid Ptr.
type Ptr = int32

// NilPtr is the null user pointer.
const NilPtr Ptr = 0

// Heap is the public allocator over one arena. It prepends a size header
// to every live allocation so Free and Realloc need only a pointer, and
// delegates free-space tracking to the skip-list index.
//
// A Heap is not safe for concurrent use; callers must serialize every
// operation externally.
type Heap struct {
	index    freeIndex
	totalMem int32
	liveMem  int32
	ops      opStats
}

// New builds a heap over the arena's full byte range. The arena must stay
// alive and unaliased for the heap's lifetime.
func New(a *arena.Arena) (*Heap, error) {
	data := a.Bytes()
	if len(data) < format.MinAllocSize ||
		len(data) > format.MaxArenaSize ||
		len(data)&format.AlignmentMask != 0 {
		return nil, arena.ErrBadSize
	}
	h := &Heap{totalMem: int32(len(data))}
	h.index.init(data)
	return h, nil
}

// roundedSize converts a requested payload size into the total block
// size: payload rounded up to the word, plus the live-block header.
func roundedSize(req int32) int32 {
	return format.RoundUpWord(req) + format.MallocHeaderSize
}

// Malloc allocates n bytes and returns the user pointer together with
// the payload slice. The payload covers every usable byte of the block,
// which can slightly exceed n when an unusable remainder was absorbed.
func (h *Heap) Malloc(n int32) (Ptr, []byte, error) {
	h.ops.MallocCalls++
	return h.malloc(n)
}

// Calloc allocates n bytes as Malloc does and zeroes the block: every
// word past the stored size, payload included.
func (h *Heap) Calloc(n int32) (Ptr, []byte, error) {
	h.ops.CallocCalls++
	p, payload, err := h.malloc(n)
	if err != nil {
		return NilPtr, nil, err
	}
	off := p - format.MallocHeaderSize
	clear(h.index.data[off+format.WordSize : p+int32(len(payload))])
	return p, payload, nil
}

// Free returns the allocation at p to the heap. Nil, misaligned, and
// out-of-range pointers are silently ignored; freeing a pointer twice or
// freeing an address the heap never returned is undefined behavior.
func (h *Heap) Free(p Ptr) {
	h.ops.FreeCalls++
	size, off, ok := h.liveHeader(p)
	if !ok {
		h.ops.IgnoredFrees++
		debugLogf("free %d: ignored (nil, misaligned, or out of range)", p)
		return
	}
	h.index.release(size, off)
	h.liveMem -= size
}

// Realloc resizes the allocation at p to n bytes. A nil p behaves as
// Malloc; n <= 0 frees p and returns NilPtr. The resize happens in place
// when the neighboring free block allows it; otherwise the payload moves
// to a fresh block and the old one is freed. On ErrNoSpace the old
// allocation is untouched and still valid.
func (h *Heap) Realloc(n int32, p Ptr) (Ptr, []byte, error) {
	h.ops.ReallocCalls++
	if p == NilPtr {
		return h.malloc(n)
	}
	if n <= 0 {
		size, off, ok := h.liveHeader(p)
		if ok {
			h.index.release(size, off)
			h.liveMem -= size
		}
		return NilPtr, nil, nil
	}

	oldSize, off, ok := h.liveHeader(p)
	if !ok {
		return p, nil, ErrBadPtr
	}
	newSize := roundedSize(n)
	if newSize == oldSize {
		return p, h.index.data[p : off+oldSize], nil
	}

	if actual, resized := h.index.resizeInPlace(oldSize, newSize, off); resized {
		format.PutI32(h.index.data, int(off), actual)
		h.liveMem += actual - oldSize
		return p, h.index.data[p : off+actual], nil
	}

	// Expansion refused: allocate, copy the payload, free the old block.
	newOff, actual, ok := h.index.reserve(newSize)
	if !ok {
		h.ops.FailedAllocs++
		return NilPtr, nil, ErrNoSpace
	}
	format.PutI32(h.index.data, int(newOff), actual)
	newP := newOff + format.MallocHeaderSize
	copy(h.index.data[newP:newOff+actual], h.index.data[p:off+oldSize])
	h.index.release(oldSize, off)
	h.liveMem += actual - oldSize
	h.ops.ReallocCopies++
	return newP, h.index.data[newP : newOff+actual], nil
}

// malloc is the unmetered allocation path shared by Malloc, Calloc, and
// the nil-pointer Realloc case.
func (h *Heap) malloc(n int32) (Ptr, []byte, error) {
	if n <= 0 {
		return NilPtr, nil, ErrZeroSize
	}
	if n > h.totalMem {
		h.ops.FailedAllocs++
		return NilPtr, nil, ErrNoSpace
	}

	off, actual, ok := h.index.reserve(roundedSize(n))
	if !ok {
		h.ops.FailedAllocs++
		debugLogf("malloc %d: no block fits (rounded=%d, free=%d)", n, roundedSize(n), h.FreeBytes())
		return NilPtr, nil, ErrNoSpace
	}
	format.PutI32(h.index.data, int(off), actual)
	h.liveMem += actual
	p := off + format.MallocHeaderSize
	return p, h.index.data[p : off+actual], nil
}

// liveHeader validates a user pointer and reads its live-block header.
func (h *Heap) liveHeader(p Ptr) (size, off int32, ok bool) {
	if p == NilPtr || p&format.AlignmentMask != 0 {
		return 0, 0, false
	}
	off = p - format.MallocHeaderSize
	if off < 0 || !format.Has(h.index.data, int(off), format.WordSize) {
		return 0, 0, false
	}
	size = format.ReadI32(h.index.data, int(off))
	if size < format.MinAllocSize || off+size > h.totalMem {
		return 0, 0, false
	}
	return size, off, true
}

// ArenaSize returns the total arena length in bytes.
func (h *Heap) ArenaSize() int32 { return h.totalMem }

// FreeBytes returns the number of bytes currently on the free index.
func (h *Heap) FreeBytes() int32 { return h.totalMem - h.liveMem }

// LiveBytes returns the number of bytes in live blocks, headers included.
func (h *Heap) LiveBytes() int32 { return h.liveMem }
