// Package alloc implements a single-arena, in-place heap allocator with a
// four-level skip-list free index.
//
// # Overview
//
// The allocator services malloc, calloc, realloc, and free over one fixed
// contiguous byte range (the arena). Returned pointers are word-aligned
// arena offsets, and all free-space bookkeeping lives inside the free
// bytes themselves: each free block starts with its size and one forward
// reference per occupied level. There is no out-of-band metadata beyond
// the four list heads.
//
// # Free index
//
// Free blocks are kept in ascending address order on four parallel
// singly-linked lists, partitioned by size class:
//
//	level 0:        size < 16
//	level 1:  16 <= size < 64
//	level 2:  64 <= size < 1024
//	level 3:         size >= 1024
//
// A block of level L is threaded on lists 0..L, so the larger lists skip
// every block too small to satisfy their class and a first-fit search can
// start at the request's own level. Allocation removes a block whole or
// splits off its tail; free always coalesces with adjacent neighbors, so
// no two free blocks are ever adjacent.
//
// List mutations go through a walker that carries the per-level insertion
// trail (the slot that would have to be rewritten to splice a block in
// before the cursor). No back-pointers exist and no mutation ever rescans
// a list from its head.
//
// # Live blocks
//
// Every live allocation is prefixed by a two-word header whose first word
// holds the block's total size, so Free and Realloc need only the user
// pointer. The header matches the smallest free-block footprint, letting
// Free reinterpret the bytes in place.
//
// # Usage Example
//
//	a, err := arena.New(64 * 1024)
//	if err != nil {
//	    return err
//	}
//	h, err := alloc.New(a)
//	if err != nil {
//	    return err
//	}
//
//	p, buf, err := h.Malloc(40)
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//
//	// Later, return the block.
//	h.Free(p)
//
// # Failure model
//
// Exhaustion surfaces as ErrNoSpace; zero-size requests as ErrZeroSize.
// Free silently ignores nil, misaligned, and out-of-range pointers.
// Double frees and wild pointers inside the arena are undefined behavior,
// exactly as in the classical allocator contract.
//
// # Thread Safety
//
// A Heap is not thread-safe. At most one operation may be in progress at
// a time; callers needing concurrency must wrap every call in an external
// critical section.
package alloc
