// Package arena owns the contiguous byte region the allocator manages.
// The region may be heap-backed, caller-supplied, or a memory-mapped file
// image. The arena never interprets its bytes; the alloc package does.
package arena

import (
	"errors"
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/mmfile"
)

var (
	// ErrBadSize indicates an arena length that is zero, unaligned, or
	// beyond the addressable ceiling.
	ErrBadSize = errors.New("arena: length must be word-aligned, >= the minimum block, and addressable")

	// ErrClosed indicates use of an arena after Close.
	ErrClosed = errors.New("arena: closed")
)

// Arena is a fixed contiguous byte region, backed by the Go heap, a
// caller-supplied slice, or a shared file mapping.
type Arena struct {
	data    []byte
	cleanup func() error
}

// New returns a heap-backed arena of the given length.
func New(size int) (*Arena, error) {
	if !validSize(size) {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	return &Arena{data: make([]byte, size)}, nil
}

// FromBytes wraps a caller-supplied region. The caller must not alias the
// slice while the arena is live; the allocator owns every byte of it.
func FromBytes(b []byte) (*Arena, error) {
	if !validSize(len(b)) {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, len(b))
	}
	return &Arena{data: b}, nil
}

// Map opens the file at path as a shared read-write mapping and wraps it.
// The file length must satisfy the same constraints as New.
func Map(path string) (*Arena, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, err
	}
	if !validSize(len(data)) {
		_ = cleanup()
		return nil, fmt.Errorf("%w: %d", ErrBadSize, len(data))
	}
	return &Arena{data: data, cleanup: cleanup}, nil
}

// Bytes returns the backing region.
func (a *Arena) Bytes() []byte { return a.data }

// Size returns the region length in bytes.
func (a *Arena) Size() int { return len(a.data) }

// Sync flushes a file-backed arena to disk. No-op for memory arenas.
func (a *Arena) Sync() error {
	if a.data == nil {
		return ErrClosed
	}
	if a.cleanup == nil {
		return nil
	}
	return mmfile.Sync(a.data)
}

// Close releases a file mapping, if any. The arena must not be used after.
func (a *Arena) Close() error {
	if a.data == nil {
		return nil
	}
	a.data = nil
	if a.cleanup != nil {
		cl := a.cleanup
		a.cleanup = nil
		return cl()
	}
	return nil
}

func validSize(size int) bool {
	return size >= format.MinAllocSize &&
		size <= format.MaxArenaSize &&
		size&format.AlignmentMask == 0
}
