package alloc

import "errors"

var (
	// ErrNoSpace indicates that no free block large enough was found.
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrZeroSize indicates a zero or negative allocation request.
	ErrZeroSize = errors.New("alloc: request must be positive")

	// ErrBadPtr indicates a nil or misaligned pointer where a live
	// allocation was expected. The heap is left untouched.
	ErrBadPtr = errors.New("alloc: bad pointer")
)
