package alloc

// opStats counts façade-level operations.
type opStats struct {
	MallocCalls   int
	CallocCalls   int
	ReallocCalls  int
	FreeCalls     int
	IgnoredFrees  int
	FailedAllocs  int
	ReallocCopies int
}

// Stats is a point-in-time snapshot of heap activity, used by tests and
// the inspection tooling.
type Stats struct {
	ArenaSize int32
	FreeBytes int32
	LiveBytes int32

	MallocCalls   int
	CallocCalls   int
	ReallocCalls  int
	FreeCalls     int
	IgnoredFrees  int // frees dropped for nil/misaligned/out-of-range pointers
	FailedAllocs  int
	ReallocCopies int // reallocs that fell back to allocate-copy-free

	Splits         int
	WholeBlocks    int
	MergedLeft     int
	MergedRight    int
	MergedBoth     int
	Inserted       int
	ResizedInPlace int
	ResizeRejected int
}

// Stats returns the current counters.
func (h *Heap) Stats() Stats {
	return Stats{
		ArenaSize: h.totalMem,
		FreeBytes: h.FreeBytes(),
		LiveBytes: h.liveMem,

		MallocCalls:   h.ops.MallocCalls,
		CallocCalls:   h.ops.CallocCalls,
		ReallocCalls:  h.ops.ReallocCalls,
		FreeCalls:     h.ops.FreeCalls,
		IgnoredFrees:  h.ops.IgnoredFrees,
		FailedAllocs:  h.ops.FailedAllocs,
		ReallocCopies: h.ops.ReallocCopies,

		Splits:         h.index.stats.Splits,
		WholeBlocks:    h.index.stats.WholeBlocks,
		MergedLeft:     h.index.stats.MergedLeft,
		MergedRight:    h.index.stats.MergedRight,
		MergedBoth:     h.index.stats.MergedBoth,
		Inserted:       h.index.stats.Inserted,
		ResizedInPlace: h.index.stats.ResizedInPlace,
		ResizeRejected: h.index.stats.ResizeRejected,
	}
}
