package main

import (
	"github.com/joshuapare/heapkit/alloc"
)

// reportSpans prints the free-list geometry of a heap, honoring --json.
func reportSpans(h *alloc.Heap) error {
	st := h.Stats()
	spans := h.FreeSpans()

	if jsonOut {
		return printJSON(struct {
			Stats alloc.Stats
			Free  []alloc.Span
		}{st, spans})
	}

	printInfo("Arena: %d bytes, %d free in %d blocks, %d live\n",
		st.ArenaSize, st.FreeBytes, len(spans), st.LiveBytes)
	for _, s := range spans {
		printInfo("  [%8d, %8d)  %8d bytes  level %d\n", s.Off, s.Off+s.Size, s.Size, s.Level)
	}
	for lvl := 0; lvl < 4; lvl++ {
		printInfo("list %d:", lvl)
		for _, s := range h.LevelSpans(lvl) {
			printInfo(" %d", s.Off)
		}
		printInfo("\n")
	}
	return nil
}
