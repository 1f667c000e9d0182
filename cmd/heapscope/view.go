package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the entire UI.
func (m Model) View() string {
	header := m.renderHeader()
	arenaMap := m.renderArenaMap()
	lists := m.renderFreeLists()
	stats := m.renderStats()
	log := m.renderOpLog()
	status := m.renderStatus()

	body := lipgloss.JoinHorizontal(lipgloss.Top, lists, stats, log)
	return lipgloss.JoinVertical(lipgloss.Left, header, arenaMap, body, status)
}

func (m Model) renderHeader() string {
	check := okStyle.Render("invariants ok")
	if m.checkErr != nil {
		check = badStyle.Render(fmt.Sprintf("INVARIANTS BROKEN: %v", m.checkErr))
	}
	title := headerStyle.Render(fmt.Sprintf("heapscope: %d-byte arena, seed %d", m.arenaSize, m.seed))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", check)
}

// renderArenaMap draws the arena as one character per chunk: free bytes
// in green dots, live bytes in orange blocks.
func (m Model) renderArenaMap() string {
	cells := m.width - 6
	if cells < 16 {
		cells = 64
	}
	if cells > 256 {
		cells = 256
	}
	chunk := (m.arenaSize + cells - 1) / cells

	// Mark free bytes per chunk.
	freeBytes := make([]int, cells)
	for _, s := range m.heap.FreeSpans() {
		for b := int(s.Off); b < int(s.Off+s.Size); b++ {
			freeBytes[b/chunk]++
		}
	}

	var sb strings.Builder
	for i := 0; i < cells; i++ {
		chunkLen := chunk
		if rem := m.arenaSize - i*chunk; rem < chunkLen {
			chunkLen = rem
		}
		switch {
		case freeBytes[i] == chunkLen:
			sb.WriteString(freeCellStyle.Render("·"))
		case freeBytes[i] == 0:
			sb.WriteString(liveCellStyle.Render("█"))
		default:
			sb.WriteString(liveCellStyle.Render("▒"))
		}
	}
	return paneStyle.Render(paneTitleStyle.Render("arena") + "\n" + sb.String())
}

func (m Model) renderFreeLists() string {
	var sb strings.Builder
	sb.WriteString(paneTitleStyle.Render("free lists"))
	sb.WriteString("\n")
	for lvl := 0; lvl < 4; lvl++ {
		spans := m.heap.LevelSpans(lvl)
		sb.WriteString(fmt.Sprintf("L%d (%d): ", lvl, len(spans)))
		for i, s := range spans {
			if i > 0 {
				sb.WriteString(" → ")
			}
			sb.WriteString(fmt.Sprintf("%d/%d", s.Off, s.Size))
			if i == 5 && len(spans) > 7 {
				sb.WriteString(fmt.Sprintf(" … +%d", len(spans)-6))
				break
			}
		}
		sb.WriteString("\n")
	}
	return paneStyle.Render(sb.String())
}

func (m Model) renderStats() string {
	st := m.heap.Stats()
	var sb strings.Builder
	sb.WriteString(paneTitleStyle.Render("stats"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("free    %d B\n", st.FreeBytes))
	sb.WriteString(fmt.Sprintf("live    %d B in %d ptrs\n", st.LiveBytes, len(m.live)))
	sb.WriteString(fmt.Sprintf("mallocs %d (+%d calloc)\n", st.MallocCalls, st.CallocCalls))
	sb.WriteString(fmt.Sprintf("frees   %d (%d ignored)\n", st.FreeCalls, st.IgnoredFrees))
	sb.WriteString(fmt.Sprintf("splits  %d, whole %d\n", st.Splits, st.WholeBlocks))
	sb.WriteString(fmt.Sprintf("merges  %dL %dR %dB\n", st.MergedLeft, st.MergedRight, st.MergedBoth))
	sb.WriteString(fmt.Sprintf("resize  %d in place, %d copied\n", st.ResizedInPlace, st.ReallocCopies))
	sb.WriteString(fmt.Sprintf("oom     %d\n", st.FailedAllocs))
	return paneStyle.Render(sb.String())
}

func (m Model) renderOpLog() string {
	var sb strings.Builder
	sb.WriteString(paneTitleStyle.Render("operations"))
	sb.WriteString("\n")
	if len(m.opLog) == 0 {
		sb.WriteString(statusStyle.Render("press s to start"))
	}
	for _, line := range m.opLog {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return paneStyle.Render(sb.String())
}

func (m Model) renderStatus() string {
	help := helpStyle.Render("m malloc · c calloc · f free · r realloc · s step · b burst · V validate · R reset · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, statusStyle.Render(m.statusLine), help)
}
