package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/heapkit/cmd/heapscope/logger"
)

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Malloc):
			m.doMalloc(false)
		case key.Matches(msg, m.keys.Calloc):
			m.doMalloc(true)
		case key.Matches(msg, m.keys.Free):
			m.doFree()
		case key.Matches(msg, m.keys.Realloc):
			m.doRealloc()
		case key.Matches(msg, m.keys.Step):
			m.doRandomOp()
		case key.Matches(msg, m.keys.Burst):
			for i := 0; i < 50; i++ {
				m.doRandomOp()
			}
			m.statusLine = "burst of 50 random operations"
		case key.Matches(msg, m.keys.Validate):
			m.runValidation()
		case key.Matches(msg, m.keys.Reset):
			if err := m.resetHeap(); err != nil {
				m.statusLine = fmt.Sprintf("reset failed: %v", err)
			}
		}
		m.runValidation()
		return m, nil
	}
	return m, nil
}

func (m *Model) doMalloc(zeroed bool) {
	n := int32(1 + m.rng.Intn(m.maxRequest()))
	name := "malloc"
	var p int32
	var err error
	if zeroed {
		name = "calloc"
		p, _, err = m.heap.Calloc(n)
	} else {
		p, _, err = m.heap.Malloc(n)
	}
	if err != nil {
		m.logOp(fmt.Sprintf("%s %d -> %v", name, n, err))
		return
	}
	m.live = append(m.live, p)
	m.logOp(fmt.Sprintf("%s %d -> ptr %d", name, n, p))
	logger.Debug("alloc", "op", name, "size", n, "ptr", p)
}

func (m *Model) doFree() {
	if len(m.live) == 0 {
		m.statusLine = "nothing to free"
		return
	}
	i := m.rng.Intn(len(m.live))
	p := m.live[i]
	m.heap.Free(p)
	m.live = append(m.live[:i], m.live[i+1:]...)
	m.logOp(fmt.Sprintf("free ptr %d", p))
	logger.Debug("free", "ptr", p)
}

func (m *Model) doRealloc() {
	if len(m.live) == 0 {
		m.statusLine = "nothing to realloc"
		return
	}
	i := m.rng.Intn(len(m.live))
	p := m.live[i]
	n := int32(1 + m.rng.Intn(m.maxRequest()))
	q, _, err := m.heap.Realloc(n, p)
	if err != nil {
		m.logOp(fmt.Sprintf("realloc ptr %d to %d -> %v", p, n, err))
		return
	}
	m.live[i] = q
	if q == p {
		m.logOp(fmt.Sprintf("realloc ptr %d to %d (in place)", p, n))
	} else {
		m.logOp(fmt.Sprintf("realloc ptr %d to %d -> moved to %d", p, n, q))
	}
	logger.Debug("realloc", "ptr", p, "size", n, "newPtr", q)
}

func (m *Model) doRandomOp() {
	switch op := m.rng.Intn(10); {
	case op < 4:
		m.doMalloc(false)
	case op < 5:
		m.doMalloc(true)
	case op < 8:
		m.doFree()
	default:
		m.doRealloc()
	}
}

func (m *Model) runValidation() {
	m.checkErr = m.heap.Validate()
	if m.checkErr != nil {
		logger.Error("invariants broken", "error", m.checkErr)
	}
}
