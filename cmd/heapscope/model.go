package main

import (
	"math/rand"

	"github.com/joshuapare/heapkit/alloc"
	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/internal/format"
)

// maxOpLog bounds the operation log pane.
const maxOpLog = 12

// Model is the main application model.
type Model struct {
	arenaSize int
	seed      int64
	heap      *alloc.Heap
	keys      KeyMap

	live []alloc.Ptr
	rng  *rand.Rand

	opLog      []string
	statusLine string
	checkErr   error

	width  int
	height int
}

// NewModel builds a fresh heap over a new arena.
func NewModel(arenaSize int, seed int64) (Model, error) {
	m := Model{
		arenaSize: arenaSize,
		seed:      seed,
		keys:      DefaultKeyMap(),
		rng:       rand.New(rand.NewSource(seed)),
	}
	if err := m.resetHeap(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) resetHeap() error {
	a, err := arena.New(m.arenaSize)
	if err != nil {
		return err
	}
	h, err := alloc.New(a)
	if err != nil {
		return err
	}
	m.heap = h
	m.live = nil
	m.opLog = nil
	m.checkErr = nil
	m.statusLine = "fresh arena"
	return nil
}

func (m *Model) logOp(s string) {
	m.opLog = append(m.opLog, s)
	if len(m.opLog) > maxOpLog {
		m.opLog = m.opLog[len(m.opLog)-maxOpLog:]
	}
	m.statusLine = s
}

// maxRequest keeps random requests in proportion to the arena.
func (m *Model) maxRequest() int {
	max := m.arenaSize / 16
	if max < format.MinAllocSize {
		max = format.MinAllocSize
	}
	return max
}
