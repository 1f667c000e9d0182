package alloc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

type liveBlock struct {
	pattern byte
	payload int
}

// Test_Fuzz_RandomOps_GuardInvariants performs a long random sequence of
// malloc/calloc/realloc/free and validates the index invariants, the
// byte accounting, and payload integrity after every step.
func Test_Fuzz_RandomOps_GuardInvariants(t *testing.T) {
	const arenaSize = 8192
	h := newTestHeap(t, arenaSize)

	rng := rand.New(rand.NewSource(42)) // fixed seed for reproducibility
	live := make(map[Ptr]*liveBlock)
	var order []Ptr // deterministic victim selection

	fill := func(buf []byte, pat byte) {
		for i := range buf {
			buf[i] = pat
		}
	}
	checkIntact := func(p Ptr, lb *liveBlock) {
		t.Helper()
		buf := h.index.data[p : int(p)+lb.payload]
		for i, b := range buf {
			require.Equal(t, lb.pattern, b, "ptr %d corrupted at offset %d", p, i)
		}
	}
	pickVictim := func() int { return rng.Intn(len(order)) }

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(10); {
		case op < 4: // malloc
			n := int32(1 + rng.Intn(900))
			p, buf, err := h.Malloc(n)
			if err == nil {
				require.Zero(t, p%format.Alignment, "step %d: pointer unaligned", step)
				require.GreaterOrEqual(t, p, Ptr(format.MallocHeaderSize), "step %d", step)
				require.Less(t, int(p)+len(buf), arenaSize+1, "step %d", step)
				pat := byte(1 + rng.Intn(255))
				fill(buf, pat)
				live[p] = &liveBlock{pattern: pat, payload: len(buf)}
				order = append(order, p)
			} else {
				require.ErrorIs(t, err, ErrNoSpace, "step %d", step)
			}

		case op < 5: // calloc
			n := int32(1 + rng.Intn(400))
			p, buf, err := h.Calloc(n)
			if err == nil {
				for i, b := range buf {
					require.Zero(t, b, "step %d: calloc byte %d not zero", step, i)
				}
				pat := byte(1 + rng.Intn(255))
				fill(buf, pat)
				live[p] = &liveBlock{pattern: pat, payload: len(buf)}
				order = append(order, p)
			}

		case op < 8: // free
			if len(order) == 0 {
				continue
			}
			i := pickVictim()
			p := order[i]
			checkIntact(p, live[p])
			h.Free(p)
			delete(live, p)
			order = append(order[:i], order[i+1:]...)

		default: // realloc
			if len(order) == 0 {
				continue
			}
			i := pickVictim()
			p := order[i]
			lb := live[p]
			checkIntact(p, lb)
			n := int32(1 + rng.Intn(1200))
			q, buf, err := h.Realloc(n, p)
			if err != nil {
				// Exhaustion must leave the old block untouched.
				require.ErrorIs(t, err, ErrNoSpace, "step %d", step)
				checkIntact(p, lb)
				continue
			}
			// The common payload prefix must survive the resize.
			keep := lb.payload
			if len(buf) < keep {
				keep = len(buf)
			}
			for j := 0; j < keep; j++ {
				require.Equal(t, lb.pattern, buf[j], "step %d: realloc lost byte %d", step, j)
			}
			fill(buf, lb.pattern)
			delete(live, p)
			live[q] = &liveBlock{pattern: lb.pattern, payload: len(buf)}
			order[i] = q
		}

		require.NoError(t, h.Validate(), "step %d", step)

		// Live accounting: the headers of every live block must sum to
		// the heap's live byte count, and free + live must cover the
		// arena.
		var liveSum int32
		for p := range live {
			liveSum += format.ReadI32(h.index.data, int(p)-format.MallocHeaderSize)
		}
		require.Equal(t, h.LiveBytes(), liveSum, "step %d", step)
		require.Equal(t, int32(arenaSize), h.FreeBytes()+h.LiveBytes(), "step %d", step)
	}

	// Drain everything: the arena must fold back into one spanning block.
	for _, p := range order {
		h.Free(p)
	}
	require.NoError(t, h.Validate())
	for lvl := 0; lvl < numLevels; lvl++ {
		spans := h.LevelSpans(lvl)
		require.Len(t, spans, 1, "level %d", lvl)
		require.Equal(t, Span{Off: 0, Size: arenaSize, Level: 3}, spans[0])
	}
}

// Test_Fuzz_Determinism: the same seed drives the heap to the same final
// geometry.
func Test_Fuzz_Determinism(t *testing.T) {
	run := func() []Span {
		h := newTestHeap(t, 8192)
		rng := rand.New(rand.NewSource(7))
		var ptrs []Ptr
		for i := 0; i < 300; i++ {
			if rng.Intn(3) < 2 || len(ptrs) == 0 {
				p, _, err := h.Malloc(int32(1 + rng.Intn(500)))
				if err == nil {
					ptrs = append(ptrs, p)
				}
			} else {
				i := rng.Intn(len(ptrs))
				h.Free(ptrs[i])
				ptrs = append(ptrs[:i], ptrs[i+1:]...)
			}
		}
		return h.FreeSpans()
	}
	require.Equal(t, run(), run())
}
