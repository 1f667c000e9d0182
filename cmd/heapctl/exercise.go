package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/alloc"
	"github.com/joshuapare/heapkit/arena"
)

var (
	exerciseOps       int
	exerciseSeed      int64
	exerciseArenaSize int
	exerciseMaxAlloc  int
	exerciseCheckEach bool
)

func init() {
	cmd := newExerciseCmd()
	cmd.Flags().IntVar(&exerciseOps, "ops", 10000, "Number of operations to run")
	cmd.Flags().Int64Var(&exerciseSeed, "seed", 1, "Workload random seed")
	cmd.Flags().IntVar(&exerciseArenaSize, "arena-size", 128*1024, "Arena size in bytes")
	cmd.Flags().IntVar(&exerciseMaxAlloc, "max-alloc", 2048, "Largest single request in bytes")
	cmd.Flags().BoolVar(&exerciseCheckEach, "check-each", false, "Validate invariants after every operation (slow)")
	rootCmd.AddCommand(cmd)
}

func newExerciseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Run a randomized workload with invariant checking",
		Long: `The exercise command drives a fresh arena through a seeded random
mix of malloc, calloc, realloc, and free, validating the free-index
invariants along the way and reporting allocator statistics at the end.

Example:
  heapctl exercise
  heapctl exercise --ops 100000 --seed 7 --arena-size 262144
  heapctl exercise --check-each --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExercise()
		},
	}
	return cmd
}

func runExercise() error {
	a, err := arena.New(exerciseArenaSize)
	if err != nil {
		return fmt.Errorf("failed to create arena: %w", err)
	}
	h, err := alloc.New(a)
	if err != nil {
		return fmt.Errorf("failed to create heap: %w", err)
	}

	printVerbose("Arena: %d bytes, seed %d, %d ops\n", exerciseArenaSize, exerciseSeed, exerciseOps)

	rng := rand.New(rand.NewSource(exerciseSeed))
	var live []alloc.Ptr

	for i := 0; i < exerciseOps; i++ {
		switch op := rng.Intn(10); {
		case op < 4:
			n := int32(1 + rng.Intn(exerciseMaxAlloc))
			if p, _, mErr := h.Malloc(n); mErr == nil {
				live = append(live, p)
			}
		case op < 5:
			n := int32(1 + rng.Intn(exerciseMaxAlloc))
			if p, _, cErr := h.Calloc(n); cErr == nil {
				live = append(live, p)
			}
		case op < 8:
			if len(live) == 0 {
				continue
			}
			j := rng.Intn(len(live))
			h.Free(live[j])
			live = append(live[:j], live[j+1:]...)
		default:
			if len(live) == 0 {
				continue
			}
			j := rng.Intn(len(live))
			n := int32(1 + rng.Intn(exerciseMaxAlloc))
			if q, _, rErr := h.Realloc(n, live[j]); rErr == nil {
				live[j] = q
			}
		}

		if exerciseCheckEach {
			if vErr := h.Validate(); vErr != nil {
				return fmt.Errorf("invariants broken after op %d: %w", i, vErr)
			}
		}
	}

	if err := h.Validate(); err != nil {
		return fmt.Errorf("invariants broken at end of workload: %w", err)
	}

	// Drain and confirm the arena folds back into one block.
	for _, p := range live {
		h.Free(p)
	}
	if err := h.Validate(); err != nil {
		return fmt.Errorf("invariants broken after drain: %w", err)
	}
	if spans := h.FreeSpans(); len(spans) != 1 {
		return fmt.Errorf("arena did not coalesce after drain: %d spans remain", len(spans))
	}

	st := h.Stats()
	if jsonOut {
		return printJSON(st)
	}

	printInfo("Workload complete: %d ops, invariants held\n\n", exerciseOps)
	printInfo("Arena:    %d bytes (%d free after drain)\n", st.ArenaSize, h.FreeBytes())
	printInfo("Calls:    %d malloc, %d calloc, %d realloc, %d free\n",
		st.MallocCalls, st.CallocCalls, st.ReallocCalls, st.FreeCalls)
	printInfo("Failures: %d exhausted, %d frees ignored\n", st.FailedAllocs, st.IgnoredFrees)
	printInfo("Index:    %d splits, %d whole-block allocs\n", st.Splits, st.WholeBlocks)
	printInfo("Merges:   %d left, %d right, %d both, %d isolated inserts\n",
		st.MergedLeft, st.MergedRight, st.MergedBoth, st.Inserted)
	printInfo("Resizes:  %d in place, %d copied, %d rejected\n",
		st.ResizedInPlace, st.ReallocCopies, st.ResizeRejected)
	return nil
}
