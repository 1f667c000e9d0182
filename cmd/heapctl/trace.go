package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/alloc"
	"github.com/joshuapare/heapkit/arena"
)

var traceArenaSize int

func init() {
	cmd := newTraceCmd()
	cmd.Flags().IntVar(&traceArenaSize, "arena-size", 128*1024, "Arena size in bytes")
	rootCmd.AddCommand(cmd)
}

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <file>",
		Short: "Replay an operation trace against a fresh arena",
		Long: `The trace command replays a textual operation trace and prints the
resulting free-list geometry. Each line is one operation; allocations are
numbered in order and later lines refer to them by that number.

Trace format:
  malloc <bytes>
  calloc <bytes>
  realloc <id> <bytes>
  free <id>

Lines starting with # and blank lines are ignored.

Example:
  heapctl trace workload.txt
  heapctl trace workload.txt --arena-size 4096 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(args[0])
		},
	}
	return cmd
}

func runTrace(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	a, err := arena.New(traceArenaSize)
	if err != nil {
		return fmt.Errorf("failed to create arena: %w", err)
	}
	h, err := alloc.New(a)
	if err != nil {
		return fmt.Errorf("failed to create heap: %w", err)
	}

	// id -> user pointer; freed entries keep their slot so ids stay stable.
	ptrs := map[int]alloc.Ptr{}
	nextID := 0

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		fail := func(err error) error {
			return fmt.Errorf("line %d: %q: %w", lineNo, line, err)
		}

		switch fields[0] {
		case "malloc", "calloc":
			n, err := traceSize(fields, 2)
			if err != nil {
				return fail(err)
			}
			var p alloc.Ptr
			if fields[0] == "malloc" {
				p, _, err = h.Malloc(n)
			} else {
				p, _, err = h.Calloc(n)
			}
			if err != nil {
				return fail(err)
			}
			ptrs[nextID] = p
			printVerbose("#%d = %s %d -> ptr %d\n", nextID, fields[0], n, p)
			nextID++

		case "realloc":
			if len(fields) != 3 {
				return fail(fmt.Errorf("want: realloc <id> <bytes>"))
			}
			id, err := strconv.Atoi(fields[1])
			if err != nil {
				return fail(err)
			}
			p, ok := ptrs[id]
			if !ok {
				return fail(fmt.Errorf("unknown allocation #%d", id))
			}
			n, err := strconv.ParseInt(fields[2], 10, 32)
			if err != nil {
				return fail(err)
			}
			q, _, err := h.Realloc(int32(n), p)
			if err != nil {
				return fail(err)
			}
			ptrs[id] = q
			printVerbose("#%d realloc %d -> ptr %d\n", id, n, q)

		case "free":
			if len(fields) != 2 {
				return fail(fmt.Errorf("want: free <id>"))
			}
			id, err := strconv.Atoi(fields[1])
			if err != nil {
				return fail(err)
			}
			p, ok := ptrs[id]
			if !ok {
				return fail(fmt.Errorf("unknown allocation #%d", id))
			}
			h.Free(p)
			delete(ptrs, id)
			printVerbose("#%d freed\n", id)

		default:
			return fail(fmt.Errorf("unknown operation %q", fields[0]))
		}

		if err := h.Validate(); err != nil {
			return fail(fmt.Errorf("invariants broken: %w", err))
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read trace: %w", err)
	}

	return reportSpans(h)
}

func traceSize(fields []string, want int) (int32, error) {
	if len(fields) != want {
		return 0, fmt.Errorf("want: %s <bytes>", fields[0])
	}
	n, err := strconv.ParseInt(fields[1], 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}
