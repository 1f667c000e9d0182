package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/heapkit/cmd/heapscope/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	args := os.Args[1:]
	debugMode := false
	arenaSize := 64 * 1024
	seed := int64(1)

	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			debugMode = true
		} else {
			filteredArgs = append(filteredArgs, arg)
		}
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	for i := 0; i < len(filteredArgs); i++ {
		switch filteredArgs[i] {
		case "--help", "-h":
			printUsage()
			os.Exit(0)
		case "--version", "-v":
			fmt.Printf("heapscope %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built: %s\n", date)
			os.Exit(0)
		case "--arena-size":
			i++
			if i >= len(filteredArgs) {
				fmt.Fprintln(os.Stderr, "Error: --arena-size needs a value")
				os.Exit(1)
			}
			n, err := strconv.Atoi(filteredArgs[i])
			if err != nil || n <= 0 {
				fmt.Fprintf(os.Stderr, "Error: bad arena size %q\n", filteredArgs[i])
				os.Exit(1)
			}
			arenaSize = n
		case "--seed":
			i++
			if i >= len(filteredArgs) {
				fmt.Fprintln(os.Stderr, "Error: --seed needs a value")
				os.Exit(1)
			}
			n, err := strconv.ParseInt(filteredArgs[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: bad seed %q\n", filteredArgs[i])
				os.Exit(1)
			}
			seed = n
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown argument %q\n", filteredArgs[i])
			printUsage()
			os.Exit(1)
		}
	}

	logger.Info("starting heapscope", "arenaSize", arenaSize, "seed", seed, "debug", debugMode)

	m, err := NewModel(arenaSize, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`heapscope - interactive viewer for the heapkit arena allocator

Usage:
  heapscope [--arena-size <bytes>] [--seed <n>] [--debug]

Keys (inside the UI):
  m  malloc a random size        f  free a random allocation
  c  calloc a random size        r  realloc a random allocation
  s  one random operation        b  burst of 50 random operations
  V  re-run invariant checks     R  reset the arena
  q  quit`)
}
