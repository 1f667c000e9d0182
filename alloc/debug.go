package alloc

import (
	"fmt"
	"os"
)

// Runtime debug flag for allocation logging - controlled by the
// HEAPKIT_LOG_ALLOC environment variable.
var logAlloc = os.Getenv("HEAPKIT_LOG_ALLOC") != ""

// debugLogf prints debug messages when allocation logging is enabled.
func debugLogf(format string, args ...any) {
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] "+format+"\n", args...)
	}
}
