package region

import (
	"fmt"
	"os"
)

// debugRegion gates the package's debug-build assertions: violations are
// fatal in debug builds, and the checks are skipped entirely otherwise.
const debugRegion = true

// verboseAlloc gates runtime allocation logging, controlled by an env
// var. A pure allocator library has no structured logging dependency of
// its own; this is the ambient logging knob this package carries.
var verboseAlloc = os.Getenv("HEAPCORE_LOG_ALLOC") != ""

// assertInvariant panics with msg if cond is false and debugRegion is
// enabled. In a release build the check is skipped entirely rather than
// paying for it on the hot path.
func assertInvariant(cond bool, msg string) {
	if debugRegion && !cond {
		panic("region: invariant violated: " + msg)
	}
}

// debugLogf prints an allocation-tracing message if verboseAlloc is set.
func debugLogf(format string, args ...any) {
	if verboseAlloc {
		fmt.Fprintf(os.Stderr, "[region] "+format+"\n", args...)
	}
}
