// pkg/configure/state.go
package configure

import "fmt"

// State is a step of a configuration run
type State string

const (
	Init             State = "INIT"
	DetectPlatform   State = "DETECT_PLATFORM"
	SelectFlags      State = "SELECT_FLAGS"
	ProbeLibraries   State = "PROBE_LIBRARIES"
	ProbeHeaders     State = "PROBE_HEADERS"
	ProbeExecutables State = "PROBE_EXECUTABLES"
	Emit             State = "EMIT"
	Done             State = "DONE"
	Aborted          State = "ABORTED"
)

// sequence is the single forward path through a run
var sequence = []State{
	Init,
	DetectPlatform,
	SelectFlags,
	ProbeLibraries,
	ProbeHeaders,
	ProbeExecutables,
	Emit,
	Done,
}

// IsTerminal reports whether no further transition is possible
func IsTerminal(s State) bool {
	return s == Done || s == Aborted
}

// canAbort reports whether a failure in s may move the run to Aborted
func canAbort(s State) bool {
	switch s {
	case ProbeLibraries, ProbeHeaders, ProbeExecutables, Emit:
		return true
	default:
		return false
	}
}

func isAllowedTransition(from, to State) bool {
	if to == Aborted {
		return canAbort(from)
	}
	for i := 0; i < len(sequence)-1; i++ {
		if sequence[i] == from {
			return sequence[i+1] == to
		}
	}
	return false
}

// transition moves *cur to next, rejecting anything off the forward path
func transition(cur *State, next State) error {
	if !isAllowedTransition(*cur, next) {
		return fmt.Errorf("disallowed transition: %s -> %s", *cur, next)
	}
	*cur = next
	return nil
}
