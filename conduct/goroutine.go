package conduct

import (
	"runtime"
	"strconv"
	"strings"
)

// goroutineID returns the numeric id of the calling goroutine, parsed from
// the header line of its stack dump ("goroutine 123 [running]:").
//
// The runtime deliberately hides goroutine ids from normal code, but the
// monitor needs to know which goroutines belong to registered workers so it
// can tell a busy worker from a blocked one. Stack-dump parsing is the only
// stable way to get at that information.
func goroutineID() int64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)

	fields := strings.Fields(string(buf[:n]))
	if len(fields) < 2 {
		return 0
	}

	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0
	}

	return id
}

// goroutineStates captures the scheduler state of every live goroutine,
// keyed by id, from a full stack dump. State strings are the runtime's own:
// "running", "runnable", "chan receive", "select", "sync.Cond.Wait",
// "IO wait", "sleep", and so on.
func goroutineStates() map[int64]string {
	buf := make([]byte, 1<<20)

	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			buf = buf[:n]

			break
		}

		buf = make([]byte, 2*len(buf))
	}

	states := make(map[int64]string)

	for line := range strings.Lines(string(buf)) {
		rest, ok := strings.CutPrefix(line, "goroutine ")
		if !ok {
			continue
		}

		idText, rest, ok := strings.Cut(rest, " ")
		if !ok {
			continue
		}

		id, err := strconv.ParseInt(idText, 10, 64)
		if err != nil {
			continue
		}

		open := strings.IndexByte(rest, '[')
		closing := strings.IndexByte(rest, ']')

		if open < 0 || closing <= open {
			continue
		}

		state := rest[open+1 : closing]

		// Long waits get a duration suffix: "chan receive, 2 minutes".
		if comma := strings.IndexByte(state, ','); comma >= 0 {
			state = state[:comma]
		}

		states[id] = state
	}

	return states
}

// isRunnableState reports whether a goroutine in the given state is making
// (or about to make) progress on a CPU, as opposed to being parked in some
// wait.
func isRunnableState(state string) bool {
	switch state {
	case "running", "runnable", "syscall":
		return true
	default:
		return false
	}
}
