// Package handoff implements handle passing: decoding the five-element
// respawn argument list the supervisor execs the collector with, and
// adopting the inherited file handle it may carry, without the rest of
// the collector parsing integers out of argv directly.
//
// Grounded on original_source/syslogger.c's syslogger_forkexec /
// syslogger_parseArgs pair, and on the FD-passing-across-exec pattern in
// Ankit-Kulkarni-go-experiments/graceful_restarts/SocketHandoff (ExtraFiles
// plus a numeric handle encoded as a string argument).
package handoff

import (
	"fmt"
	"os"
	"strconv"
)

// Marker is the second argv element identifying a respawn invocation.
const Marker = "-forklog"

// NoHandle is the sentinel HandleValue meaning "no inherited file".
const NoHandle = -1

// Args is the decoded form of the respawn argument list.
type Args struct {
	// HandleValue is the inherited file's numeric descriptor/handle, or
	// NoHandle if none was passed.
	HandleValue int
	// RedirectionDone records whether the supervisor has already attached
	// its own and its children's standard error to the pipe.
	RedirectionDone bool
}

// Encode builds the five-element argv the supervisor execs the collector
// with: program name, Marker, a supervisor-filled slot (reserved for the
// supervisor's own bookkeeping, passed through unchanged), the handle value,
// and the redirection-done flag.
func Encode(programName, supervisorSlot string, a Args) []string {
	handleStr := strconv.Itoa(a.HandleValue)
	doneStr := "0"
	if a.RedirectionDone {
		doneStr = "1"
	}
	return []string{programName, Marker, supervisorSlot, handleStr, doneStr}
}

// IsRespawn reports whether argv (os.Args) names a respawn invocation.
func IsRespawn(argv []string) bool {
	return len(argv) >= 2 && argv[1] == Marker
}

// Parse decodes a respawn argv. argv must have exactly five elements, the
// second of which is Marker, matching the reference implementation's
// `Assert(argc == 5)`.
func Parse(argv []string) (*Args, error) {
	if len(argv) != 5 {
		return nil, fmt.Errorf("handoff: expected 5 args, got %d", len(argv))
	}
	if argv[1] != Marker {
		return nil, fmt.Errorf("handoff: argv[1] = %q, want %q", argv[1], Marker)
	}
	handleValue, err := strconv.Atoi(argv[3])
	if err != nil {
		return nil, fmt.Errorf("handoff: invalid handle value %q: %w", argv[3], err)
	}
	redirectionDone := argv[4] == "1"
	return &Args{HandleValue: handleValue, RedirectionDone: redirectionDone}, nil
}

// InheritedFile adopts the handle named by a.HandleValue as an *os.File
// opened for append, or reports ok=false if there is none (HandleValue is
// NoHandle or, on the historical Windows encoding, 0).
func InheritedFile(a Args, name string) (f *os.File, ok bool) {
	if a.HandleValue == NoHandle || a.HandleValue == 0 {
		return nil, false
	}
	return os.NewFile(uintptr(a.HandleValue), name), true
}
