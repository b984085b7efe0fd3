// Package drain implements Pipe Drain: moving opaque bytes from the
// supervisor's shared pipe to the File Sink until end-of-file, without
// blocking long enough to starve rotation and reload checks.
//
// Two platform-specific implementations exist behind the same Drainer
// interface, mirroring the split between unix and windows rotation locking
// in github.com/Data-Corruption/stdx/xlog/rlog: a bounded-wait-then-read
// Drainer for platforms where read deadlines work on pipes, and a
// background-worker Drainer for platforms (Windows) where they don't.
package drain

// Outcome classifies the result of one PumpOnce call.
type Outcome int

const (
	// Idle means no data arrived within the bounded wait; the caller should
	// go on to check rotation and reload state.
	Idle Outcome = iota
	// Data means Chunk holds bytes read from the pipe that the caller must
	// hand to the File Sink.
	Data
	// Eof means the pipe's write end has no remaining holders.
	Eof
)

// Result is returned by one PumpOnce call.
type Result struct {
	Outcome Outcome
	Chunk   []byte // valid only when Outcome == Data
	Err     error  // non-nil for a reportable error that was treated as Idle
}

// Drainer pumps bytes from a pipe read end, waiting up to roughly one
// second per call.
type Drainer interface {
	// PumpOnce waits for readability (or, on the worker-thread variant,
	// simply yields for the polling interval) and returns one Result.
	PumpOnce() Result
	// Close releases resources owned by the Drainer. It does not close the
	// underlying pipe handle, which is owned by the caller.
	Close() error
}
