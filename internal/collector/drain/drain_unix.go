//go:build linux || darwin || freebsd || netbsd || openbsd

package drain

import (
	"errors"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/Data-Corruption/logcollector/internal/collector/sink"
)

const (
	readTimeout   = 1 * time.Second
	readBufferLen = 1024
)

// unixDrainer waits for readability on the pipe with a bounded deadline,
// then performs one bounded read. Grounded on the SetReadDeadline + Read
// pattern in veksh-mtail's pipestream.go, which is itself the stdlib's
// answer to "select() with a timeout on a pipe": os.File supports read
// deadlines on unix pipes without any third-party poller.
type unixDrainer struct {
	f   *os.File
	buf []byte
}

// isInterrupted reports whether err is a syscall interrupted by a signal,
// and therefore safe to retry immediately rather than treat as a failure.
func isInterrupted(err error) bool {
	return errors.Is(err, syscall.EINTR)
}

// New returns the bounded-wait Drainer. snk and onError are accepted for
// signature symmetry with the Windows worker-thread Drainer, which writes
// to the sink directly from its own goroutine; this variant instead hands
// chunks back to the caller's main loop to write.
func New(f *os.File, snk *sink.Sink, onError func(error)) Drainer {
	return &unixDrainer{f: f, buf: make([]byte, readBufferLen)}
}

func (d *unixDrainer) PumpOnce() Result {
	if err := d.f.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		// Treat a deadline-setting failure the same as a timed-out read: no
		// data, no EOF, try again next iteration.
		return Result{Outcome: Idle, Err: err}
	}

	n, err := d.f.Read(d.buf)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrDeadlineExceeded):
			// No writer had data ready within the bound; not an error.
			return Result{Outcome: Idle}
		case isInterrupted(err):
			// Interrupted system call: treat as a no-op timeout.
			return Result{Outcome: Idle}
		case errors.Is(err, io.EOF):
			return Result{Outcome: Eof}
		default:
			return Result{Outcome: Idle, Err: err}
		}
	}

	if n == 0 {
		// Readability was indicated but nothing was read: all writers have
		// closed their copy of the write end.
		return Result{Outcome: Eof}
	}

	chunk := make([]byte, n)
	copy(chunk, d.buf[:n])
	return Result{Outcome: Data, Chunk: chunk}
}

func (d *unixDrainer) Close() error { return nil }
