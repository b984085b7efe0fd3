//go:build windows

package drain

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/Data-Corruption/logcollector/internal/collector/sink"
)

const pollInterval = 1 * time.Second

// windowsDrainer runs a dedicated goroutine performing unbounded blocking
// reads, the same shape as the reference implementation's pipeThread.
// WaitForSingleObject does not work on unnamed pipes, so there is no way to
// wait-with-timeout on the read side on Windows. The worker writes directly
// to the Sink (which serializes against rotation internally) and signals
// EOF by setting eofSeen.
type windowsDrainer struct {
	eofSeen atomic.Bool
	done    chan struct{}
}

// isInterrupted is always false on Windows: its blocking ReadFile has no
// EINTR equivalent to retry around, unlike the unix variant.
func isInterrupted(err error) bool {
	return false
}

// New starts the background worker and returns a Drainer whose PumpOnce
// just polls eofSeen once per second, letting the main loop continue to
// check rotation and reload state at the same cadence as the unix variant.
func New(f *os.File, snk *sink.Sink, onError func(error)) Drainer {
	d := &windowsDrainer{done: make(chan struct{})}
	go d.run(f, snk, onError)
	return d
}

func (d *windowsDrainer) run(f *os.File, snk *sink.Sink, onError func(error)) {
	defer close(d.done)
	buf := make([]byte, 1024)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			if _, werr := snk.Write(buf[:n]); werr != nil && onError != nil {
				onError(werr)
			}
		}
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			if err != io.EOF && onError != nil {
				onError(err)
			}
			d.eofSeen.Store(true)
			return
		}
	}
}

func (d *windowsDrainer) PumpOnce() Result {
	select {
	case <-d.done:
		return Result{Outcome: Eof}
	default:
	}
	time.Sleep(pollInterval)
	if d.eofSeen.Load() {
		return Result{Outcome: Eof}
	}
	return Result{Outcome: Idle}
}

func (d *windowsDrainer) Close() error { return nil }
