//go:build windows

package signals

import (
	"os"
	"os/signal"
)

// Start installs what reload wiring Windows actually supports. Windows has
// no SIGHUP: there is no portable asynchronous "reread your config" signal
// on this platform, so reload here can only be driven by calling
// TriggerReload directly (for example from a named-pipe or HTTP control
// surface the supervisor implements; that surface is out of scope for the
// collector itself).
//
// os.Interrupt is still wired so the process doesn't die silently on
// Ctrl-C during manual testing; like on unix, it is otherwise ignored, and
// the collector exits only on pipe EOF.
func (c *Coordinator) Start() (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	go func() {
		for range ch {
			// Deliberately discarded, same rationale as the unix variant.
		}
	}()
	return func() {
		signal.Stop(ch)
		close(ch)
	}
}
