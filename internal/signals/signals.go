// Package signals implements the Signal/Config Coordinator's boundary
// between signal-safe code and general code.
//
// The reload handler performs exactly one atomic store and nothing else:
// no I/O, no allocation, no non-signal-safe calls. All other signal
// installation (ignore termination signals so the collector outlives
// every writer; reset job-control signals to default) lives in the
// platform-specific files in this package.
package signals

import "sync/atomic"

// Coordinator holds reload_requested, the only state the signal layer may
// mutate, as an atomic boolean.
type Coordinator struct {
	reloadRequested atomic.Bool
}

// New constructs a Coordinator with no reload pending.
func New() *Coordinator {
	return &Coordinator{}
}

// PollAndClear reports whether a reload was requested since the last call,
// atomically clearing the flag. Callers should process the reload if this
// returns true.
func (c *Coordinator) PollAndClear() bool {
	return c.reloadRequested.Swap(false)
}

// TriggerReload sets reload_requested. It is exactly what the signal
// handler does, and is also exposed directly so tests (and, on platforms
// with no real reload signal, callers) can request a reload without going
// through a signal at all.
func (c *Coordinator) TriggerReload() {
	c.reloadRequested.Store(true)
}
