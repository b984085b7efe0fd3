//go:build linux || darwin || freebsd || netbsd || openbsd

package handoff

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// RedirectStandardStreamsToNull points the process's stdout and stderr at
// the null device. Used when RedirectionDone is true on startup: the
// supervisor has already wired our stderr into our own input pipe, which
// is useless and would interfere with EOF detection, so we point it
// elsewhere before the main loop starts.
func RedirectStandardStreamsToNull() error {
	null, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("handoff: open null device: %w", err)
	}
	defer null.Close()

	if err := unix.Dup2(int(null.Fd()), int(os.Stdout.Fd())); err != nil {
		return fmt.Errorf("handoff: redirect stdout: %w", err)
	}
	if err := unix.Dup2(int(null.Fd()), int(os.Stderr.Fd())); err != nil {
		return fmt.Errorf("handoff: redirect stderr: %w", err)
	}
	return nil
}
