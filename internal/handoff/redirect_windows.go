//go:build windows

package handoff

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// RedirectStandardStreamsToNull points the process's stdout and stderr at
// the null device. See the unix variant's doc comment for why.
func RedirectStandardStreamsToNull() error {
	null, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("handoff: open null device: %w", err)
	}
	defer null.Close()

	h := windows.Handle(null.Fd())
	if err := windows.SetStdHandle(windows.STD_OUTPUT_HANDLE, h); err != nil {
		return fmt.Errorf("handoff: redirect stdout: %w", err)
	}
	if err := windows.SetStdHandle(windows.STD_ERROR_HANDLE, h); err != nil {
		return fmt.Errorf("handoff: redirect stderr: %w", err)
	}
	return nil
}
