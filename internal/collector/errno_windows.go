//go:build windows

package collector

import (
	"errors"

	"golang.org/x/sys/windows"
)

// isFdExhaustion reports whether err is Windows' equivalent of running out
// of file handles (ERROR_TOO_MANY_OPEN_FILES), the condition a rotation
// should treat as transient and retry later rather than give up on.
func isFdExhaustion(err error) bool {
	return errors.Is(err, windows.ERROR_TOO_MANY_OPEN_FILES)
}
