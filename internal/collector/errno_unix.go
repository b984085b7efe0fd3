//go:build linux || darwin || freebsd || netbsd || openbsd

package collector

import (
	"errors"
	"syscall"
)

// isFdExhaustion reports whether err is the kind of "ran out of file
// descriptors" failure that a rotation should treat as transient and retry
// later rather than give up on: EMFILE (this process's own descriptor
// table is full) or ENFILE (the system-wide table is full). Both can
// clear on their own as other processes close files.
func isFdExhaustion(err error) bool {
	return errors.Is(err, syscall.EMFILE) || errors.Is(err, syscall.ENFILE)
}
