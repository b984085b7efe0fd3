//go:build linux || darwin || freebsd || netbsd || openbsd

package collector

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/Data-Corruption/logcollector/internal/collector/sink"
	"github.com/Data-Corruption/logcollector/internal/config"
	"github.com/Data-Corruption/logcollector/internal/diag"
)

// TestRotateLeavesConfigAndFileUntouchedOnFdExhaustion forces EMFILE by
// lowering RLIMIT_NOFILE below the process's current descriptor count, then
// confirms rotate's other failure branch: cfg's thresholds are left alone
// and the current file keeps accepting writes.
func TestRotateLeavesConfigAndFileUntouchedOnFdExhaustion(t *testing.T) {
	dir := t.TempDir()
	snk := newTestSink(t, dir, "old.log")
	defer snk.Close()
	log := diag.New(sink.New(mustCreate(t, dir, "diag.log")))

	var orig syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &orig); err != nil {
		t.Skipf("Getrlimit(RLIMIT_NOFILE): %v", err)
	}
	defer syscall.Setrlimit(syscall.RLIMIT_NOFILE, &orig)

	// Cur only needs to sit below the process's already-open descriptor
	// count; existing descriptors stay valid, but the next open() fails.
	lowered := orig
	lowered.Cur = 3
	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &lowered); err != nil {
		t.Skipf("Setrlimit(RLIMIT_NOFILE): %v", err)
	}

	cfg := &config.Config{LogDirectory: dir, LogFilenamePrefix: "postgresql-", RotationAgeMinutes: 5, RotationSizeKiB: 5}
	_, ok := rotate(snk, cfg, log, "", 1, time.Now())
	if ok {
		t.Fatalf("expected rotate to fail under file descriptor exhaustion")
	}
	if cfg.RotationAgeMinutes != 5 || cfg.RotationSizeKiB != 5 {
		t.Errorf("expected thresholds untouched, got age=%d size=%d", cfg.RotationAgeMinutes, cfg.RotationSizeKiB)
	}

	// Restore the limit before exercising anything that needs a fresh
	// descriptor of its own (the write below already uses snk's existing
	// handle, but ReadFile needs to open one to verify it).
	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &orig); err != nil {
		t.Fatalf("restore RLIMIT_NOFILE: %v", err)
	}

	if _, err := snk.Write([]byte("still alive\n")); err != nil {
		t.Fatalf("write to old file after failed rotation: %v", err)
	}

	old := filepath.Join(dir, "old.log")
	got, err := os.ReadFile(old)
	if err != nil {
		t.Fatalf("ReadFile(%q): %v", old, err)
	}
	if string(got) != "still alive\n" {
		t.Errorf("old file contents = %q, want %q", got, "still alive\n")
	}
}
