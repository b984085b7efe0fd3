package collector

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Data-Corruption/logcollector/internal/config"
	"github.com/Data-Corruption/logcollector/internal/handoff"
)

func TestBootstrapOpensInitialFile(t *testing.T) {
	dataDir := t.TempDir()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer w.Close()

	cfg := config.Default()
	cfg.LogDirectory = "pg_log"

	result, err := Bootstrap(BootstrapOptions{
		PipeRead:      r,
		Config:        cfg,
		ConfigPath:    filepath.Join(dataDir, "collector.conf"),
		DataDir:       dataDir,
		SupervisorPID: 99,
	})
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if !result.OpenedNewFile {
		t.Errorf("expected a freshly opened file, not an inherited handle")
	}
	if _, err := os.Stat(result.FilePath); err != nil {
		t.Errorf("expected log file to exist at %q: %v", result.FilePath, err)
	}
	if !strings.HasPrefix(filepath.Base(result.FilePath), "postgresql-00099_") {
		t.Errorf("unexpected file name: %s", result.FilePath)
	}
}

func TestBootstrapAdoptsInheritedHandle(t *testing.T) {
	dataDir := t.TempDir()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer w.Close()

	inherited, err := os.OpenFile(filepath.Join(dataDir, "inherited.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("open inherited file: %v", err)
	}

	result, err := Bootstrap(BootstrapOptions{
		PipeRead:      r,
		Config:        config.Default(),
		ConfigPath:    filepath.Join(dataDir, "collector.conf"),
		DataDir:       dataDir,
		SupervisorPID: 1,
		Handoff: &handoff.Args{
			HandleValue:     int(inherited.Fd()),
			RedirectionDone: false,
		},
	})
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if result.OpenedNewFile {
		t.Errorf("expected the inherited handle to be adopted, not a new file opened")
	}
}

// TestRunExitsCleanlyOnPipeEof is a happy-path scenario: writes land in the
// current log file in order, and Run returns promptly once all writer ends
// are closed.
func TestRunExitsCleanlyOnPipeEof(t *testing.T) {
	dataDir := t.TempDir()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	cfg := config.Default()
	cfg.LogDirectory = "pg_log"

	result, err := Bootstrap(BootstrapOptions{
		PipeRead:      r,
		Config:        cfg,
		ConfigPath:    filepath.Join(dataDir, "collector.conf"),
		DataDir:       dataDir,
		SupervisorPID: 7,
	})
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- result.State.Run() }()

	for i := 0; i < 5; i++ {
		if _, err := w.Write([]byte("hello\n")); err != nil {
			t.Fatalf("write: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}
	w.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not exit within 5s of pipe EOF")
	}

	got, err := os.ReadFile(result.FilePath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := strings.Repeat("hello\n", 5)
	if !strings.HasSuffix(string(got), want) {
		t.Errorf("log file = %q, want suffix %q", got, want)
	}
}
