package collector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Data-Corruption/logcollector/internal/collector/sink"
	"github.com/Data-Corruption/logcollector/internal/config"
	"github.com/Data-Corruption/logcollector/internal/diag"
)

func writeConfigFile(t *testing.T, dir string, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "collector.conf")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func newTestLog(t *testing.T, dir string) *diag.Logger {
	t.Helper()
	f, err := os.OpenFile(filepath.Join(dir, "diag.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return diag.New(sink.New(f))
}

func TestProcessReloadDetectsDirectoryChange(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, "log_directory = b\n")

	cfg := config.Default()
	cfg.LogDirectory = "a"
	currentLogDir := "a"

	changed := processReload(path, cfg, &currentLogDir, newTestLog(t, dir))
	if !changed {
		t.Errorf("expected dirChanged = true")
	}
	if currentLogDir != "b" {
		t.Errorf("currentLogDir = %q, want %q", currentLogDir, "b")
	}
}

func TestProcessReloadNoChangeWhenDirectorySame(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, "log_directory = a\nrotation_size_kib = 500\n")

	cfg := config.Default()
	cfg.LogDirectory = "a"
	currentLogDir := "a"

	changed := processReload(path, cfg, &currentLogDir, newTestLog(t, dir))
	if changed {
		t.Errorf("expected dirChanged = false")
	}
	if cfg.RotationSizeKiB != 500 {
		t.Errorf("expected RotationSizeKiB updated to 500, got %d", cfg.RotationSizeKiB)
	}
}

func TestProcessReloadReportsMissingFileWithoutPanicking(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	currentLogDir := cfg.LogDirectory

	changed := processReload(filepath.Join(dir, "does-not-exist.conf"), cfg, &currentLogDir, newTestLog(t, dir))
	if changed {
		t.Errorf("expected dirChanged = false on reload failure")
	}
}
