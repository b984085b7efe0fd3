package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Data-Corruption/logcollector/internal/collector/sink"
	"github.com/Data-Corruption/logcollector/internal/config"
	"github.com/Data-Corruption/logcollector/internal/diag"
)

// nameTimestampLayout is Go's reference-time spelling of "%Y-%m-%d_%H%M%S
// in local time".
const nameTimestampLayout = "2006-01-02_150405"

// logFileName computes the next output file's path, a pure function of its
// five inputs. dataDir is the supervisor's data directory, used only when
// logDirectory is relative.
func logFileName(dataDir, logDirectory, logFilenamePrefix string, supervisorPID int, when time.Time) string {
	fname := fmt.Sprintf("%s%05d_%s.log", logFilenamePrefix, supervisorPID, when.Format(nameTimestampLayout))
	dir := logDirectory
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(dataDir, logDirectory)
	}
	return filepath.Join(dir, fname)
}

// rotationRequested evaluates the three rotation conditions in order: a
// directory change (dirChanged, supplied by the reload coordinator)
// short-circuits the other two. now is injected for determinism in tests.
func rotationRequested(cfg *config.Config, dirChanged bool, lastRotation, now time.Time, currentSize int64) bool {
	if dirChanged {
		return true
	}
	if cfg.RotationAgeMinutes > 0 {
		if now.Sub(lastRotation) >= time.Duration(cfg.RotationAgeMinutes)*time.Minute {
			return true
		}
	}
	if cfg.RotationSizeKiB > 0 {
		if currentSize >= int64(cfg.RotationSizeKiB)*1024 {
			return true
		}
	}
	return false
}

// rotate performs the rotation procedure: compute the next path, open it,
// and swap it into snk. On a non-FD-exhaustion failure it disables
// auto-rotation in cfg in place, setting both thresholds to zero. On FD
// exhaustion it leaves cfg and the current file untouched so the next
// trigger retries naturally.
//
// Returns the new last-rotation time; callers should only update their
// tracked last_rotation_time when ok is true.
func rotate(snk *sink.Sink, cfg *config.Config, log *diag.Logger, dataDir string, supervisorPID int, now time.Time) (newLastRotation time.Time, ok bool) {
	path := logFileName(dataDir, cfg.LogDirectory, cfg.LogFilenamePrefix, supervisorPID, now)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Errorf("could not open new log file %q: %v", path, err)
		if isFdExhaustion(err) {
			log.Warn("rotation deferred: file descriptor table exhausted; will retry on next trigger")
			return time.Time{}, false
		}
		log.Error("disabling automatic rotation; re-enable via a reload")
		cfg.RotationAgeMinutes = 0
		cfg.RotationSizeKiB = 0
		return time.Time{}, false
	}

	if err := snk.Replace(f); err != nil {
		log.Errorf("error closing prior log file during rotation: %v", err)
	}
	return now, true
}
