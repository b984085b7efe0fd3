// Package config reads the collector's key=value configuration surface.
// The surrounding configuration system, which owns the full config file
// grammar, validation, and GUC machinery, is an external collaborator out
// of scope for the collector itself; this package implements only the
// sliver of it the collector needs to drive reload: load the five
// recognized keys from a file.
package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Recognized key names.
const (
	KeyRedirectStderr    = "redirect_stderr"
	KeyRotationAgeMins   = "rotation_age_minutes"
	KeyRotationSizeKiB   = "rotation_size_kib"
	KeyLogDirectory      = "log_directory"
	KeyLogFilenamePrefix = "log_filename_prefix"
)

// Defaults, matching the reference implementation exactly.
const (
	DefaultRedirectStderr    = false
	DefaultRotationAgeMins   = 1440
	DefaultRotationSizeKiB   = 10240
	DefaultLogDirectory      = "pg_log"
	DefaultLogFilenamePrefix = "postgresql-"
)

// Config holds the live, reread-at-each-reload-signal configuration values.
type Config struct {
	// RedirectStderr is read once at supervisor startup; immutable
	// thereafter. Changes post-startup are ignored.
	RedirectStderr bool

	// RotationAgeMinutes is non-negative; 0 disables time-based rotation.
	RotationAgeMinutes int
	// RotationSizeKiB is non-negative; 0 disables size-based rotation.
	RotationSizeKiB int

	// LogDirectory is either absolute or relative to the supervisor's data
	// directory.
	LogDirectory string
	// LogFilenamePrefix is prefixed onto every generated file name.
	LogFilenamePrefix string
}

// Default returns a Config populated with the reference implementation's
// defaults.
func Default() *Config {
	return &Config{
		RedirectStderr:     DefaultRedirectStderr,
		RotationAgeMinutes: DefaultRotationAgeMins,
		RotationSizeKiB:    DefaultRotationSizeKiB,
		LogDirectory:       DefaultLogDirectory,
		LogFilenamePrefix:  DefaultLogFilenamePrefix,
	}
}

// Load reads path and returns a Config seeded with defaults for any key
// that is absent from the file. Both a missing file and a malformed one
// are reported as errors; the caller decides whether that's fatal.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := Reload(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Reload rereads path into an existing Config in place. Keys absent from
// the file retain their current in-memory value rather than resetting to
// the library default, so that a config file only needs to mention the
// keys it wants to change.
func Reload(path string, cfg *Config) error {
	file, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("config: load %q: %w", path, err)
	}
	sec := file.Section("")

	if k, err := sec.GetKey(KeyRedirectStderr); err == nil {
		cfg.RedirectStderr = k.MustBool(cfg.RedirectStderr)
	}
	if k, err := sec.GetKey(KeyRotationAgeMins); err == nil {
		cfg.RotationAgeMinutes = k.MustInt(cfg.RotationAgeMinutes)
	}
	if k, err := sec.GetKey(KeyRotationSizeKiB); err == nil {
		cfg.RotationSizeKiB = k.MustInt(cfg.RotationSizeKiB)
	}
	if k, err := sec.GetKey(KeyLogDirectory); err == nil {
		cfg.LogDirectory = k.MustString(cfg.LogDirectory)
	}
	if k, err := sec.GetKey(KeyLogFilenamePrefix); err == nil {
		cfg.LogFilenamePrefix = k.MustString(cfg.LogFilenamePrefix)
	}

	return nil
}

// Snapshot returns a shallow copy that later changes to the live Config do
// not affect.
func (c *Config) Snapshot() Config {
	return *c
}
