package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/ini.v1"

	"github.com/Data-Corruption/logcollector/internal/config"
	"github.com/Data-Corruption/logcollector/internal/xterm/prompt"
)

func newInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively write an initial configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "collector.conf", "path to write the configuration file")
	return cmd
}

// runInit prompts for the collector's tunables and writes them to
// configPath, giving operators the bootstrap UX the supervisor's own
// config system would otherwise have to provide. Grounded on
// syslogger.c's directory-creation step in SysLogger_Start, a related but
// distinct first-run concern.
func runInit(configPath string) error {
	defaults := config.Default()

	dir, err := prompt.String(fmt.Sprintf("log_directory [%s]", defaults.LogDirectory))
	if err != nil {
		return fmt.Errorf("logcollector init: %w", err)
	}
	if dir == "" {
		dir = defaults.LogDirectory
	}

	prefix, err := prompt.String(fmt.Sprintf("log_filename_prefix [%s]", defaults.LogFilenamePrefix))
	if err != nil {
		return fmt.Errorf("logcollector init: %w", err)
	}
	if prefix == "" {
		prefix = defaults.LogFilenamePrefix
	}

	ageMinutes, err := prompt.Uint(fmt.Sprintf("rotation_age_minutes (0 disables; a value is required, e.g. %d)", defaults.RotationAgeMinutes))
	if err != nil {
		return fmt.Errorf("logcollector init: %w", err)
	}

	sizeKiB, err := prompt.Uint(fmt.Sprintf("rotation_size_kib (0 disables; a value is required, e.g. %d)", defaults.RotationSizeKiB))
	if err != nil {
		return fmt.Errorf("logcollector init: %w", err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("logcollector init: create log directory: %w", err)
	}

	file := ini.Empty()
	sec := file.Section("")
	sec.Key(config.KeyLogDirectory).SetValue(dir)
	sec.Key(config.KeyLogFilenamePrefix).SetValue(prefix)
	sec.Key(config.KeyRotationAgeMins).SetValue(fmt.Sprintf("%d", ageMinutes))
	sec.Key(config.KeyRotationSizeKiB).SetValue(fmt.Sprintf("%d", sizeKiB))

	if err := file.SaveTo(configPath); err != nil {
		return fmt.Errorf("logcollector init: write %q: %w", configPath, err)
	}

	fmt.Printf("wrote %s\n", configPath)
	return nil
}
