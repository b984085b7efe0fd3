package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Data-Corruption/logcollector/internal/collector"
	"github.com/Data-Corruption/logcollector/internal/config"
	"github.com/Data-Corruption/logcollector/internal/handoff"
)

func newRunCmd() *cobra.Command {
	var (
		pipeFD        int
		dataDir       string
		configPath    string
		supervisorPID int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the collector main loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(pipeFD, dataDir, configPath, supervisorPID)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&pipeFD, "pipe-fd", 0, "inherited file descriptor for the read end of the pipe (ignored on a -forklog respawn)")
	flags.StringVar(&dataDir, "data-dir", ".", "supervisor data directory, used to resolve a relative log_directory")
	flags.StringVar(&configPath, "config", "collector.conf", "path to the configuration file")
	flags.IntVar(&supervisorPID, "supervisor-pid", os.Getpid(), "supervisor process identifier, embedded in generated file names")

	return cmd
}

// run bootstraps and executes the collector. The supervisor's respawn flow
// execs the binary with a fixed five-element argv (program, -forklog, a
// supervisor-filled slot, the handle value, redirection_done) rather than
// the flags above, because the form is constructed by the supervisor's own
// argument marshaling, not a flag parser. We check for that form in
// os.Args directly, bypassing the flags entirely, before falling back to a
// flag-driven standalone invocation.
func run(pipeFD int, dataDir, configPath string, supervisorPID int) error {
	opts := collector.BootstrapOptions{
		ConfigPath:    configPath,
		DataDir:       dataDir,
		SupervisorPID: supervisorPID,
	}

	if handoff.IsRespawn(os.Args) {
		args, err := handoff.Parse(os.Args)
		if err != nil {
			return fmt.Errorf("logcollector run: %w", err)
		}
		opts.Handoff = args
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.Default()
	}
	opts.Config = cfg

	opts.PipeRead = os.NewFile(uintptr(pipeFD), "pipe-read")
	if opts.PipeRead == nil {
		return fmt.Errorf("logcollector run: invalid pipe file descriptor %d", pipeFD)
	}

	result, err := collector.Bootstrap(opts)
	if err != nil {
		return fmt.Errorf("logcollector run: bootstrap: %w", err)
	}

	return result.State.Run()
}
