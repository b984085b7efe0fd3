// Command logcollector is the collector process described by the spec:
// normally exec'd by a supervisor with a pipe and (on respawn) an inherited
// log file handle, but runnable stand-alone for development and testing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Data-Corruption/logcollector/internal/handoff"
)

func main() {
	root := newRootCmd()
	if handoff.IsRespawn(os.Args) {
		// The respawn argv is not flag syntax; hand it to the run subcommand
		// with its flag defaults, where run() decodes os.Args itself.
		root.SetArgs([]string{"run"})
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "logcollector",
		Short: "Drains a supervisor's stderr pipe into a rotating family of log files",
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newInitCmd())
	return root
}
