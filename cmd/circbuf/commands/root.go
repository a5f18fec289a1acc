// Package commands implements CLI command handlers for circbuf.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/circbuf/pkg/version"
)

// NewRootCommand builds the circbuf command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "circbuf",
		Short: "circbuf - ring buffer deque workloads and scenarios",
		Long: `circbuf exercises the ring-backed deque container.

Commands:
  bench     Run a generated workload and report latencies
  replay    Replay a scenario file and check its expectations
  validate  Check a scenario file against the schema
  show      Print a saved workload report`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewBenchCommand())
	rootCmd.AddCommand(NewReplayCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "circbuf %s\n", version.String())
		},
	}
}
