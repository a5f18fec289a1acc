package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/circbuf/pkg/config"
	"github.com/Sumatoshi-tech/circbuf/pkg/report"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	var colorMode, title string

	cmd := &cobra.Command{
		Use:   "show <report.json|report.json.lz4>",
		Short: "Print a saved workload report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := report.ReadFile(args[0])
			if err != nil {
				return err
			}

			report.SetColorMode(colorMode)

			return report.WriteTable(cmd.OutOrStdout(), title, rep)
		},
	}

	cmd.Flags().StringVar(&colorMode, "color", config.DefaultReportColor, "Color output: auto, always, never")
	cmd.Flags().StringVar(&title, "title", config.DefaultReportTitle, "Table title")

	return cmd
}
