package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/circbuf/pkg/scenario"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml|scenario.json>",
		Short: "Check a scenario file against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read scenario: %w", err)
			}

			violations, err := scenario.Validate(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			w := cmd.OutOrStdout()

			if len(violations) == 0 {
				fmt.Fprintf(w, "%s %s\n", color.GreenString("VALID"), args[0])

				return nil
			}

			for _, v := range violations {
				fmt.Fprintf(w, "  %s %s\n", color.RedString("-"), v)
			}

			return fmt.Errorf("%s: %w: %d violation(s)", args[0], scenario.ErrSchema, len(violations))
		},
	}
}
