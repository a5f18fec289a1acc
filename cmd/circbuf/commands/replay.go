package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/circbuf/pkg/report"
	"github.com/Sumatoshi-tech/circbuf/pkg/scenario"
)

// NewReplayCommand creates the replay command.
func NewReplayCommand() *cobra.Command {
	var colorMode string

	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml|scenario.json>",
		Short: "Replay a scenario file and check its expectations",
		Long: `Validate a scenario file, replay its steps against a fresh buffer and
check every expectation. Exits non-zero when any expectation fails.

Examples:
  circbuf replay scenarios/wrap.yaml
  circbuf replay --color never scenarios/limit.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report.SetColorMode(colorMode)

			return runReplay(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	cmd.Flags().StringVar(&colorMode, "color", "auto", "Color output: auto, always, never")

	return cmd
}

func runReplay(ctx context.Context, w io.Writer, path string) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}

	res, err := scenario.Run(ctx, sc)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}

	writeReplay(w, sc, res)

	return res.Err()
}

func writeReplay(w io.Writer, sc *scenario.Scenario, res *scenario.Result) {
	pass := color.New(color.FgGreen, color.Bold).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()

	for _, f := range res.Failures {
		where := fmt.Sprintf("step %d (%s)", f.Step, f.Op)
		if f.Step == scenario.FinalStep {
			where = "final"
		}

		fmt.Fprintf(w, "%s %s: %s\n", fail("FAIL"), where, f.Message)
		writeDiff(w, f.Diff())
	}

	status := pass("PASS")
	if !res.Passed() {
		status = fail("FAIL")
	}

	fmt.Fprintf(w, "%s %s: %d/%d steps, %d failure(s), final %v\n",
		status, sc.Name, res.Executed, len(sc.Steps), len(res.Failures), res.Final)
}

// writeDiff prints a unified-style diff: "-" for expected, "+" for actual.
func writeDiff(w io.Writer, diffs []diffmatchpatch.Diff) {
	removed := color.New(color.FgRed).SprintFunc()
	added := color.New(color.FgGreen).SprintFunc()

	for _, d := range diffs {
		for line := range strings.Lines(d.Text) {
			line = strings.TrimSuffix(line, "\n")

			switch d.Type {
			case diffmatchpatch.DiffDelete:
				fmt.Fprintf(w, "    %s\n", removed("- "+line))
			case diffmatchpatch.DiffInsert:
				fmt.Fprintf(w, "    %s\n", added("+ "+line))
			case diffmatchpatch.DiffEqual:
				fmt.Fprintf(w, "      %s\n", line)
			}
		}
	}
}
