// Package report renders workload reports as terminal tables, HTML charts
// and JSON files.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/circbuf/pkg/safeconv"
	"github.com/Sumatoshi-tech/circbuf/pkg/workload"
)

// slotBytes is the size of one int slot, used for the memory estimate.
const slotBytes = 8

const noValue = "-"

// SetColorMode applies "always", "never" or "auto" to fatih/color output.
// "auto" keeps the library's terminal detection.
func SetColorMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false //nolint:reassign // intentional override of library global
	case "never":
		color.NoColor = true //nolint:reassign // intentional override of library global
	}
}

// WriteTable renders rep as a per-op latency table followed by a summary.
func WriteTable(w io.Writer, title string, rep *workload.Report) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Header = text.FormatDefault
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.SetTitle(title)

	header := table.Row{"Op", "Count", "Mean", "P50", "P99", "Max"}
	if rep.Baseline != nil {
		header = append(header, "Baseline P50", "Baseline P99")
	}

	tbl.AppendHeader(header)
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})

	for _, op := range workload.Ops {
		l, ok := rep.Buffer.Latency[op]
		if !ok {
			continue
		}

		row := table.Row{
			string(op),
			humanize.Comma(int64(l.Count)),
			formatDuration(l.Mean),
			formatDuration(l.P50),
			formatDuration(l.P99),
			formatDuration(l.Max),
		}

		if rep.Baseline != nil {
			if bl, ok := rep.Baseline.Latency[op]; ok {
				row = append(row, formatDuration(bl.P50), formatDuration(bl.P99))
			} else {
				row = append(row, noValue, noValue)
			}
		}

		tbl.AppendRow(row)
	}

	tbl.AppendFooter(table.Row{"Total", humanize.Comma(int64(rep.Buffer.Executed))})
	tbl.Render()

	return writeSummary(w, rep)
}

func writeSummary(w io.Writer, rep *workload.Report) error {
	res := rep.Buffer

	var lenNow, capNow int

	var grows, relocated, swaps int64

	if res.Stats != nil {
		lenNow, capNow = res.Stats.Len, res.Stats.Cap
		grows, relocated, swaps = res.Stats.Grows, res.Stats.Relocated, res.Stats.Swaps
	}

	lines := []string{
		fmt.Sprintf("seed %d, %s ops: %s executed, %s skipped, %s rejected",
			rep.Seed, humanize.Comma(int64(rep.Ops)), humanize.Comma(int64(res.Executed)),
			humanize.Comma(int64(res.Skipped)), humanize.Comma(int64(res.Rejected))),
		fmt.Sprintf("final len %s, cap %s (~%s), %s grows, %s relocated, %s rotation swaps",
			humanize.Comma(int64(lenNow)), humanize.Comma(int64(capNow)),
			humanize.IBytes(safeconv.MustIntToUint64(capNow)*slotBytes),
			humanize.Comma(grows), humanize.Comma(relocated), humanize.Comma(swaps)),
		fmt.Sprintf("%s: %s ops/s", res.Name, humanize.CommafWithDigits(res.OpsPerSecond(), 0)),
	}

	if rep.Baseline != nil {
		lines = append(lines, fmt.Sprintf("%s: %s ops/s (%s skipped)",
			rep.Baseline.Name, humanize.CommafWithDigits(rep.Baseline.OpsPerSecond(), 0),
			humanize.Comma(int64(rep.Baseline.Skipped))))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	verdict := color.New(color.FgYellow)
	msg := "not verified against the reference model"

	if rep.Verified {
		verdict = color.New(color.FgGreen)
		msg = "verified against the reference model"
	}

	if _, err := verdict.Fprintln(w, msg); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}

// formatDuration prints sub-microsecond values in nanoseconds and larger
// ones with two decimals.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d)/float64(time.Microsecond))
	default:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	}
}
