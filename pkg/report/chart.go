package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/circbuf/pkg/circbuf"
	"github.com/Sumatoshi-tech/circbuf/pkg/workload"
)

const (
	chartWidth  = "100%"
	chartHeight = "500px"

	colorLen  = "#5470c6"
	colorCap  = "#ee6666"
	colorGrow = "#fac858"

	lineWidth = 2
)

// WriteChart renders the length and capacity samples of rep as an HTML line
// chart, with one extra series marking where each growth landed.
func WriteChart(w io.Writer, title string, rep *workload.Report) error {
	samples := rep.Buffer.Samples

	labels := make([]string, len(samples))
	lens := make([]opts.LineData, len(samples))
	caps := make([]opts.LineData, len(samples))

	for i, s := range samples {
		labels[i] = strconv.Itoa(s.Step)
		lens[i] = opts.LineData{Value: s.Len}
		caps[i] = opts.LineData{Value: s.Cap}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("seed %d, %d ops, %d grows", rep.Seed, rep.Ops, len(rep.Buffer.Grows)),
			Left:     "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "10%", Left: "center"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}, opts.DataZoom{Type: "inside"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Step"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Slots"}),
		charts.WithGridOpts(opts.Grid{Top: "25%", Bottom: "15%", ContainLabel: opts.Bool(true)}),
	)
	line.SetXAxis(labels)

	line.AddSeries("Len", lens,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorLen}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
	)
	line.AddSeries("Cap", caps,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorCap}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth, Type: "dashed"}),
	)
	line.AddSeries("Grow", growMarks(samples, rep.Buffer.Grows),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorGrow}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: 0}),
	)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	return nil
}

// growMarks places each growth's new capacity at the first sample that
// reached it. Samples with no growth carry no value.
func growMarks(samples []workload.Sample, grows []circbuf.GrowEvent) []opts.LineData {
	marks := make([]opts.LineData, len(samples))

	next := 0

	for i, s := range samples {
		marks[i] = opts.LineData{Value: "-"}

		for next < len(grows) && grows[next].NewCap <= s.Cap {
			marks[i] = opts.LineData{Value: grows[next].NewCap}
			next++
		}
	}

	return marks
}
