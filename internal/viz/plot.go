// Package viz renders steering traces in the terminal: static asciigraph
// plots for saved runs and a bubbletea live view of the closed loop.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/steerlab/internal/sim"
)

const (
	plotHeight = 12
	plotWidth  = 72
)

// PlotSeries renders one series with a caption.
func PlotSeries(values []float64, caption string) string {
	if len(values) == 0 {
		return fmt.Sprintf("%s: no data", caption)
	}
	return asciigraph.Plot(values,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotRun renders the angle and offset traces of a run, with its metrics.
func PlotRun(result *sim.Result) string {
	var b strings.Builder

	b.WriteString(PlotSeries(result.Angles, "steering angle"))
	b.WriteString("\n\n")
	b.WriteString(PlotSeries(result.Offsets, "lateral offset"))
	b.WriteString("\n")

	if len(result.Metrics) > 0 {
		b.WriteString("\nmetrics:\n")
		for name, val := range result.Metrics {
			fmt.Fprintf(&b, "  %s: %.6f\n", name, val)
		}
	}
	if result.Dropouts > 0 {
		fmt.Fprintf(&b, "dropouts: %d\n", result.Dropouts)
	}

	return b.String()
}
