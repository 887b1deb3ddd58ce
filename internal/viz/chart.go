package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/predprey/internal/sim"
)

// downsample thins a series to at most max points so wide runs still
// fit a terminal chart.
func downsample(data []float64, max int) []float64 {
	if len(data) <= max {
		return data
	}
	out := make([]float64, max)
	stride := float64(len(data)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		out[i] = data[int(float64(i)*stride)]
	}
	return out
}

// PopulationChart renders both species against time as a terminal
// line chart with a colored legend.
func PopulationChart(result *sim.Result, width, height int) string {
	rabbits := downsample(result.Series(0), width*2)
	foxes := downsample(result.Series(1), width*2)

	graph := asciigraph.PlotMany([][]float64{rabbits, foxes},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.Caption("population over time"),
	)

	return graph + "\n" + Legend() + "\n"
}

// SeriesChart renders a single series, captioned.
func SeriesChart(data []float64, caption string, width, height int) string {
	return asciigraph.Plot(downsample(data, width*2),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
