package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/predprey/internal/sim"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(10, 5)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("pixel not set")
	}

	// out of bounds must be a no-op
	c.Set(-1, 0)
	c.Set(100, 100)
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("line drew nothing")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(4, 2)
	out := c.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 rows, got %d", len(lines))
	}
}

func TestPhasePlot(t *testing.T) {
	states := []sim.State{{10, 4}, {9, 5}, {8, 6}, {7, 5}, {8, 4}}

	out := PhasePlot(states, 40, 10)
	if out == "" {
		t.Fatal("expected plot output")
	}
	if !strings.Contains(out, "rabbits: 7.00 .. 10.00") {
		t.Errorf("missing axis range line:\n%s", out)
	}

	if PhasePlot([]sim.State{{1, 1}}, 40, 10) != "" {
		t.Error("single point should render nothing")
	}
}

func TestTimeSeriesToSVG(t *testing.T) {
	times := []float64{0, 1, 2}
	states := []sim.State{{10, 4}, {9, 5}, {8, 6}}

	svg := TimeSeriesToSVG(times, states, 800, 400)
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if strings.Count(svg, "<path") != 2 {
		t.Errorf("expected two series paths:\n%s", svg)
	}

	if TimeSeriesToSVG(times[:1], states[:1], 800, 400) != "" {
		t.Error("degenerate input should render nothing")
	}
}

func TestPhaseToSVG_Bounds(t *testing.T) {
	states := []sim.State{{3, 1.5}, {3, 1.5}}

	// zero range must not divide by zero
	svg := PhaseToSVG(states, 400, 400)
	if svg == "" {
		t.Fatal("expected output for flat orbit")
	}
	if strings.Contains(svg, "NaN") {
		t.Error("flat orbit produced NaN coordinates")
	}
}
