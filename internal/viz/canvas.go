package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/predprey/internal/sim"
)

// Braille patterns pack a 2x4 dot grid into one rune (offset 0x2800):
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights the sub-pixel at (x, y). The canvas resolution in
// sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line in sub-pixel coordinates using Bresenham's
// algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// PhasePlot renders the foxes-vs-rabbits orbit on a braille canvas,
// with the axis ranges printed below the plot.
func PhasePlot(states []sim.State, width, height int) string {
	if len(states) < 2 {
		return ""
	}

	minX, maxX := states[0][0], states[0][0]
	minY, maxY := states[0][1], states[0][1]
	for _, s := range states {
		if s[0] < minX {
			minX = s[0]
		}
		if s[0] > maxX {
			maxX = s[0]
		}
		if s[1] < minY {
			minY = s[1]
		}
		if s[1] > maxY {
			maxY = s[1]
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	canvas := NewCanvas(width, height)
	subW := width*2 - 1
	subH := height*4 - 1

	prevX, prevY := -1, -1
	for _, s := range states {
		px := int((s[0] - minX) / rangeX * float64(subW))
		py := subH - int((s[1]-minY)/rangeY*float64(subH))

		if prevX >= 0 {
			canvas.DrawLine(prevX, prevY, px, py)
		} else {
			canvas.Set(px, py)
		}
		prevX, prevY = px, py
	}

	var b strings.Builder
	b.WriteString(canvas.String())
	b.WriteString(fmt.Sprintf("rabbits: %.2f .. %.2f   foxes: %.2f .. %.2f\n",
		minX, maxX, minY, maxY))
	return b.String()
}
