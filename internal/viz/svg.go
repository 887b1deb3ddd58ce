package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/predprey/internal/sim"
)

// PhaseToSVG renders the phase-plane orbit as a single SVG path.
func PhaseToSVG(states []sim.State, width, height int) string {
	if len(states) < 2 {
		return ""
	}

	points := make([][2]float64, len(states))
	for i, s := range states {
		points[i] = [2]float64{s[0], s[1]}
	}
	return pathSVG(width, height, []series{{points: points, color: "#00ff88"}})
}

// TimeSeriesToSVG renders rabbits and foxes against time as two paths.
func TimeSeriesToSVG(times []float64, states []sim.State, width, height int) string {
	if len(states) < 2 {
		return ""
	}

	rabbits := make([][2]float64, len(states))
	foxes := make([][2]float64, len(states))
	for i, s := range states {
		rabbits[i] = [2]float64{times[i], s[0]}
		foxes[i] = [2]float64{times[i], s[1]}
	}
	return pathSVG(width, height, []series{
		{points: rabbits, color: "#00ff88"},
		{points: foxes, color: "#ff5f5f"},
	})
}

type series struct {
	points [][2]float64
	color  string
}

func pathSVG(width, height int, all []series) string {
	minX, maxX := all[0].points[0][0], all[0].points[0][0]
	minY, maxY := all[0].points[0][1], all[0].points[0][1]
	for _, s := range all {
		for _, p := range s.points {
			if p[0] < minX {
				minX = p[0]
			}
			if p[0] > maxX {
				maxX = p[0]
			}
			if p[1] < minY {
				minY = p[1]
			}
			if p[1] > maxY {
				maxY = p[1]
			}
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
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, s := range all {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, s.color))
		for i, p := range s.points {
			x := (p[0] - minX) / rangeX * float64(width)
			y := float64(height) - (p[1]-minY)/rangeY*float64(height)

			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
