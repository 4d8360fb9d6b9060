// Package export renders cloth snapshots to SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/clothsim/internal/cloth"
)

// ClothToSVG draws one frame as a wireframe: a line per constraint
// endpoint pair plus a dot per particle. Coordinates are fit to the
// viewport with 10% padding; z is dropped (front view).
func ClothToSVG(positions []cloth.Vec3, constraints []cloth.Constraint, width, height int, strokeColor string) string {
	if len(positions) == 0 {
		return ""
	}

	minX, maxX := positions[0].X, positions[0].X
	minY, maxY := positions[0].Y, positions[0].Y
	for _, p := range positions {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
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

	project := func(p cloth.Vec3) (float64, float64) {
		x := (p.X - minX) / rangeX * float64(width)
		y := (p.Y - minY) / rangeY * float64(height)
		return x, float64(height) - y // y up in cloth space, down in SVG
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="%s" stroke-width="1">
`, width, height, width, height, strokeColor))

	for _, c := range constraints {
		if c.A >= len(positions) || c.B >= len(positions) {
			continue
		}
		x1, y1 := project(positions[c.A])
		x2, y2 := project(positions[c.B])
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x1, y1, x2, y2))
	}

	sb.WriteString(fmt.Sprintf("</g>\n<g fill=\"%s\">\n", strokeColor))
	for _, p := range positions {
		cx, cy := project(p)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1.5"/>
`, cx, cy))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
