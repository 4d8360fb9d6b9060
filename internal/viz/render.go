package viz

import (
	"github.com/san-kum/clothsim/internal/cloth"
)

// Projector maps cloth-space (x, y) to canvas dot coordinates with a
// fixed scale and center, dropping z (the terminal view is a straight
// front view).
type Projector struct {
	Scale            float64
	OffsetX, OffsetY int
}

// FitProjector sizes a projector so a cloth of the given extents fills
// most of the canvas.
func FitProjector(c *Canvas, width, height float64) Projector {
	dotW, dotH := float64(c.Width*2), float64(c.Height*4)
	scaleX := dotW * 0.8 / width
	scaleY := dotH * 0.6 / height
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	return Projector{
		Scale:   scale,
		OffsetX: c.Width,      // dot center x
		OffsetY: c.Height / 2, // a bit above center; cloth hangs down
	}
}

func (p Projector) Dot(v cloth.Vec3) (int, int) {
	return p.OffsetX + int(v.X*p.Scale), p.OffsetY - int(v.Y*p.Scale)
}

// DrawCloth renders the debug buffers the core publishes: constraint
// lines when ShowConstraints, particle points when ShowParticles. With
// both flags off it draws the structural wire so the view is never
// blank.
func DrawCloth(canvas *Canvas, c *cloth.Cloth, cfg cloth.Config) {
	p := FitProjector(canvas, clothExtentX(c), clothExtentY(c))

	if cfg.ShowConstraints {
		lines := c.DebugLines(nil)
		for i := 0; i+1 < len(lines); i += 2 {
			x0, y0 := p.Dot(lines[i])
			x1, y1 := p.Dot(lines[i+1])
			canvas.DrawLine(x0, y0, x1, y1)
		}
	} else {
		drawStructuralWire(canvas, c, p)
	}

	if cfg.ShowParticles {
		for _, pos := range c.DebugPoints(nil) {
			x, y := p.Dot(pos)
			canvas.Mark(x, y)
		}
	}
}

func drawStructuralWire(canvas *Canvas, c *cloth.Cloth, p Projector) {
	for _, con := range c.Constraints {
		if con.Type != cloth.Structural {
			continue
		}
		x0, y0 := p.Dot(c.Grid.Pos[con.A])
		x1, y1 := p.Dot(c.Grid.Pos[con.B])
		canvas.DrawLine(x0, y0, x1, y1)
	}
}

func clothExtentX(c *cloth.Cloth) float64 {
	return float64(c.Grid.Cols-1) * c.Grid.SpacingX
}

func clothExtentY(c *cloth.Cloth) float64 {
	return float64(c.Grid.Rows-1) * c.Grid.SpacingY
}
