package cloth

// pinBlend is how far the outermost driven column leans toward the
// opposite anchor (0.2 * col / 2 at col 2).
const pinBlend = 0.2

// DrivePins maps the two anchor positions onto the pinned particles
// of the top row. Columns within two of the left edge interpolate
// toward anchor a0 blended slightly toward a1; the right edge is
// symmetric. The z component is forced to 0 so attachment points stay
// on a fixed plane. Particles not pinned at construction are never
// touched, and nothing is pinned or unpinned here.
func DrivePins(g *Grid, a0, a1 Vec3) {
	for col := 0; col < g.Cols; col++ {
		i, ok := g.Index(col, 0)
		if !ok || !g.Pinned[i] {
			continue
		}

		var p Vec3
		switch {
		case col <= 2:
			t := pinBlend * float64(col) / 2
			p = a0.Lerp(a1, t)
		case col >= g.Cols-3:
			t := pinBlend * float64(g.Cols-1-col) / 2
			p = a1.Lerp(a0, t)
		default:
			continue
		}

		p.Z = 0
		g.Pos[i] = p
		g.Prev[i] = p
	}
}
