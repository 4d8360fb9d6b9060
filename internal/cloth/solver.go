package cloth

// Relax runs the given number of Gauss-Seidel passes over the
// constraint set in creation order, pulling each pair toward its rest
// length. The relaxation is approximate per pass: more iterations
// monotonically reduce residual strain for a static load but never
// reach exact satisfaction, which is the intended real-time trade-off.
func Relax(g *Grid, cons []Constraint, stiffness float64, iterations int) {
	for it := 0; it < iterations; it++ {
		for _, c := range cons {
			delta := g.Pos[c.B].Sub(g.Pos[c.A])
			dist := delta.Len()
			if dist == 0 {
				// Coincident endpoints; skip to avoid NaN.
				continue
			}

			strain := (dist - c.Rest) / dist
			corr := delta.Scale(strain * stiffness * c.Type.Weight() * 0.5)

			pinA, pinB := g.Pinned[c.A], g.Pinned[c.B]
			switch {
			case !pinA && !pinB:
				g.Pos[c.A] = g.Pos[c.A].Add(corr)
				g.Pos[c.B] = g.Pos[c.B].Sub(corr)
			case pinA && !pinB:
				// The pinned endpoint cannot absorb its half, so the
				// free endpoint takes both.
				g.Pos[c.B] = g.Pos[c.B].Sub(corr.Scale(2))
			case !pinA && pinB:
				g.Pos[c.A] = g.Pos[c.A].Add(corr.Scale(2))
			}
		}
	}
}

// ResidualStrain sums |dist - rest| over the constraint set.
func ResidualStrain(g *Grid, cons []Constraint) float64 {
	total := 0.0
	for _, c := range cons {
		d := g.Pos[c.B].Sub(g.Pos[c.A]).Len() - c.Rest
		if d < 0 {
			d = -d
		}
		total += d
	}
	return total
}
