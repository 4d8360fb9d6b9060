package cloth

import "math"

// Wind returns the turbulence force vector for elapsed time t and
// wind strength w, before substep scaling. Not a physically derived
// aerodynamic model; the mixed sine bands just read as gusts.
func Wind(t, w float64) Vec3 {
	return Vec3{
		X: (math.Sin(2.3*t)*0.5 + math.Sin(5.1*t)*0.2) * w,
		Y: math.Sin(3*t) * 0.1 * w,
		Z: (math.Cos(1.7*t)*0.8 + 1.0) * w,
	}
}

// leeFactor attenuates wind on back-face particles (Pos.Z < 0).
const leeFactor = 0.3

// AccumulateForces adds gravity and wind to every free particle.
// Forces are pre-scaled by subDt squared so they are in the same
// displacement units Verlet integration consumes; no separate
// velocity state exists.
func AccumulateForces(g *Grid, gravity, windStrength, elapsed, subDt float64) {
	dt2 := subDt * subDt
	grav := Vec3{Y: -gravity * dt2}
	wind := Wind(elapsed, windStrength).Scale(dt2)
	lee := wind.Scale(leeFactor)

	for i := range g.Force {
		if g.Pinned[i] {
			continue
		}
		g.Force[i] = g.Force[i].Add(grav)
		if g.Pos[i].Z < 0 {
			g.Force[i] = g.Force[i].Add(lee)
		} else {
			g.Force[i] = g.Force[i].Add(wind)
		}
	}
}

// Integrate advances every free particle one Verlet step: implicit
// velocity is the damped difference from the previous position, and
// the accumulated force is consumed and reset. Pinned particles are
// driven exclusively by the pin driver and skipped here.
func Integrate(g *Grid, damping float64) {
	for i := range g.Pos {
		if g.Pinned[i] {
			continue
		}
		vel := g.Pos[i].Sub(g.Prev[i]).Scale(damping)
		g.Prev[i] = g.Pos[i]
		g.Pos[i] = g.Pos[i].Add(vel).Add(g.Force[i])
		g.Force[i] = Vec3{}
	}
}
