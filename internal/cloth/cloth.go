package cloth

// Config carries the per-step tuning parameters. The core reads it
// each step and never owns or validates it: values outside the
// documented ranges degrade quality (stretching, jitter) but do not
// crash. Documented ranges: Gravity [0,40], WindStrength [0,15],
// Stiffness [0.3,1.0], Damping [0.9,0.995], Iterations [1,20].
type Config struct {
	Gravity         float64
	WindStrength    float64
	Stiffness       float64
	Damping         float64
	Iterations      int
	ShowParticles   bool
	ShowConstraints bool
}

// DefaultConfig is a stable mid-range starting point.
func DefaultConfig() Config {
	return Config{
		Gravity:      9.81,
		WindStrength: 3,
		Stiffness:    0.9,
		Damping:      0.98,
		Iterations:   8,
	}
}

// GridParams describes the fixed cloth topology.
type GridParams struct {
	Width, Height        float64
	SegmentsX, SegmentsY int
	Pinned               PinFunc
}

// StepInput is everything one frame supplies. Dt must be finite and
// positive; clamping oversized frame deltas is the caller's job.
type StepInput struct {
	Dt      float64
	Elapsed float64
	Anchors [2]Vec3
	Config  Config
}

// DefaultSubsteps divides each frame delta for stability without
// raising the caller's reporting rate.
const DefaultSubsteps = 3

// Cloth is the render-agnostic simulation core: a particle grid, its
// constraint graph, and the fixed-substep loop that advances them.
// Not safe for concurrent Step calls on the same instance.
type Cloth struct {
	Grid        *Grid
	Constraints []Constraint
	Substeps    int
}

// New constructs the grid and constraint graph once. Neither is ever
// resized; per-step state lives in the grid arenas.
func New(p GridParams) *Cloth {
	pin := p.Pinned
	if pin == nil {
		pin = TopEdgePins(p.SegmentsX + 1)
	}
	g := NewGrid(p.Width, p.Height, p.SegmentsX, p.SegmentsY, pin)
	return &Cloth{
		Grid:        g,
		Constraints: BuildConstraints(g),
		Substeps:    DefaultSubsteps,
	}
}

// Step advances the simulation by in.Dt, split into c.Substeps fixed
// substeps. Each substep runs pin update, force accumulation, Verlet
// integration, then constraint relaxation, strictly in order and
// in-place. Repeated calls with identical inputs and grid state are
// bit-identical.
func (c *Cloth) Step(in StepInput) {
	subDt := in.Dt / float64(c.Substeps)
	for s := 0; s < c.Substeps; s++ {
		DrivePins(c.Grid, in.Anchors[0], in.Anchors[1])
		AccumulateForces(c.Grid, in.Config.Gravity, in.Config.WindStrength, in.Elapsed, subDt)
		Integrate(c.Grid, in.Config.Damping)
		Relax(c.Grid, c.Constraints, in.Config.Stiffness, in.Config.Iterations)
	}
}

// Positions writes the particle positions, in row-major grid order,
// into dst (grown if needed) and returns it.
func (c *Cloth) Positions(dst []Vec3) []Vec3 {
	if cap(dst) < len(c.Grid.Pos) {
		dst = make([]Vec3, len(c.Grid.Pos))
	}
	dst = dst[:len(c.Grid.Pos)]
	copy(dst, c.Grid.Pos)
	return dst
}

// DebugPoints mirrors particle positions for overlay rendering.
// Callers gate on Config.ShowParticles; skipping the copy entirely
// when hidden is a pure optimization.
func (c *Cloth) DebugPoints(dst []Vec3) []Vec3 {
	return c.Positions(dst)
}

// DebugLines writes one (a, b) endpoint pair per constraint, in
// creation order, into dst and returns it.
func (c *Cloth) DebugLines(dst []Vec3) []Vec3 {
	n := len(c.Constraints) * 2
	if cap(dst) < n {
		dst = make([]Vec3, n)
	}
	dst = dst[:n]
	for i, con := range c.Constraints {
		dst[i*2] = c.Grid.Pos[con.A]
		dst[i*2+1] = c.Grid.Pos[con.B]
	}
	return dst
}

// ResidualStrain reports the current total constraint strain.
func (c *Cloth) ResidualStrain() float64 {
	return ResidualStrain(c.Grid, c.Constraints)
}

// Valid reports whether every particle position is finite.
func (c *Cloth) Valid() bool {
	for _, p := range c.Grid.Pos {
		if !p.IsValid() {
			return false
		}
	}
	return true
}
