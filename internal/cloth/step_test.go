package cloth

import (
	"math"
	"testing"
)

func testAnchors(c *Cloth) [2]Vec3 {
	left, _ := c.Grid.Index(0, 0)
	right, _ := c.Grid.Index(c.Grid.Cols-1, 0)
	return [2]Vec3{c.Grid.Pos[left], c.Grid.Pos[right]}
}

// Verlet displacement from rest with a single force application is
// exactly force*subDt^2; with gravity=10, dt=1 and one substep the
// free corner drops by exactly 10.
func TestStepGravityDisplacement(t *testing.T) {
	c := New(GridParams{
		Width: 1, Height: 1, SegmentsX: 1, SegmentsY: 1,
		Pinned: func(col, row int) bool { return col == 0 && row == 0 },
	})
	c.Substeps = 1

	pinIdx, _ := c.Grid.Index(0, 0)
	freeIdx, _ := c.Grid.Index(1, 1)
	initialY := c.Grid.Pos[freeIdx].Y

	c.Step(StepInput{
		Dt:      1,
		Anchors: [2]Vec3{c.Grid.Pos[pinIdx], c.Grid.Pos[pinIdx]},
		Config: Config{
			Gravity:    10,
			Damping:    0.98,
			Stiffness:  1,
			Iterations: 0,
		},
	})

	got := c.Grid.Pos[freeIdx].Y
	want := initialY - 10
	if got != want {
		t.Errorf("free particle y = %v, want exactly %v", got, want)
	}
}

func TestStepDeterminism(t *testing.T) {
	params := GridParams{Width: 2, Height: 1.5, SegmentsX: 8, SegmentsY: 6}
	cfg := DefaultConfig()

	run := func() []Vec3 {
		c := New(params)
		in := StepInput{Dt: 1.0 / 60, Config: cfg, Anchors: testAnchors(c)}
		for i := 0; i < 50; i++ {
			in.Elapsed = float64(i) / 60
			c.Step(in)
		}
		return c.Positions(nil)
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d diverged between identical runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// No solver pass in the same step may move a particle the pin driver
// placed.
func TestStepPinInvariance(t *testing.T) {
	c := New(GridParams{Width: 2, Height: 1, SegmentsX: 10, SegmentsY: 5})
	anchors := [2]Vec3{{-1, 0.2, 0.5}, {1, -0.1, -0.3}}

	cfg := DefaultConfig()
	cfg.Gravity = 20
	cfg.WindStrength = 10
	c.Step(StepInput{Dt: 1.0 / 60, Anchors: anchors, Config: cfg})

	// Recompute what DrivePins must have produced on the final substep.
	want := NewGrid(2, 1, 10, 5, TopEdgePins(11))
	DrivePins(want, anchors[0], anchors[1])

	for col := 0; col < c.Grid.Cols; col++ {
		i, _ := c.Grid.Index(col, 0)
		if !c.Grid.Pinned[i] {
			continue
		}
		if c.Grid.Pos[i] != want.Pos[i] {
			t.Errorf("pinned col %d moved after pin drive: %+v want %+v", col, c.Grid.Pos[i], want.Pos[i])
		}
		if c.Grid.Pos[i].Z != 0 {
			t.Errorf("pinned col %d left the z=0 plane: %+v", col, c.Grid.Pos[i])
		}
	}
}

func TestRelaxDegenerateDistance(t *testing.T) {
	g := NewGrid(1, 1, 1, 1, nil)
	cons := BuildConstraints(g)

	// Collapse one structural pair onto the same point.
	g.Pos[1] = g.Pos[0]
	Relax(g, cons, 1.0, 1)

	for i, p := range g.Pos {
		if !p.IsValid() {
			t.Fatalf("particle %d non-finite after degenerate relax: %+v", i, p)
		}
	}
}

func TestStepLongRunStability(t *testing.T) {
	c := New(GridParams{Width: 2, Height: 1.2, SegmentsX: 12, SegmentsY: 8})
	anchors := testAnchors(c)

	cfg := Config{Damping: 0.99, Stiffness: 0.8, Iterations: 4}
	bound := 0.0
	for _, p := range c.Grid.Pos {
		bound += p.Len() * p.Len()
	}

	in := StepInput{Dt: 1.0 / 60, Anchors: anchors, Config: cfg}
	for i := 0; i < 1000; i++ {
		in.Elapsed = float64(i) / 60
		c.Step(in)
	}

	if !c.Valid() {
		t.Fatal("non-finite particle position after 1000 steps")
	}
	variance := 0.0
	for _, p := range c.Grid.Pos {
		variance += p.Len() * p.Len()
	}
	// Started at rest with no forcing: positions must stay bounded.
	if variance > bound*4+1 {
		t.Errorf("positional variance grew unbounded: %f (start %f)", variance, bound)
	}
}

func TestWindLeeSide(t *testing.T) {
	g := NewGrid(1, 1, 1, 1, nil)
	g.Pos[0].Z = -0.5 // back face
	g.Pos[1].Z = 0.5

	AccumulateForces(g, 0, 10, 1.25, 1)

	front := Wind(1.25, 10)
	if g.Force[1] != front {
		t.Errorf("front-face wind = %+v, want %+v", g.Force[1], front)
	}
	if g.Force[0] != front.Scale(0.3) {
		t.Errorf("lee-side wind = %+v, want %+v", g.Force[0], front.Scale(0.3))
	}
}

func TestWindComponents(t *testing.T) {
	// float64 variables, not constants: the expectation must round
	// through the same float64 multiplies as the implementation.
	var tt, w float64 = 0.7, 5.0
	v := Wind(tt, w)

	wantX := (math.Sin(2.3*tt)*0.5 + math.Sin(5.1*tt)*0.2) * w
	wantY := math.Sin(3*tt) * 0.1 * w
	wantZ := (math.Cos(1.7*tt)*0.8 + 1.0) * w

	const tol = 1e-12
	if math.Abs(v.X-wantX) > tol || math.Abs(v.Y-wantY) > tol || math.Abs(v.Z-wantZ) > tol {
		t.Errorf("Wind(%v,%v) = %+v, want {%v %v %v}", tt, w, v, wantX, wantY, wantZ)
	}
}

func TestDebugBuffers(t *testing.T) {
	c := New(GridParams{Width: 1, Height: 1, SegmentsX: 2, SegmentsY: 2})

	points := c.DebugPoints(nil)
	if len(points) != c.Grid.NumParticles() {
		t.Fatalf("debug points length %d, want %d", len(points), c.Grid.NumParticles())
	}

	lines := c.DebugLines(nil)
	if len(lines) != len(c.Constraints)*2 {
		t.Fatalf("debug lines length %d, want %d", len(lines), len(c.Constraints)*2)
	}
	for i, con := range c.Constraints {
		if lines[i*2] != c.Grid.Pos[con.A] || lines[i*2+1] != c.Grid.Pos[con.B] {
			t.Fatalf("line %d does not mirror constraint endpoints", i)
		}
	}
}
