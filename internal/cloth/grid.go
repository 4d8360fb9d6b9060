package cloth

// PinFunc reports whether the particle at (col, row) is pinned.
// Row 0 is the top row.
type PinFunc func(col, row int) bool

// TopEdgePins pins the top row within two columns of either edge,
// matching what PinDriver knows how to drive.
func TopEdgePins(cols int) PinFunc {
	return func(col, row int) bool {
		if row != 0 {
			return false
		}
		return col <= 2 || col >= cols-3
	}
}

// Grid owns the mass-point state for a fixed rows x cols topology.
// Positions live in flat arenas indexed row-major:
// index(col,row) = row*(segmentsX+1)+col. Topology never changes
// after construction; only Pos/Prev/Force mutate per step.
type Grid struct {
	Cols, Rows         int // particle counts per axis
	SpacingX, SpacingY float64

	Pos    []Vec3
	Prev   []Vec3
	Force  []Vec3
	Pinned []bool
	Mass   []float64
}

// NewGrid places (segmentsY+1) x (segmentsX+1) particles on a regular
// grid centered horizontally, hanging downward from row 0, at rest
// (Prev == Pos).
func NewGrid(width, height float64, segmentsX, segmentsY int, pinned PinFunc) *Grid {
	cols := segmentsX + 1
	rows := segmentsY + 1
	n := cols * rows

	g := &Grid{
		Cols:     cols,
		Rows:     rows,
		SpacingX: width / float64(segmentsX),
		SpacingY: height / float64(segmentsY),
		Pos:      make([]Vec3, n),
		Prev:     make([]Vec3, n),
		Force:    make([]Vec3, n),
		Pinned:   make([]bool, n),
		Mass:     make([]float64, n),
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			i := row*cols + col
			g.Pos[i] = Vec3{
				X: -width/2 + float64(col)*g.SpacingX,
				Y: -float64(row) * g.SpacingY,
				Z: 0,
			}
			g.Prev[i] = g.Pos[i]
			g.Mass[i] = 1
			if pinned != nil {
				g.Pinned[i] = pinned(col, row)
			}
		}
	}

	return g
}

// Clone deep-copies the grid state. Topology slices are copied too so
// the clone is fully independent.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		Cols: g.Cols, Rows: g.Rows,
		SpacingX: g.SpacingX, SpacingY: g.SpacingY,
		Pos:    append([]Vec3(nil), g.Pos...),
		Prev:   append([]Vec3(nil), g.Prev...),
		Force:  append([]Vec3(nil), g.Force...),
		Pinned: append([]bool(nil), g.Pinned...),
		Mass:   append([]float64(nil), g.Mass...),
	}
	return c
}

// Index maps (col, row) to a flat particle index. ok is false for
// out-of-range coordinates, which constraint construction treats as
// an absent neighbor.
func (g *Grid) Index(col, row int) (int, bool) {
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return 0, false
	}
	return row*g.Cols + col, true
}

func (g *Grid) NumParticles() int { return len(g.Pos) }
