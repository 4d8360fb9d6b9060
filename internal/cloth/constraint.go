package cloth

import "math"

type ConstraintType int

const (
	Structural ConstraintType = iota
	Shear
	Bending
)

// Weight is the type-specific stiffness multiplier applied on top of
// the global stiffness during relaxation.
func (t ConstraintType) Weight() float64 {
	switch t {
	case Shear:
		return 0.8
	case Bending:
		return 0.5
	default:
		return 1.0
	}
}

func (t ConstraintType) String() string {
	switch t {
	case Structural:
		return "structural"
	case Shear:
		return "shear"
	case Bending:
		return "bending"
	default:
		return "unknown"
	}
}

// Constraint links two particles by grid index. Immutable after
// construction; the solver pulls the pair toward Rest.
type Constraint struct {
	A, B int
	Rest float64
	Type ConstraintType
}

// BuildConstraints derives the constraint graph from grid topology.
// Each cell is scanned once in row-major order, emitting structural,
// shear, then bending constraints for the neighbors that exist. Each
// logical edge appears exactly once, and the solver visits them in
// this creation order.
func BuildConstraints(g *Grid) []Constraint {
	diag := math.Sqrt(g.SpacingX*g.SpacingX + g.SpacingY*g.SpacingY)

	offsets := []struct {
		dc, dr int
		rest   float64
		typ    ConstraintType
	}{
		{1, 0, g.SpacingX, Structural},
		{0, 1, g.SpacingY, Structural},
		{1, 1, diag, Shear},
		{-1, 1, diag, Shear},
		{2, 0, 2 * g.SpacingX, Bending},
		{0, 2, 2 * g.SpacingY, Bending},
	}

	cons := make([]Constraint, 0, g.Cols*g.Rows*4)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			a, _ := g.Index(col, row)
			for _, o := range offsets {
				b, ok := g.Index(col+o.dc, row+o.dr)
				if !ok {
					continue
				}
				cons = append(cons, Constraint{A: a, B: b, Rest: o.rest, Type: o.typ})
			}
		}
	}
	return cons
}

// CountByType reports constraint totals keyed by type name.
func CountByType(cons []Constraint) map[string]int {
	counts := make(map[string]int, 3)
	for _, c := range cons {
		counts[c.Type.String()]++
	}
	return counts
}
