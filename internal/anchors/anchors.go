// Package anchors supplies the externally driven attachment points the
// cloth core consumes each step. Drivers are pure functions of elapsed
// time; drag/pointer handling belongs to whatever feeds a driver.
package anchors

import (
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Driver produces the two anchor positions for a given elapsed time.
type Driver interface {
	At(t float64) (cloth.Vec3, cloth.Vec3)
}

// Static holds both anchors fixed.
type Static struct {
	A0, A1 cloth.Vec3
}

func NewStatic(a0, a1 cloth.Vec3) *Static {
	return &Static{A0: a0, A1: a1}
}

func (s *Static) At(t float64) (cloth.Vec3, cloth.Vec3) {
	return s.A0, s.A1
}

// Sway drifts both anchors sinusoidally around their base positions,
// slightly out of phase so the cloth shears as well as swings.
type Sway struct {
	A0, A1    cloth.Vec3
	Amplitude float64
	Frequency float64
}

func NewSway(a0, a1 cloth.Vec3, amplitude, frequency float64) *Sway {
	return &Sway{A0: a0, A1: a1, Amplitude: amplitude, Frequency: frequency}
}

func (s *Sway) At(t float64) (cloth.Vec3, cloth.Vec3) {
	w := 2 * math.Pi * s.Frequency
	d0 := cloth.Vec3{
		X: math.Sin(w*t) * s.Amplitude,
		Y: math.Sin(w*t*0.5) * s.Amplitude * 0.3,
	}
	d1 := cloth.Vec3{
		X: math.Sin(w*t+0.8) * s.Amplitude,
		Y: math.Cos(w*t*0.5) * s.Amplitude * 0.3,
	}
	return s.A0.Add(d0), s.A1.Add(d1)
}

// Walk carries both anchors along a figure-eight path, keeping their
// separation, like a banner carried through a turn.
type Walk struct {
	A0, A1 cloth.Vec3
	Radius float64
	Speed  float64
}

func NewWalk(a0, a1 cloth.Vec3, radius, speed float64) *Walk {
	return &Walk{A0: a0, A1: a1, Radius: radius, Speed: speed}
}

func (w *Walk) At(t float64) (cloth.Vec3, cloth.Vec3) {
	a := w.Speed * t
	d := cloth.Vec3{
		X: math.Sin(a) * w.Radius,
		Y: math.Sin(2*a) * w.Radius * 0.5,
	}
	return w.A0.Add(d), w.A1.Add(d)
}
