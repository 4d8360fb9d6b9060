// Package cloth simulates a deformable 2D sheet under gravity,
// aerodynamic forcing, and externally driven anchor points.
//
// The core is a fixed-topology mass-point grid with a multi-type
// constraint graph (structural, shear, bending), advanced by
// position-based Verlet integration and iterative Gauss-Seidel
// relaxation inside a fixed-substep loop:
//
//	c := cloth.New(cloth.GridParams{Width: 2, Height: 1.2, SegmentsX: 20, SegmentsY: 12})
//	c.Step(cloth.StepInput{Dt: dt, Elapsed: t, Anchors: anchors, Config: cfg})
//	positions = c.Positions(positions)
//
// The package is single-threaded and run-to-completion per Step call;
// callers needing concurrency keep one Cloth per simulation. Rendering,
// input handling, and window lifecycle are external collaborators that
// feed StepInput and consume the position and debug buffers.
package cloth
