package buoyancy

import (
	pmath "github.com/Faultbox/swell/pkg/math"
)

// Surface is a water height field. *wave.Set implements it.
type Surface interface {
	Height(x, z, t float32) float32
	Slope(x, z, t float32) pmath.Vec2
}

// FlatSurface is calm water at a constant level.
type FlatSurface struct {
	Level float32
}

// Height returns the water level.
func (f FlatSurface) Height(_, _, _ float32) float32 { return f.Level }

// Slope is always zero.
func (FlatSurface) Slope(_, _, _ float32) pmath.Vec2 { return pmath.Vec2{} }

// State is the snapshot of a floating body the solver reads each tick.
type State struct {
	Position        pmath.Vec3
	Orientation     pmath.Quat
	Velocity        pmath.Vec3
	AngularVelocity pmath.Vec3
}

// Output is the result of one solve. Gravity is not included; the
// integrator applies it.
type Output struct {
	Force  pmath.Vec3 // world space
	Torque pmath.Vec3 // world space, about the center of mass
	// Submerged is the weighted submerged fraction in [0, 1].
	Submerged float32
}

// IsFinite reports whether force and torque are finite.
func (o Output) IsFinite() bool {
	return o.Force.IsFinite() && o.Torque.IsFinite()
}

// Solver computes buoyancy for one body configuration. It keeps no per-tick
// state and is safe for concurrent use.
type Solver struct {
	cfg     Config
	weights []float32 // normalized to sum to one
	lift    float32   // upward force at full submersion
}

// NewSolver validates cfg and precomputes the per-sample weights.
func NewSolver(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := len(cfg.SampleOffsets)
	weights := make([]float32, n)
	if len(cfg.SampleWeights) == 0 {
		for i := range weights {
			weights[i] = 1 / float32(n)
		}
	} else {
		var sum float32
		for _, w := range cfg.SampleWeights {
			sum += w
		}
		for i, w := range cfg.SampleWeights {
			weights[i] = w / sum
		}
	}

	cfg.SampleOffsets = append([]pmath.Vec3(nil), cfg.SampleOffsets...)
	cfg.SampleWeights = append([]float32(nil), cfg.SampleWeights...)

	return &Solver{
		cfg:     cfg,
		weights: weights,
		// Displaced fluid weight of the whole body: ρf·V·g = (ρf/ρb)·m·g.
		lift: cfg.FluidDensity / cfg.BodyDensity * cfg.Mass * cfg.Gravity,
	}, nil
}

// Config returns the validated configuration.
func (s *Solver) Config() Config {
	return s.cfg
}

// SamplePoints writes the world-space sample positions for st into dst.
func (s *Solver) SamplePoints(st State, dst []pmath.Vec3) []pmath.Vec3 {
	xf := pmath.RigidTransform(st.Position, st.Orientation)
	dst = dst[:0]
	for _, off := range s.cfg.SampleOffsets {
		dst = append(dst, xf.TransformPoint(off))
	}
	return dst
}

// Solve samples surface under the body at time t and returns the buoyant
// force and torque, including slope alignment and drag.
func (s *Solver) Solve(surface Surface, st State, t float32) Output {
	rot := st.Orientation.ToMat4()
	maxDepth := s.cfg.MaxSubmersion

	var force, torque pmath.Vec3
	var slope pmath.Vec2
	var wet float32

	for i, off := range s.cfg.SampleOffsets {
		r := rot.TransformDirection(off)
		p := st.Position.Add(r)

		depth := surface.Height(p.X, p.Z, t) - p.Y
		if depth <= 0 {
			continue
		}
		frac := min(depth, maxDepth) / maxDepth
		share := s.weights[i] * frac

		f := pmath.Vec3{Y: s.lift * share}
		force = force.Add(f)
		torque = torque.Add(r.Cross(f))

		slope = slope.Add(surface.Slope(p.X, p.Z, t).Scale(share))
		wet += share
	}

	if wet == 0 {
		return Output{}
	}

	// Turn the body's up axis toward the mean surface normal under it.
	slope = slope.Scale(1 / wet)
	normal := pmath.Vec3{X: -slope.X, Y: 1, Z: -slope.Y}.Normalize()
	up := rot.TransformDirection(pmath.Up)
	torque = torque.Add(up.Cross(normal).Scale(s.cfg.SlopeStiffness * wet))

	force = force.Sub(st.Velocity.Scale(s.cfg.LinearDrag * wet))
	torque = torque.Sub(st.AngularVelocity.Scale(s.cfg.AngularDrag * wet))

	return Output{Force: force, Torque: torque, Submerged: wet}
}
