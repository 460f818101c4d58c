package wave

import (
	"math"

	pmath "github.com/Faultbox/swell/pkg/math"
)

// Every product below is wrapped in an explicit float32 conversion. The Go
// spec allows x*y+z to be fused into one FMA instruction on some targets;
// explicit conversions force individual rounding, which keeps Evaluate,
// EvaluateBatch and Height bit-identical on every architecture.

// phase returns k·(D·(x,z)) − ω·t.
func (w *Wave) phase(x, z, t float32) float32 {
	d := float32(w.Direction.X*x) + float32(w.Direction.Y*z)
	return float32(w.K*d) - float32(w.Omega*t)
}

// Evaluate returns the surface displacement at (x, z) and time t.
// Y is the wave height, X and Z the horizontal shift of the surface point.
func (s *Set) Evaluate(x, z, t float32) pmath.Vec3 {
	var dx, dy, dz float32
	for i := range s.waves {
		w := &s.waves[i]
		p := w.phase(x, z, t)
		sin := float32(math.Sin(float64(p)))
		cos := float32(math.Cos(float64(p)))
		dy += float32(w.Amplitude * sin)
		h := float32(w.QA * cos)
		dx += float32(h * w.Direction.X)
		dz += float32(h * w.Direction.Y)
	}
	return pmath.Vec3{X: dx, Y: dy, Z: dz}
}

// Height returns only the vertical displacement at (x, z) and time t.
// It equals Evaluate(x, z, t).Y exactly.
func (s *Set) Height(x, z, t float32) float32 {
	var dy float32
	for i := range s.waves {
		w := &s.waves[i]
		p := w.phase(x, z, t)
		dy += float32(w.Amplitude * float32(math.Sin(float64(p))))
	}
	return dy
}

// Slope returns the analytic gradient of the height field (∂h/∂x, ∂h/∂z).
func (s *Set) Slope(x, z, t float32) pmath.Vec2 {
	var sx, sz float32
	for i := range s.waves {
		w := &s.waves[i]
		p := w.phase(x, z, t)
		g := float32(float32(w.Amplitude*w.K) * float32(math.Cos(float64(p))))
		sx += float32(g * w.Direction.X)
		sz += float32(g * w.Direction.Y)
	}
	return pmath.Vec2{X: sx, Y: sz}
}

// Normal returns the unit normal of the height field at (x, z) and time t.
func (s *Set) Normal(x, z, t float32) pmath.Vec3 {
	g := s.Slope(x, z, t)
	return pmath.Vec3{X: -g.X, Y: 1, Z: -g.Y}.Normalize()
}
