// Package buoyancy derives the force and torque a wave surface exerts on a
// floating rigid body by sampling water height under several body points.
package buoyancy

import (
	"errors"
	"fmt"
	"math"

	pmath "github.com/Faultbox/swell/pkg/math"
)

// ErrInvalidBodyConfig is returned for body configurations the solver
// refuses to run with.
var ErrInvalidBodyConfig = errors.New("buoyancy: invalid body config")

// Physical defaults.
const (
	DefaultFluidDensity = 1000.0 // kg/m³
	DefaultGravity      = 9.81   // m/s²
)

// Config holds the per-body physical parameters. It is validated once when
// the Solver is created.
type Config struct {
	Mass         float32 // kg
	BodyDensity  float32 // kg/m³
	FluidDensity float32 // kg/m³
	Gravity      float32 // m/s², magnitude

	// MaxSubmersion is the depth at which a sample counts as fully
	// submerged, typically the body height.
	MaxSubmersion float32

	// SampleOffsets are body-local points at which water height is sampled.
	SampleOffsets []pmath.Vec3
	// SampleWeights are optional per-sample weights. Empty means uniform.
	SampleWeights []float32

	LinearDrag     float32 // N per m/s at full submersion
	AngularDrag    float32 // N·m per rad/s at full submersion
	SlopeStiffness float32 // N·m per radian of misalignment with the surface normal
}

// BoxSampleOffsets returns the four bottom corners and the bottom center of
// a box with the given full extents (length along X, height along Y, width
// along Z), centred on the body origin.
func BoxSampleOffsets(dims pmath.Vec3) []pmath.Vec3 {
	hx, hy, hz := dims.X/2, dims.Y/2, dims.Z/2
	return []pmath.Vec3{
		{X: -hx, Y: -hy, Z: -hz},
		{X: hx, Y: -hy, Z: -hz},
		{X: hx, Y: -hy, Z: hz},
		{X: -hx, Y: -hy, Z: hz},
		{X: 0, Y: -hy, Z: 0},
	}
}

// BoxConfig returns a Config for a solid box of the given extents and
// density, sampled at its four bottom corners and bottom center.
func BoxConfig(dims pmath.Vec3, density float32) Config {
	volume := dims.X * dims.Y * dims.Z
	mass := density * volume
	return Config{
		Mass:           mass,
		BodyDensity:    density,
		FluidDensity:   DefaultFluidDensity,
		Gravity:        DefaultGravity,
		MaxSubmersion:  dims.Y,
		SampleOffsets:  BoxSampleOffsets(dims),
		LinearDrag:     mass * 0.8,
		AngularDrag:    mass * 0.5,
		SlopeStiffness: mass * DefaultGravity * 0.25,
	}
}

// SurfboardConfig is a light, flat board.
func SurfboardConfig() Config {
	return BoxConfig(pmath.Vec3{X: 2.4, Y: 0.1, Z: 0.6}, 350)
}

// Validate reports whether the solver can run with c.
func (c Config) Validate() error {
	switch {
	case len(c.SampleOffsets) == 0:
		return fmt.Errorf("%w: no sample offsets", ErrInvalidBodyConfig)
	case !positive(c.Mass):
		return fmt.Errorf("%w: mass must be positive", ErrInvalidBodyConfig)
	case !positive(c.BodyDensity):
		return fmt.Errorf("%w: body density must be positive", ErrInvalidBodyConfig)
	case !positive(c.FluidDensity):
		return fmt.Errorf("%w: fluid density must be positive", ErrInvalidBodyConfig)
	case !positive(c.MaxSubmersion):
		return fmt.Errorf("%w: max submersion must be positive", ErrInvalidBodyConfig)
	case !nonNegative(c.Gravity), !nonNegative(c.LinearDrag), !nonNegative(c.AngularDrag), !nonNegative(c.SlopeStiffness):
		return fmt.Errorf("%w: gravity, drag and stiffness must be finite and non-negative", ErrInvalidBodyConfig)
	}

	for i, o := range c.SampleOffsets {
		if !o.IsFinite() {
			return fmt.Errorf("%w: sample offset %d is not finite", ErrInvalidBodyConfig, i)
		}
	}

	if len(c.SampleWeights) == 0 {
		return nil
	}
	if len(c.SampleWeights) != len(c.SampleOffsets) {
		return fmt.Errorf("%w: %d weights for %d samples", ErrInvalidBodyConfig, len(c.SampleWeights), len(c.SampleOffsets))
	}
	var sum float32
	for i, w := range c.SampleWeights {
		if !nonNegative(w) {
			return fmt.Errorf("%w: sample weight %d must be non-negative", ErrInvalidBodyConfig, i)
		}
		sum += w
	}
	if !positive(sum) {
		return fmt.Errorf("%w: sample weights sum to zero", ErrInvalidBodyConfig)
	}
	return nil
}

func positive(f float32) bool {
	return f > 0 && !math.IsInf(float64(f), 0)
}

func nonNegative(f float32) bool {
	return f >= 0 && !math.IsInf(float64(f), 0)
}
