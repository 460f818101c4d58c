// Package wave evaluates a sum of Gerstner waves: per-position 3D surface
// displacement, a lane-batched variant of the same arithmetic, and a
// height-only query for physics.
package wave

import (
	"math"

	pmath "github.com/Faultbox/swell/pkg/math"
)

// minDirectionLength is the smallest direction magnitude that is normalized.
const minDirectionLength = 1e-6

// Params are the raw, unvalidated parameters of one wave.
type Params struct {
	Amplitude  float32
	Wavelength float32
	Speed      float32
	Direction  pmath.Vec2 // (x, z) on the water plane
	Steepness  float32
}

// Wave is a validated wave with its derived constants.
type Wave struct {
	Amplitude  float32
	Wavelength float32
	Speed      float32
	Direction  pmath.Vec2 // unit length
	Steepness  float32

	K     float32 // wavenumber 2π/L
	Omega float32 // angular frequency k·S
	QA    float32 // steepness times amplitude
}

// Set is an ordered, immutable list of waves. Evaluation sums in stored order,
// so a Set always produces the same bits for the same inputs. A Set is safe
// for concurrent use.
type Set struct {
	waves []Wave
}

// Build validates params and returns a Set with normalized directions and
// precomputed wavenumbers and angular frequencies.
func Build(params []Params) (*Set, error) {
	if len(params) == 0 {
		return nil, ErrEmpty
	}

	waves := make([]Wave, len(params))
	for i, p := range params {
		w, err := newWave(p)
		if err != nil {
			return nil, &ValidationError{Index: i, Err: err}
		}
		waves[i] = w
	}
	return &Set{waves: waves}, nil
}

// MustBuild is like Build but panics on invalid params. Intended for
// package-level presets and tests.
func MustBuild(params []Params) *Set {
	s, err := Build(params)
	if err != nil {
		panic(err)
	}
	return s
}

func newWave(p Params) (Wave, error) {
	// Negated comparisons also reject NaN.
	if !(p.Amplitude > 0) || math.IsInf(float64(p.Amplitude), 0) {
		return Wave{}, ErrInvalidAmplitude
	}
	if !(p.Wavelength > 0) || math.IsInf(float64(p.Wavelength), 0) {
		return Wave{}, ErrInvalidWavelength
	}
	if !(p.Steepness >= 0 && p.Steepness <= 1) {
		return Wave{}, ErrInvalidSteepness
	}
	if math.IsNaN(float64(p.Speed)) || math.IsInf(float64(p.Speed), 0) {
		return Wave{}, ErrInvalidSpeed
	}
	length := p.Direction.Length()
	if !(length >= minDirectionLength) || math.IsInf(float64(length), 0) {
		return Wave{}, ErrInvalidDirection
	}

	k := float32(2 * math.Pi / float64(p.Wavelength))
	return Wave{
		Amplitude:  p.Amplitude,
		Wavelength: p.Wavelength,
		Speed:      p.Speed,
		Direction:  pmath.Vec2{X: p.Direction.X / length, Y: p.Direction.Y / length},
		Steepness:  p.Steepness,
		K:          k,
		Omega:      float32(k * p.Speed),
		QA:         float32(p.Steepness * p.Amplitude),
	}, nil
}

// Len returns the number of waves.
func (s *Set) Len() int {
	return len(s.waves)
}

// Wave returns the i-th wave.
func (s *Set) Wave(i int) Wave {
	return s.waves[i]
}

// Waves returns a copy of the waves in evaluation order.
func (s *Set) Waves() []Wave {
	out := make([]Wave, len(s.waves))
	copy(out, s.waves)
	return out
}

// Params returns the validated parameters in evaluation order, with
// normalized directions.
func (s *Set) Params() []Params {
	out := make([]Params, len(s.waves))
	for i, w := range s.waves {
		out[i] = Params{
			Amplitude:  w.Amplitude,
			Wavelength: w.Wavelength,
			Speed:      w.Speed,
			Direction:  w.Direction,
			Steepness:  w.Steepness,
		}
	}
	return out
}

// DefaultSteepness is the steepness given to the preset swell.
const DefaultSteepness = 0.15

// DefaultParams returns a four-wave swell travelling roughly along +X.
func DefaultParams() []Params {
	return []Params{
		{Amplitude: 1.0, Wavelength: 20.0, Speed: 2.0, Direction: pmath.Vec2{X: 1.0, Y: 0.3}, Steepness: DefaultSteepness},
		{Amplitude: 0.6, Wavelength: 15.0, Speed: 1.8, Direction: pmath.Vec2{X: 0.8, Y: 0.2}, Steepness: DefaultSteepness},
		{Amplitude: 0.4, Wavelength: 12.0, Speed: 2.2, Direction: pmath.Vec2{X: 1.2, Y: -0.1}, Steepness: DefaultSteepness},
		{Amplitude: 0.3, Wavelength: 8.0, Speed: 2.5, Direction: pmath.Vec2{X: 0.9, Y: 0.4}, Steepness: DefaultSteepness},
	}
}
