// Package config handles simulation configuration loading and management.
package config

import (
	"github.com/Faultbox/swell/pkg/buoyancy"
	pmath "github.com/Faultbox/swell/pkg/math"
	"github.com/Faultbox/swell/pkg/wave"
)

// Config holds all simulation settings.
type Config struct {
	Waves      []WaveConfig     `yaml:"waves"`
	Surface    SurfaceConfig    `yaml:"surface"`
	Simulation SimulationConfig `yaml:"simulation"`
	Bodies     []BodyConfig     `yaml:"bodies"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WaveConfig holds the parameters of one Gerstner wave.
type WaveConfig struct {
	Amplitude  float32    `yaml:"amplitude"`
	Wavelength float32    `yaml:"wavelength"`
	Speed      float32    `yaml:"speed"`
	Direction  [2]float32 `yaml:"direction,flow"` // x, z; normalized on load
	Steepness  float32    `yaml:"steepness"`
}

// SurfaceConfig holds the water mesh settings.
type SurfaceConfig struct {
	Enabled   bool    `yaml:"enabled"`
	GridSize  int     `yaml:"grid_size"`
	WorldSize float32 `yaml:"world_size"`
	Workers   int     `yaml:"workers"` // 0 means one per CPU
	// SampleMesh makes buoyancy read heights from the mesh instead of the
	// analytic wave field.
	SampleMesh bool `yaml:"sample_mesh"`
}

// SimulationConfig holds the fixed-step driver settings.
type SimulationConfig struct {
	TickRate float64 `yaml:"tick_rate"` // Hz
	Ticks    int     `yaml:"ticks"`     // 0 runs until interrupted
	Realtime bool    `yaml:"realtime"`
	LogEvery int     `yaml:"log_every"` // ticks between pose logs, 0 disables
}

// BodyConfig describes one floating box.
type BodyConfig struct {
	Name           string     `yaml:"name"`
	Position       [3]float32 `yaml:"position,flow"`
	Dimensions     [3]float32 `yaml:"dimensions,flow"` // length (x), height (y), width (z)
	Density        float32    `yaml:"density"`
	LinearDrag     float32    `yaml:"linear_drag"`     // 0 keeps the box default
	AngularDrag    float32    `yaml:"angular_drag"`    // 0 keeps the box default
	SlopeStiffness float32    `yaml:"slope_stiffness"` // 0 keeps the box default
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	params := wave.DefaultParams()
	waves := make([]WaveConfig, len(params))
	for i, p := range params {
		waves[i] = WaveConfig{
			Amplitude:  p.Amplitude,
			Wavelength: p.Wavelength,
			Speed:      p.Speed,
			Direction:  [2]float32{p.Direction.X, p.Direction.Y},
			Steepness:  p.Steepness,
		}
	}

	return &Config{
		Waves: waves,
		Surface: SurfaceConfig{
			Enabled:   true,
			GridSize:  200,
			WorldSize: 100,
			Workers:   0,
		},
		Simulation: SimulationConfig{
			TickRate: 60,
			Ticks:    600,
			Realtime: false,
			LogEvery: 60,
		},
		Bodies: []BodyConfig{
			{
				Name:       "surfboard",
				Position:   [3]float32{0, 0.5, 0},
				Dimensions: [3]float32{2.4, 0.1, 0.6},
				Density:    350,
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// WaveParams converts the wave section into evaluator parameters.
func (c *Config) WaveParams() []wave.Params {
	out := make([]wave.Params, len(c.Waves))
	for i, w := range c.Waves {
		out[i] = wave.Params{
			Amplitude:  w.Amplitude,
			Wavelength: w.Wavelength,
			Speed:      w.Speed,
			Direction:  pmath.Vec2{X: w.Direction[0], Y: w.Direction[1]},
			Steepness:  w.Steepness,
		}
	}
	return out
}

// Buoyancy returns the solver configuration for the body.
func (b BodyConfig) Buoyancy() buoyancy.Config {
	cfg := buoyancy.BoxConfig(b.Size(), b.Density)
	if b.LinearDrag > 0 {
		cfg.LinearDrag = b.LinearDrag
	}
	if b.AngularDrag > 0 {
		cfg.AngularDrag = b.AngularDrag
	}
	if b.SlopeStiffness > 0 {
		cfg.SlopeStiffness = b.SlopeStiffness
	}
	return cfg
}

// Size returns the body dimensions as a vector.
func (b BodyConfig) Size() pmath.Vec3 {
	return pmath.Vec3{X: b.Dimensions[0], Y: b.Dimensions[1], Z: b.Dimensions[2]}
}

// Start returns the initial body position.
func (b BodyConfig) Start() pmath.Vec3 {
	return pmath.Vec3{X: b.Position[0], Y: b.Position[1], Z: b.Position[2]}
}
