package config

import (
	"errors"
	"fmt"
)

// Validate checks settings that would otherwise fail deep inside the
// simulation. Wave parameters are validated by wave.Build.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Waves) == 0 {
		errs = append(errs, errors.New("waves: at least one wave is required"))
	}
	if c.Surface.Enabled && c.Surface.GridSize < 2 {
		errs = append(errs, fmt.Errorf("surface.grid_size: %d is below 2", c.Surface.GridSize))
	}
	if c.Surface.Enabled && !(c.Surface.WorldSize > 0) {
		errs = append(errs, fmt.Errorf("surface.world_size: %v must be positive", c.Surface.WorldSize))
	}
	if c.Surface.SampleMesh && !c.Surface.Enabled {
		errs = append(errs, errors.New("surface.sample_mesh: requires surface.enabled"))
	}
	if c.Surface.Workers < 0 {
		errs = append(errs, fmt.Errorf("surface.workers: %d is negative", c.Surface.Workers))
	}
	if !(c.Simulation.TickRate > 0) {
		errs = append(errs, fmt.Errorf("simulation.tick_rate: %v must be positive", c.Simulation.TickRate))
	}
	if c.Simulation.Ticks < 0 {
		errs = append(errs, fmt.Errorf("simulation.ticks: %d is negative", c.Simulation.Ticks))
	}
	if c.Simulation.Ticks == 0 && !c.Simulation.Realtime {
		errs = append(errs, errors.New("simulation.ticks: unbounded runs require realtime"))
	}
	for i, b := range c.Bodies {
		for _, d := range b.Dimensions {
			if !(d > 0) {
				errs = append(errs, fmt.Errorf("bodies[%d] %q: dimensions must be positive", i, b.Name))
				break
			}
		}
		if !(b.Density > 0) {
			errs = append(errs, fmt.Errorf("bodies[%d] %q: density must be positive", i, b.Name))
		}
	}
	return errors.Join(errs...)
}
