// Package sim drives floating bodies on a wave surface with a fixed timestep.
package sim

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/swell/internal/water"
	"github.com/Faultbox/swell/pkg/buoyancy"
	pmath "github.com/Faultbox/swell/pkg/math"
	"github.com/Faultbox/swell/pkg/wave"
)

var (
	// ErrNonFinite reports a body whose state became NaN or infinite.
	ErrNonFinite = errors.New("sim: non-finite body state")
	// ErrUnknownBody is returned for IDs not in the world.
	ErrUnknownBody = errors.New("sim: unknown body")
)

// DefaultTickRate is the fixed simulation rate in Hz.
const DefaultTickRate = 60.0

// BodySpec describes a floating box to add to the world.
type BodySpec struct {
	Name       string
	Dimensions pmath.Vec3
	Config     buoyancy.Config
	Start      buoyancy.State
}

// Body is a snapshot of a floating body after the last step.
type Body struct {
	ID     uuid.UUID
	Name   string
	State  buoyancy.State
	Output buoyancy.Output // forces applied during the last step
}

type body struct {
	Body
	solver  *buoyancy.Solver
	mass    float32
	gravity float32
	inertia pmath.Vec3
}

// World owns the floating bodies and advances them over a shared wave set.
// Simulation time is tick * dt, so any tick reproduces the same surface.
type World struct {
	mu sync.Mutex

	waves   *wave.Set
	surface *water.Surface
	sample  buoyancy.Surface
	onMesh  bool
	workers int
	dt      float64
	tick    uint64

	bodies map[uuid.UUID]*body
	order  []uuid.UUID

	log *zap.Logger
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		w.log = l
	}
}

// WithSurface makes every step update the mesh using up to workers
// goroutines (0 means one per CPU).
func WithSurface(s *water.Surface, workers int) Option {
	return func(w *World) {
		w.surface = s
		w.workers = workers
	}
}

// WithMeshSampling makes bodies float on the mesh set by WithSurface
// instead of the analytic wave field. Both report the height of the surface
// point whose rest position is (x, z), so steepness adds no error; the mesh
// differs only by its bilinear error, roughly A·(k·cell)²/8 per wave.
func WithMeshSampling() Option {
	return func(w *World) {
		w.onMesh = true
	}
}

// WithTickRate sets the fixed step rate in Hz.
func WithTickRate(hz float64) Option {
	return func(w *World) {
		if hz > 0 {
			w.dt = 1 / hz
		}
	}
}

// NewWorld creates an empty world over waves.
func NewWorld(waves *wave.Set, opts ...Option) (*World, error) {
	if waves == nil {
		return nil, errors.New("sim: nil wave set")
	}
	w := &World{
		waves:  waves,
		dt:     1 / DefaultTickRate,
		bodies: make(map[uuid.UUID]*body),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.sample = waves
	if w.onMesh && w.surface != nil {
		w.sample = w.surface
	}
	if w.workers <= 0 {
		w.workers = runtime.GOMAXPROCS(0)
	}
	w.log.Debug("world created",
		zap.Int("waves", waves.Len()),
		zap.String("fingerprint", fmt.Sprintf("%016x", waves.Fingerprint())),
		zap.Float64("dt", w.dt),
	)
	return w, nil
}

// AddBody validates spec and adds the body, returning its ID.
func (w *World) AddBody(spec BodySpec) (uuid.UUID, error) {
	d := spec.Dimensions
	if !(d.X > 0 && d.Y > 0 && d.Z > 0) || !d.IsFinite() {
		return uuid.Nil, fmt.Errorf("body %q: %w: dimensions %v must be positive", spec.Name, buoyancy.ErrInvalidBodyConfig, d)
	}
	solver, err := buoyancy.NewSolver(spec.Config)
	if err != nil {
		return uuid.Nil, fmt.Errorf("body %q: %w", spec.Name, err)
	}
	start := spec.Start
	if start.Orientation == (pmath.Quat{}) {
		start.Orientation = pmath.QuatIdentity()
	}

	b := &body{
		Body: Body{
			ID:    uuid.New(),
			Name:  spec.Name,
			State: start,
		},
		solver:  solver,
		mass:    spec.Config.Mass,
		gravity: spec.Config.Gravity,
		inertia: BoxInertia(spec.Config.Mass, spec.Dimensions),
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.bodies[b.ID] = b
	w.order = append(w.order, b.ID)
	w.log.Debug("body added", zap.String("body", b.Name), zap.Stringer("id", b.ID))
	return b.ID, nil
}

// RemoveBody removes a body from the world.
func (w *World) RemoveBody(id uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.bodies[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBody, id)
	}
	delete(w.bodies, id)
	for i, o := range w.order {
		if o == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return nil
}

// Body returns a snapshot of one body.
func (w *World) Body(id uuid.UUID) (Body, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bodies[id]
	if !ok {
		return Body{}, fmt.Errorf("%w: %s", ErrUnknownBody, id)
	}
	return b.Body, nil
}

// Bodies returns snapshots of all bodies in insertion order.
func (w *World) Bodies() []Body {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Body, len(w.order))
	for i, id := range w.order {
		out[i] = w.bodies[id].Body
	}
	return out
}

// SamplePoints returns the world-space buoyancy sample points of a body.
func (w *World) SamplePoints(id uuid.UUID) ([]pmath.Vec3, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bodies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBody, id)
	}
	return b.solver.SamplePoints(b.State, nil), nil
}

// Waves returns the wave set.
func (w *World) Waves() *wave.Set {
	return w.waves
}

// Surface returns the mesh updated by Step, or nil.
func (w *World) Surface() *water.Surface {
	return w.surface
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tick
}

// Time returns the simulation time in seconds.
func (w *World) Time() float32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.timeAt(w.tick)
}

// StepDuration returns the fixed timestep in seconds.
func (w *World) StepDuration() float64 {
	return w.dt
}

func (w *World) timeAt(tick uint64) float32 {
	return float32(float64(tick) * w.dt)
}

// Step advances the world by one fixed tick. Forces are evaluated at the
// current time, then every body is integrated to the next tick. Bodies are
// solved concurrently; each writes only its own state.
func (w *World) Step() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	t := w.timeAt(w.tick)
	dt := float32(w.dt)

	if w.surface != nil {
		if err := w.surface.Update(w.waves, t, w.workers); err != nil {
			return fmt.Errorf("tick %d: %w", w.tick, err)
		}
	}

	type result struct {
		state buoyancy.State
		out   buoyancy.Output
	}
	results := make([]result, len(w.order))

	var g errgroup.Group
	g.SetLimit(w.workers)
	for i, id := range w.order {
		i := i
		b := w.bodies[id]
		g.Go(func() error {
			out := b.solver.Solve(w.sample, b.State, t)
			next := integrate(b.State, out, b.mass, b.gravity, b.inertia, dt)
			if !out.IsFinite() || !stateFinite(next) {
				return fmt.Errorf("%w: body %q at tick %d", ErrNonFinite, b.Name, w.tick)
			}
			results[i] = result{state: next, out: out}
			return nil
		})
	}
	// A failed step leaves every body untouched.
	if err := g.Wait(); err != nil {
		w.log.Error("step failed", zap.Uint64("tick", w.tick), zap.Error(err))
		return err
	}
	for i, id := range w.order {
		b := w.bodies[id]
		b.State = results[i].state
		b.Output = results[i].out
	}

	w.tick++
	return nil
}
