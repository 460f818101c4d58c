package wave

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	pmath "github.com/Faultbox/swell/pkg/math"
)

// LaneWidth is the number of positions evaluated together by EvaluateBatch.
const LaneWidth = 4

type lanes [LaneWidth]float32

// EvaluateBatch evaluates every position at time t and writes the results
// into out, growing it when it is too short. Positions are processed in
// groups of LaneWidth in structure-of-arrays form; the remainder goes
// through Evaluate. Results are bit-identical to calling Evaluate per
// position.
func (s *Set) EvaluateBatch(positions []pmath.Vec2, t float32, out []pmath.Vec3) []pmath.Vec3 {
	n := len(positions)
	if cap(out) < n {
		out = make([]pmath.Vec3, n)
	}
	out = out[:n]

	full := n - n%LaneWidth
	for base := 0; base < full; base += LaneWidth {
		s.evaluateLanes(positions[base:base+LaneWidth], t, out[base:base+LaneWidth])
	}
	for i := full; i < n; i++ {
		out[i] = s.Evaluate(positions[i].X, positions[i].Y, t)
	}
	return out
}

// evaluateLanes runs the Evaluate arithmetic on LaneWidth positions at once.
// The wave loop is outermost so each lane sums in wave order.
func (s *Set) evaluateLanes(pos []pmath.Vec2, t float32, out []pmath.Vec3) {
	var px, pz, dx, dy, dz, ph, sn, cs lanes
	for l := 0; l < LaneWidth; l++ {
		px[l] = pos[l].X
		pz[l] = pos[l].Y
	}

	for i := range s.waves {
		w := &s.waves[i]
		for l := 0; l < LaneWidth; l++ {
			d := float32(w.Direction.X*px[l]) + float32(w.Direction.Y*pz[l])
			ph[l] = float32(w.K*d) - float32(w.Omega*t)
		}
		for l := 0; l < LaneWidth; l++ {
			sn[l] = float32(math.Sin(float64(ph[l])))
			cs[l] = float32(math.Cos(float64(ph[l])))
		}
		for l := 0; l < LaneWidth; l++ {
			dy[l] += float32(w.Amplitude * sn[l])
			h := float32(w.QA * cs[l])
			dx[l] += float32(h * w.Direction.X)
			dz[l] += float32(h * w.Direction.Y)
		}
	}

	for l := 0; l < LaneWidth; l++ {
		out[l] = pmath.Vec3{X: dx[l], Y: dy[l], Z: dz[l]}
	}
}

// minChunk is the smallest slice of positions handed to a worker.
const minChunk = 64 * LaneWidth

// EvaluateParallel splits positions into lane-aligned chunks and evaluates
// them on up to workers goroutines with EvaluateBatch. The output is
// identical to EvaluateBatch regardless of worker count. It returns
// ErrNonFinite if any result is NaN or infinite.
func (s *Set) EvaluateParallel(positions []pmath.Vec2, t float32, out []pmath.Vec3, workers int) ([]pmath.Vec3, error) {
	n := len(positions)
	if cap(out) < n {
		out = make([]pmath.Vec3, n)
	}
	out = out[:n]
	if workers < 1 {
		workers = 1
	}

	chunk := (n + workers - 1) / workers
	chunk += (LaneWidth - chunk%LaneWidth) % LaneWidth
	if chunk < minChunk {
		chunk = minChunk
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunk {
		start := start
		end := min(start+chunk, n)
		g.Go(func() error {
			s.EvaluateBatch(positions[start:end], t, out[start:end])
			return checkFinite(out[start:end], start)
		})
	}
	return out, g.Wait()
}

// NonFiniteError locates the first non-finite result of a batch.
type NonFiniteError struct {
	Index int
	Value pmath.Vec3
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("%v at index %d: %v", ErrNonFinite, e.Index, e.Value)
}

func (e *NonFiniteError) Unwrap() error {
	return ErrNonFinite
}

// CheckFinite returns a *NonFiniteError for the first NaN or infinite value.
func CheckFinite(results []pmath.Vec3) error {
	return checkFinite(results, 0)
}

func checkFinite(results []pmath.Vec3, offset int) error {
	for i, v := range results {
		if !v.IsFinite() {
			return &NonFiniteError{Index: offset + i, Value: v}
		}
	}
	return nil
}
