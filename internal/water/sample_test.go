package water

import (
	"math"
	"testing"

	pmath "github.com/Faultbox/swell/pkg/math"
	"github.com/Faultbox/swell/pkg/wave"
)

func approx(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

// tilt sets every vertex height on the plane h = a*x + b*z.
func tilt(s *Surface, a, b float32) {
	for i, p := range s.Base {
		s.Vertices[i*3+1] = a*p.X + b*p.Y
	}
}

func TestHeightFlatBeforeUpdate(t *testing.T) {
	s, _ := BuildGrid(5, 8)
	for _, p := range []pmath.Vec2{{}, {X: 1.3, Y: -2.7}, {X: 100, Y: 100}} {
		if h := s.Height(p.X, p.Y, 0); h != 0 {
			t.Errorf("Height(%v) = %v, want 0", p, h)
		}
		if sl := s.Slope(p.X, p.Y, 0); sl != (pmath.Vec2{}) {
			t.Errorf("Slope(%v) = %v, want zero", p, sl)
		}
	}
}

func TestHeightInterpolatesPlane(t *testing.T) {
	s, _ := BuildGrid(9, 16)
	tilt(s, 0.25, -0.5)

	for _, p := range []pmath.Vec2{{}, {X: 1.3, Y: -2.7}, {X: -7.9, Y: 7.9}, {X: 3, Y: 3}} {
		want := 0.25*p.X - 0.5*p.Y
		if h := s.Height(p.X, p.Y, 0); !approx(h, want, 1e-5) {
			t.Errorf("Height(%v) = %v, want %v", p, h, want)
		}
		sl := s.Slope(p.X, p.Y, 0)
		if !approx(sl.X, 0.25, 1e-5) || !approx(sl.Y, -0.5, 1e-5) {
			t.Errorf("Slope(%v) = %v, want (0.25, -0.5)", p, sl)
		}
	}
}

func TestHeightAtVertices(t *testing.T) {
	s, _ := BuildGrid(4, 6)
	for i := 0; i < s.VertexCount(); i++ {
		s.Vertices[i*3+1] = float32(i)
	}
	for i, p := range s.Base {
		if h := s.Height(p.X, p.Y, 0); !approx(h, float32(i), 1e-5) {
			t.Errorf("vertex %d: height %v, want %d", i, h, i)
		}
	}
}

func TestHeightClampsOutsideGrid(t *testing.T) {
	s, _ := BuildGrid(5, 8)
	tilt(s, 1, 1)

	if h := s.Height(-50, -50, 0); !approx(h, -8, 1e-5) {
		t.Errorf("far south-west = %v, want -8", h)
	}
	if h := s.Height(50, 50, 0); !approx(h, 8, 1e-5) {
		t.Errorf("far north-east = %v, want 8", h)
	}
}

func TestHeightTracksWaves(t *testing.T) {
	ws := wave.MustBuild([]wave.Params{
		{Amplitude: 0.5, Wavelength: 40, Speed: 2, Direction: pmath.Vec2{X: 1, Y: 0.5}},
	})
	s, _ := BuildGrid(81, 40)
	const tm = 1.7
	if err := s.Update(ws, tm, 2); err != nil {
		t.Fatalf("Update: %v", err)
	}

	for _, p := range []pmath.Vec2{{}, {X: 3.3, Y: -1.1}, {X: -12.4, Y: 9.05}} {
		want := ws.Height(p.X, p.Y, tm)
		if h := s.Height(p.X, p.Y, tm); !approx(h, want, 0.01) {
			t.Errorf("Height(%v) = %v, analytic %v", p, h, want)
		}
		ms, as := s.Slope(p.X, p.Y, tm), ws.Slope(p.X, p.Y, tm)
		if !approx(ms.X, as.X, 0.02) || !approx(ms.Y, as.Y, 0.02) {
			t.Errorf("Slope(%v) = %v, analytic %v", p, ms, as)
		}
	}
}

func TestHeightTracksSteepWaves(t *testing.T) {
	ws := wave.MustBuild([]wave.Params{
		{Amplitude: 0.5, Wavelength: 40, Speed: 2, Direction: pmath.Vec2{X: 1}, Steepness: 1},
		{Amplitude: 0.3, Wavelength: 25, Speed: 1.5, Direction: pmath.Vec2{X: 0.3, Y: 1}, Steepness: 1},
	})
	s, _ := BuildGrid(81, 40)
	const tm = 0.9
	if err := s.Update(ws, tm, 2); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Heights are keyed by rest position on both sides, so horizontal
	// displacement does not widen the gap.
	for _, p := range []pmath.Vec2{{}, {X: 3.3, Y: -1.1}, {X: -12.4, Y: 9.05}} {
		want := ws.Height(p.X, p.Y, tm)
		if h := s.Height(p.X, p.Y, tm); !approx(h, want, 0.01) {
			t.Errorf("Height(%v) = %v, analytic %v", p, h, want)
		}
	}
}
