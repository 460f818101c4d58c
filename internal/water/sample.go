package water

import (
	"github.com/Faultbox/swell/pkg/buoyancy"
	pmath "github.com/Faultbox/swell/pkg/math"
)

var _ buoyancy.Surface = (*Surface)(nil)

// Height returns the mesh height at a world position, bilinearly
// interpolated from the heights of the four surrounding rest-grid vertices
// as of the last Update. Horizontal displacement is ignored and positions
// outside the grid clamp to its edge. The time argument is unused; it lets
// a Surface stand in for the analytic wave field.
func (s *Surface) Height(x, z, _ float32) float32 {
	cx, cz, fx, fz := s.cell(x, z)
	sw, se, nw, ne := s.corners(cx, cz)

	south := sw*(1-fx) + se*fx
	north := nw*(1-fx) + ne*fx
	return south*(1-fz) + north*fz
}

// Slope returns the gradient (dh/dx, dh/dz) of the interpolated height.
func (s *Surface) Slope(x, z, _ float32) pmath.Vec2 {
	cx, cz, fx, fz := s.cell(x, z)
	sw, se, nw, ne := s.corners(cx, cz)
	step := s.step()

	dx := ((se-sw)*(1-fz) + (ne-nw)*fz) / step
	dz := ((nw-sw)*(1-fx) + (ne-se)*fx) / step
	return pmath.Vec2{X: dx, Y: dz}
}

func (s *Surface) step() float32 {
	return s.WorldSize / float32(s.GridSize-1)
}

// cell returns the grid cell containing (x, z) and the fractional position
// inside it.
func (s *Surface) cell(x, z float32) (cx, cz int, fx, fz float32) {
	step := s.step()
	half := s.WorldSize / 2
	gx := (x + half) / step
	gz := (z + half) / step

	cx = clampCell(gx, s.GridSize)
	cz = clampCell(gz, s.GridSize)
	fx = clampf(gx-float32(cx), 0, 1)
	fz = clampf(gz-float32(cz), 0, 1)
	return cx, cz, fx, fz
}

// corners returns the SW, SE, NW and NE vertex heights of a cell.
func (s *Surface) corners(cx, cz int) (sw, se, nw, ne float32) {
	g := s.GridSize
	h := func(x, z int) float32 { return s.Vertices[(z*g+x)*3+1] }
	return h(cx, cz), h(cx+1, cz), h(cx, cz+1), h(cx+1, cz+1)
}

func clampCell(g float32, gridSize int) int {
	c := int(g)
	if g < 0 {
		c = 0
	}
	if c > gridSize-2 {
		c = gridSize - 2
	}
	return c
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
