// Package water provides the ocean surface grid and its per-tick animation.
package water

import (
	"errors"
	"fmt"

	pmath "github.com/Faultbox/swell/pkg/math"
	"github.com/Faultbox/swell/pkg/wave"
)

// Default grid parameters.
const (
	DefaultGridSize  = 200
	DefaultWorldSize = 100.0
)

// ErrInvalidGrid is returned for grids that cannot be built.
var ErrInvalidGrid = errors.New("water: invalid grid")

// Surface holds water grid geometry ready for upload.
// Vertices, Normals and UVs are flat arrays (3, 3 and 2 floats per vertex).
type Surface struct {
	GridSize  int
	WorldSize float32

	Base     []pmath.Vec2 // rest (x, z) of every vertex
	Vertices []float32
	Normals  []float32
	UVs      []float32
	Indices  []uint32

	offsets []pmath.Vec3
}

// BuildGrid creates a gridSize x gridSize vertex grid spanning worldSize
// units, centred on the origin at height zero. Vertices are row-major in Z.
func BuildGrid(gridSize int, worldSize float32) (*Surface, error) {
	if gridSize < 2 {
		return nil, fmt.Errorf("%w: grid size %d, need at least 2", ErrInvalidGrid, gridSize)
	}
	if !(worldSize > 0) {
		return nil, fmt.Errorf("%w: world size %v", ErrInvalidGrid, worldSize)
	}

	count := gridSize * gridSize
	s := &Surface{
		GridSize:  gridSize,
		WorldSize: worldSize,
		Base:      make([]pmath.Vec2, 0, count),
		Vertices:  make([]float32, 0, count*3),
		Normals:   make([]float32, 0, count*3),
		UVs:       make([]float32, 0, count*2),
		Indices:   make([]uint32, 0, (gridSize-1)*(gridSize-1)*6),
		offsets:   make([]pmath.Vec3, count),
	}

	step := worldSize / float32(gridSize-1)
	half := worldSize / 2
	last := float32(gridSize - 1)

	for z := 0; z < gridSize; z++ {
		for x := 0; x < gridSize; x++ {
			px := float32(x)*step - half
			pz := float32(z)*step - half

			s.Base = append(s.Base, pmath.Vec2{X: px, Y: pz})
			s.Vertices = append(s.Vertices, px, 0, pz)
			s.Normals = append(s.Normals, 0, 1, 0)
			s.UVs = append(s.UVs, float32(x)/last, float32(z)/last)
		}
	}

	// Two counter-clockwise (seen from above) triangles per cell.
	g := uint32(gridSize)
	for z := uint32(0); z < g-1; z++ {
		for x := uint32(0); x < g-1; x++ {
			idx := z*g + x
			s.Indices = append(s.Indices,
				idx, idx+g, idx+1,
				idx+1, idx+g, idx+g+1,
			)
		}
	}

	return s, nil
}

// VertexCount returns the number of grid vertices.
func (s *Surface) VertexCount() int {
	return len(s.Base)
}

// Position returns the displaced position of vertex i.
func (s *Surface) Position(i int) pmath.Vec3 {
	return pmath.Vec3{X: s.Vertices[i*3], Y: s.Vertices[i*3+1], Z: s.Vertices[i*3+2]}
}

// Normal returns the normal of vertex i.
func (s *Surface) Normal(i int) pmath.Vec3 {
	return pmath.Vec3{X: s.Normals[i*3], Y: s.Normals[i*3+1], Z: s.Normals[i*3+2]}
}

// Update displaces every vertex by ws at time t, spreading evaluation over
// up to workers goroutines, then recomputes smooth normals.
func (s *Surface) Update(ws *wave.Set, t float32, workers int) error {
	offsets, err := ws.EvaluateParallel(s.Base, t, s.offsets, workers)
	if err != nil {
		return fmt.Errorf("displacing surface at t=%v: %w", t, err)
	}
	s.offsets = offsets

	for i, b := range s.Base {
		d := offsets[i]
		s.Vertices[i*3] = b.X + d.X
		s.Vertices[i*3+1] = d.Y
		s.Vertices[i*3+2] = b.Y + d.Z
	}
	s.computeNormals()
	return nil
}

// computeNormals sets each vertex normal to the normalized sum of the
// area-weighted normals of the triangles sharing it.
func (s *Surface) computeNormals() {
	clear(s.Normals)

	for i := 0; i+2 < len(s.Indices); i += 3 {
		ia, ib, ic := int(s.Indices[i]), int(s.Indices[i+1]), int(s.Indices[i+2])
		a, b, c := s.Position(ia), s.Position(ib), s.Position(ic)
		n := b.Sub(a).Cross(c.Sub(a))
		for _, v := range [3]int{ia, ib, ic} {
			s.Normals[v*3] += n.X
			s.Normals[v*3+1] += n.Y
			s.Normals[v*3+2] += n.Z
		}
	}

	for v := range s.Base {
		n := s.Normal(v).Normalize()
		if n == (pmath.Vec3{}) {
			n = pmath.Up
		}
		s.Normals[v*3], s.Normals[v*3+1], s.Normals[v*3+2] = n.X, n.Y, n.Z
	}
}
