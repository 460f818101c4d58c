package math

import (
	"math"
	"testing"
)

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func nearVec3(a, b Vec3, eps float32) bool {
	return near(a.X, b.X, eps) && near(a.Y, b.Y, eps) && near(a.Z, b.Z, eps)
}

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if !near(length, 1, 0.0001) {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}

	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("degenerate quaternion should normalize to identity, got %v", got)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if !near(q.W, expectedW, 0.001) {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if !near(q.Y, expectedY, 0.001) {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatRotate(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vec3
		angle float32
		in    Vec3
		want  Vec3
	}{
		{"identity", Vec3{0, 1, 0}, 0, Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{"x to -z about y", Vec3{0, 1, 0}, math.Pi / 2, Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"up to z about x", Vec3{1, 0, 0}, math.Pi / 2, Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"up to -x about z", Vec3{0, 0, 1}, math.Pi / 2, Vec3{0, 1, 0}, Vec3{-1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromAxisAngle(tt.axis, tt.angle)
			got := q.Rotate(tt.in)
			if !nearVec3(got, tt.want, 0.0001) {
				t.Errorf("Rotate(%v) = %v, want %v", tt.in, got, tt.want)
			}
			// Rotation matrix agrees with direct rotation
			viaMat := q.ToMat4().TransformDirection(tt.in)
			if !nearVec3(viaMat, got, 0.0001) {
				t.Errorf("ToMat4 rotation = %v, Rotate = %v", viaMat, got)
			}
			// Conjugate undoes the rotation
			back := q.Conjugate().Rotate(got)
			if !nearVec3(back, tt.in, 0.0001) {
				t.Errorf("Conjugate().Rotate() = %v, want %v", back, tt.in)
			}
		})
	}
}

func TestQuatIntegrate(t *testing.T) {
	// Spin at pi/2 rad/s about Y for one second in small steps.
	q := QuatIdentity()
	omega := Vec3{0, math.Pi / 2, 0}
	const steps = 1000
	for i := 0; i < steps; i++ {
		q = q.Integrate(omega, 1.0/steps)
	}

	want := QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)
	if !near(q.W, want.W, 0.001) || !near(q.Y, want.Y, 0.001) {
		t.Errorf("Integrate: got %v, want %v", q, want)
	}
}

func TestQuatToMat4(t *testing.T) {
	q := QuatIdentity()
	m := q.ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if !near(m[i], identity[i], 0.0001) {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}
