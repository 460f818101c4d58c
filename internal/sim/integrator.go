package sim

import (
	"github.com/Faultbox/swell/pkg/buoyancy"
	pmath "github.com/Faultbox/swell/pkg/math"
)

// BoxInertia returns the principal moments of inertia of a solid box with
// full extents dims (x, y, z).
func BoxInertia(mass float32, dims pmath.Vec3) pmath.Vec3 {
	xx, yy, zz := dims.X*dims.X, dims.Y*dims.Y, dims.Z*dims.Z
	k := mass / 12
	return pmath.Vec3{X: k * (yy + zz), Y: k * (xx + zz), Z: k * (xx + yy)}
}

// integrate advances st by dt under the solver output and gravity using
// semi-implicit Euler: velocities first, then pose from the new velocities.
// Gyroscopic terms are ignored.
func integrate(st buoyancy.State, out buoyancy.Output, mass, gravity float32, inertia pmath.Vec3, dt float32) buoyancy.State {
	accel := out.Force.Scale(1 / mass)
	accel.Y -= gravity
	st.Velocity = st.Velocity.Add(accel.Scale(dt))
	st.Position = st.Position.Add(st.Velocity.Scale(dt))

	// Angular acceleration in body space, where the inertia tensor is diagonal.
	inv := st.Orientation.Conjugate()
	alphaLocal := inv.Rotate(out.Torque).Div(inertia)
	alpha := st.Orientation.Rotate(alphaLocal)
	st.AngularVelocity = st.AngularVelocity.Add(alpha.Scale(dt))
	st.Orientation = st.Orientation.Integrate(st.AngularVelocity, dt)

	return st
}

func stateFinite(st buoyancy.State) bool {
	return st.Position.IsFinite() && st.Velocity.IsFinite() &&
		st.AngularVelocity.IsFinite() && st.Orientation.IsFinite()
}
