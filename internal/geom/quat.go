package geom

import "github.com/go-gl/mathgl/mgl32"

// Quat is a rotation quaternion (x, y, z, w) backed by mgl32.Quat.
type Quat struct {
	X, Y, Z, W float32
}

// Identity is the no-rotation quaternion.
var Identity = Quat{W: 1}

func (q Quat) gl() mgl32.Quat { return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}} }

func quatFromGL(q mgl32.Quat) Quat { return Quat{q.V[0], q.V[1], q.V[2], q.W} }

// QuatFromAxisAngle returns the rotation of angle radians about axis. axis must be unit length.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	return quatFromGL(mgl32.QuatRotate(angle, axis.gl()))
}

// Mul returns q*r: applying the result rotates by r first, then q.
func (q Quat) Mul(r Quat) Quat {
	return quatFromGL(q.gl().Mul(r.gl()))
}

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	return fromGL(q.gl().Rotate(v.gl()))
}

// Normalize returns q scaled to unit length; the zero quaternion becomes Identity.
func (q Quat) Normalize() Quat {
	return quatFromGL(q.gl().Normalize())
}
