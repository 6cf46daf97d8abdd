package geom

import "github.com/go-gl/mathgl/mgl32"

// Mat4 is a 4x4 column-major matrix (element [col*4+row]), the layout of mgl32.Mat4, OpenGL
// and raylib's M0..M15.
type Mat4 mgl32.Mat4

// Identity4 returns the identity matrix.
func Identity4() Mat4 {
	return Mat4(mgl32.Ident4())
}

// Compose builds translation * rotation * scale.
func Compose(position Vec3, rotation Quat, scale Vec3) Mat4 {
	m := mgl32.Translate3D(position.X, position.Y, position.Z).
		Mul4(rotation.gl().Mat4()).
		Mul4(mgl32.Scale3D(scale.X, scale.Y, scale.Z))
	return Mat4(m)
}

// Mul returns m*n.
func (m Mat4) Mul(n Mat4) Mat4 {
	return Mat4(mgl32.Mat4(m).Mul4(mgl32.Mat4(n)))
}

// TransformPoint applies m to p with w=1.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return fromGL(mgl32.Mat4(m).Mul4x1(p.gl().Vec4(1)).Vec3())
}
