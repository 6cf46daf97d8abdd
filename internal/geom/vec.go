package geom

import "github.com/go-gl/mathgl/mgl32"

// Vec3 is a 3D vector or point in world units. Y is up. The arithmetic is mgl32's; Vec3 keeps
// named fields so scene code and tests can read components directly.
type Vec3 struct {
	X, Y, Z float32
}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (a Vec3) gl() mgl32.Vec3 { return mgl32.Vec3{a.X, a.Y, a.Z} }

func fromGL(v mgl32.Vec3) Vec3 { return Vec3{v[0], v[1], v[2]} }

func (a Vec3) Add(b Vec3) Vec3      { return fromGL(a.gl().Add(b.gl())) }
func (a Vec3) Sub(b Vec3) Vec3      { return fromGL(a.gl().Sub(b.gl())) }
func (a Vec3) Scale(s float32) Vec3 { return fromGL(a.gl().Mul(s)) }
func (a Vec3) Dot(b Vec3) float32   { return a.gl().Dot(b.gl()) }
func (a Vec3) Cross(b Vec3) Vec3    { return fromGL(a.gl().Cross(b.gl())) }
func (a Vec3) Length() float32      { return a.gl().Len() }

// DistanceSq returns the squared distance between a and b.
func (a Vec3) DistanceSq(b Vec3) float32 {
	return a.gl().Sub(b.gl()).LenSqr()
}

func (a Vec3) Distance(b Vec3) float32 { return a.gl().Sub(b.gl()).Len() }

// Normalize returns a unit vector in the direction of a. The zero vector is returned unchanged.
func (a Vec3) Normalize() Vec3 {
	if a == (Vec3{}) {
		return a
	}
	return fromGL(a.gl().Normalize())
}

// Lerp interpolates between a (t=0) and b (t=1).
func (a Vec3) Lerp(b Vec3, t float32) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// Array returns the components as [3]float32, the layout raylib uniforms take.
func (a Vec3) Array() [3]float32 { return a.gl() }
