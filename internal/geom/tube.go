package geom

import (
	"math"

	"github.com/chewxy/math32"
)

// Path is a curve parameterized by arc-length fraction u in [0,1].
type Path interface {
	PointAt(u float32) Vec3
	TangentAt(u float32) Vec3
}

// Frames holds the moving frame sampled at segments+1 evenly spaced points along a path.
type Frames struct {
	Tangents  []Vec3
	Normals   []Vec3
	Binormals []Vec3
}

const frameEpsilon = 1e-6

// FrenetFrames computes rotation-minimizing frames by parallel transport of an initial
// normal. For a closed path the accumulated twist between the first and last frame is
// spread evenly over all segments so the ends meet.
func FrenetFrames(p Path, segments int, closed bool) Frames {
	f := Frames{
		Tangents:  make([]Vec3, segments+1),
		Normals:   make([]Vec3, segments+1),
		Binormals: make([]Vec3, segments+1),
	}
	for i := 0; i <= segments; i++ {
		f.Tangents[i] = p.TangentAt(float32(i) / float32(segments))
	}

	// Initial normal: the axis the first tangent is least aligned with.
	t0 := f.Tangents[0]
	minAbs := float32(math.MaxFloat32)
	var axis Vec3
	if a := math32.Abs(t0.X); a <= minAbs {
		minAbs = a
		axis = Vec3{1, 0, 0}
	}
	if a := math32.Abs(t0.Y); a <= minAbs {
		minAbs = a
		axis = Vec3{0, 1, 0}
	}
	if a := math32.Abs(t0.Z); a <= minAbs {
		axis = Vec3{0, 0, 1}
	}
	v := t0.Cross(axis).Normalize()
	f.Normals[0] = t0.Cross(v)
	f.Binormals[0] = t0.Cross(f.Normals[0])

	for i := 1; i <= segments; i++ {
		f.Normals[i] = f.Normals[i-1]
		f.Binormals[i] = f.Binormals[i-1]
		v := f.Tangents[i-1].Cross(f.Tangents[i])
		if v.Length() > frameEpsilon {
			v = v.Normalize()
			theta := math32.Acos(clamp(f.Tangents[i-1].Dot(f.Tangents[i]), -1, 1))
			f.Normals[i] = QuatFromAxisAngle(v, theta).Rotate(f.Normals[i])
		}
		f.Binormals[i] = f.Tangents[i].Cross(f.Normals[i])
	}

	if closed {
		theta := math32.Acos(clamp(f.Normals[0].Dot(f.Normals[segments]), -1, 1)) / float32(segments)
		if f.Tangents[0].Dot(f.Normals[0].Cross(f.Normals[segments])) > 0 {
			theta = -theta
		}
		for i := 1; i <= segments; i++ {
			f.Normals[i] = QuatFromAxisAngle(f.Tangents[i], theta*float32(i)).Rotate(f.Normals[i])
			f.Binormals[i] = f.Tangents[i].Cross(f.Normals[i])
		}
	}
	return f
}

func clamp(x, lo, hi float32) float32 {
	return max(lo, min(hi, x))
}

// Tube sweeps a circle of radius around p. It has (tubular+1)*(radial+1) vertices; when
// closed the last ring repeats the first ring's positions so the loop is seamless.
func Tube(p Path, tubular int, radius float32, radial int, closed bool) *Geometry {
	tubular = max(tubular, 1)
	radial = max(radial, 3)
	frames := FrenetFrames(p, tubular, closed)

	n := (tubular + 1) * (radial + 1)
	g := &Geometry{
		Positions: make([]float32, 0, n*3),
		Normals:   make([]float32, 0, n*3),
		UVs:       make([]float32, 0, n*2),
		Indices:   make([]uint32, 0, tubular*radial*6),
	}
	ring := func(i int) {
		center := p.PointAt(float32(i) / float32(tubular))
		N, B := frames.Normals[i], frames.Binormals[i]
		for j := 0; j <= radial; j++ {
			a := float32(j) / float32(radial) * 2 * math32.Pi
			sin, cos := math32.Sin(a), -math32.Cos(a)
			nrm := N.Scale(cos).Add(B.Scale(sin)).Normalize()
			pos := center.Add(nrm.Scale(radius))
			g.Positions = append(g.Positions, pos.X, pos.Y, pos.Z)
			g.Normals = append(g.Normals, nrm.X, nrm.Y, nrm.Z)
		}
	}
	for i := 0; i < tubular; i++ {
		ring(i)
	}
	if closed {
		ring(0)
	} else {
		ring(tubular)
	}

	for i := 0; i <= tubular; i++ {
		for j := 0; j <= radial; j++ {
			g.UVs = append(g.UVs, float32(i)/float32(tubular), float32(j)/float32(radial))
		}
	}

	stride := uint32(radial + 1)
	for j := uint32(1); j <= uint32(tubular); j++ {
		for i := uint32(1); i <= uint32(radial); i++ {
			a := stride*(j-1) + (i - 1)
			b := stride*j + (i - 1)
			c := stride*j + i
			d := stride*(j-1) + i
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g
}
