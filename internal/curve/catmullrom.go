// Package curve implements a centripetal Catmull-Rom spline with arc-length sampling.
package curve

import (
	"sort"

	"github.com/chewxy/math32"

	"space-demos/internal/geom"
)

// DefaultArcDivisions is how many chords approximate the curve length for arc-length lookups.
const DefaultArcDivisions = 200

// tangentDelta is the parameter step used to differentiate the curve numerically.
const tangentDelta = 1e-4

// CatmullRom interpolates through every control point. The parameterization is centripetal
// (alpha 0.5), which avoids cusps and self-intersections inside a segment. End tangents of an
// open curve come from mirrored phantom points.
type CatmullRom struct {
	points     []geom.Vec3
	closed     bool
	arcLengths []float32
}

// NewCatmullRom returns a curve through points. It needs at least two points.
func NewCatmullRom(points []geom.Vec3, closed bool) *CatmullRom {
	c := &CatmullRom{points: append([]geom.Vec3(nil), points...), closed: closed}
	c.arcLengths = c.lengths(DefaultArcDivisions)
	return c
}

// ControlPoints returns a copy of the control points.
func (c *CatmullRom) ControlPoints() []geom.Vec3 {
	return append([]geom.Vec3(nil), c.points...)
}

// Point returns the position at curve parameter t in [0,1]. Parameter spacing is uniform per
// segment, not per unit length; use PointAt for even spacing.
func (c *CatmullRom) Point(t float32) geom.Vec3 {
	pts := c.points
	l := len(pts)
	if l == 0 {
		return geom.Vec3{}
	}
	if l == 1 {
		return pts[0]
	}
	segments := l - 1
	if c.closed {
		segments = l
		t = wrap01(t)
	} else {
		t = clamp01(t)
	}
	p := float32(segments) * t
	intPoint := int(math32.Floor(p))
	weight := p - float32(intPoint)

	if c.closed {
		if intPoint <= 0 {
			intPoint += (absInt(intPoint)/l + 1) * l
		}
	} else if weight == 0 && intPoint == l-1 {
		intPoint = l - 2
		weight = 1
	}

	var p0, p3 geom.Vec3
	if c.closed || intPoint > 0 {
		p0 = pts[(intPoint-1)%l]
	} else {
		p0 = pts[0].Sub(pts[1]).Add(pts[0])
	}
	p1 := pts[intPoint%l]
	p2 := pts[(intPoint+1)%l]
	if c.closed || intPoint+2 < l {
		p3 = pts[(intPoint+2)%l]
	} else {
		p3 = pts[l-1].Sub(pts[l-2]).Add(pts[l-1])
	}

	dt0 := math32.Pow(p0.DistanceSq(p1), 0.25)
	dt1 := math32.Pow(p1.DistanceSq(p2), 0.25)
	dt2 := math32.Pow(p2.DistanceSq(p3), 0.25)
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	return geom.Vec3{
		X: nonUniform(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2).at(weight),
		Y: nonUniform(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2).at(weight),
		Z: nonUniform(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2).at(weight),
	}
}

// clamp01 limits t to [0,1]; NaN becomes 0.
func clamp01(t float32) float32 {
	if !(t > 0) {
		return 0
	}
	return min(t, 1)
}

// wrap01 maps t onto [0,1], keeping 1 itself so a closed curve can be asked for its end.
func wrap01(t float32) float32 {
	if t >= 0 && t <= 1 {
		return t
	}
	if math32.IsNaN(t) || math32.IsInf(t, 0) {
		return 0
	}
	t = math32.Mod(t, 1)
	if t < 0 {
		t++
	}
	return t
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// cubic holds c0 + c1 t + c2 t^2 + c3 t^3.
type cubic [4]float32

func (p cubic) at(t float32) float32 {
	return p[0] + t*(p[1]+t*(p[2]+t*p[3]))
}

// hermite returns the cubic from x0 to x1 with end tangents t0, t1.
func hermite(x0, x1, t0, t1 float32) cubic {
	return cubic{x0, t0, -3*x0 + 3*x1 - 2*t0 - t1, 2*x0 - 2*x1 + t0 + t1}
}

// nonUniform computes the segment x1..x2 with knot intervals dt0, dt1, dt2.
func nonUniform(x0, x1, x2, x3, dt0, dt1, dt2 float32) cubic {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	return hermite(x1, x2, t1*dt1, t2*dt1)
}

// lengths returns cumulative chord lengths at divisions+1 evenly spaced parameters.
func (c *CatmullRom) lengths(divisions int) []float32 {
	out := make([]float32, divisions+1)
	last := c.Point(0)
	var sum float32
	for i := 1; i <= divisions; i++ {
		cur := c.Point(float32(i) / float32(divisions))
		sum += cur.Distance(last)
		out[i] = sum
		last = cur
	}
	return out
}

// Length returns the approximate arc length of the curve.
func (c *CatmullRom) Length() float32 {
	return c.arcLengths[len(c.arcLengths)-1]
}

// ParamAt maps an arc-length fraction u in [0,1] to the curve parameter t. u outside that
// range wraps on a closed curve and is clamped on an open one.
func (c *CatmullRom) ParamAt(u float32) float32 {
	if c.closed {
		u = wrap01(u)
	} else {
		u = clamp01(u)
	}
	arc := c.arcLengths
	n := len(arc)
	total := arc[n-1]
	if total == 0 {
		return u
	}
	target := u * total

	// Last index whose cumulative length does not exceed target.
	i := sort.Search(n, func(k int) bool { return arc[k] > target }) - 1
	i = max(0, min(i, n-1))
	if arc[i] == target || i == n-1 {
		return float32(i) / float32(n-1)
	}
	before, after := arc[i], arc[i+1]
	fraction := (target - before) / (after - before)
	return (float32(i) + fraction) / float32(n-1)
}

// PointAt returns the position at arc-length fraction u.
func (c *CatmullRom) PointAt(u float32) geom.Vec3 {
	return c.Point(c.ParamAt(u))
}

// Tangent returns the unit tangent at curve parameter t. On a closed curve the difference is
// taken across the seam, so both ends give the same direction.
func (c *CatmullRom) Tangent(t float32) geom.Vec3 {
	if c.closed {
		return c.Point(t + tangentDelta).Sub(c.Point(t - tangentDelta)).Normalize()
	}
	t1 := max(0, t-tangentDelta)
	t2 := min(1, t+tangentDelta)
	return c.Point(t2).Sub(c.Point(t1)).Normalize()
}

// TangentAt returns the unit tangent at arc-length fraction u.
func (c *CatmullRom) TangentAt(u float32) geom.Vec3 {
	return c.Tangent(c.ParamAt(u))
}

// Points samples the curve at divisions+1 evenly spaced parameters (including both ends).
// divisions below 1 are treated as 1.
func (c *CatmullRom) Points(divisions int) []geom.Vec3 {
	divisions = max(divisions, 1)
	out := make([]geom.Vec3, 0, divisions+1)
	for d := 0; d <= divisions; d++ {
		out = append(out, c.Point(float32(d)/float32(divisions)))
	}
	return out
}

// SpacedPoints samples the curve at divisions+1 points evenly spaced by arc length.
func (c *CatmullRom) SpacedPoints(divisions int) []geom.Vec3 {
	divisions = max(divisions, 1)
	out := make([]geom.Vec3, 0, divisions+1)
	for d := 0; d <= divisions; d++ {
		out = append(out, c.PointAt(float32(d)/float32(divisions)))
	}
	return out
}
