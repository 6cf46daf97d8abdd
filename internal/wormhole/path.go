package wormhole

import (
	"space-demos/internal/curve"
	"space-demos/internal/geom"
)

// controlPoints is the hand-authored loop the tube follows: a wide ring in the XZ plane with
// vertical swells. The spline closes from the last point back to the first.
var controlPoints = []geom.Vec3{
	{X: 10.50, Y: 1.20, Z: 0.00},
	{X: 9.50, Y: 1.81, Z: 0.30},
	{X: 6.93, Y: 1.56, Z: 1.50},
	{X: 3.89, Y: 2.15, Z: 3.89},
	{X: 1.50, Y: 3.20, Z: 6.93},
	{X: 0.30, Y: 2.66, Z: 9.50},
	{X: 0.00, Y: 0.00, Z: 10.50},
	{X: -0.30, Y: -2.66, Z: 9.50},
	{X: -1.50, Y: -3.20, Z: 6.93},
	{X: -3.89, Y: -2.15, Z: 3.89},
	{X: -6.93, Y: -1.56, Z: 1.50},
	{X: -9.50, Y: -1.81, Z: 0.30},
	{X: -10.50, Y: -1.20, Z: 0.00},
	{X: -9.50, Y: 1.19, Z: -0.30},
	{X: -6.93, Y: 3.64, Z: -1.50},
	{X: -3.89, Y: 3.85, Z: -3.89},
	{X: -1.50, Y: 2.00, Z: -6.93},
	{X: -0.30, Y: 0.34, Z: -9.50},
	{X: 0.00, Y: 0.00, Z: -10.50},
	{X: 0.30, Y: -0.34, Z: -9.50},
	{X: 1.50, Y: -2.00, Z: -6.93},
	{X: 3.89, Y: -3.85, Z: -3.89},
	{X: 6.93, Y: -3.64, Z: -1.50},
	{X: 9.50, Y: -1.19, Z: -0.30},
}

// ControlPoints returns a copy of the tube's control points.
func ControlPoints() []geom.Vec3 {
	return append([]geom.Vec3(nil), controlPoints...)
}

// NewPath returns the closed spline through the control points.
func NewPath() *curve.CatmullRom {
	return curve.NewCatmullRom(ControlPoints(), true)
}
