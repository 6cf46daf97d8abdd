// Package controls moves a camera in response to pointer input.
package controls

import (
	"github.com/chewxy/math32"

	"space-demos/internal/geom"
	"space-demos/internal/scene"
)

// polarEpsilon keeps the camera off the poles, where the up vector would flip.
const polarEpsilon = 1e-6

// Pointer is one frame's worth of pointer input. DX/DY are in pixels since the last frame;
// Wheel is positive when scrolling away from the user (zoom in).
type Pointer struct {
	Rotate bool
	Pan    bool
	DX, DY float32
	Wheel  float32
}

// Input supplies pointer state once per frame.
type Input interface {
	Poll() Pointer
}

// Orbit keeps a camera on a sphere around Target. Dragging rotates, the wheel dollies, and
// dragging with Pan set slides the target. With damping, input accumulates into deltas that
// are applied a fraction at a time and decay each Update, so motion eases out.
type Orbit struct {
	Target geom.Vec3

	EnableDamping bool
	DampingFactor float32
	RotateSpeed   float32
	ZoomSpeed     float32
	PanSpeed      float32
	MinDistance   float32
	MaxDistance   float32
	MinPolar      float32
	MaxPolar      float32

	deltaTheta float32
	deltaPhi   float32
	scale      float32
	panOffset  geom.Vec3
}

// NewOrbit returns controls orbiting target with damping off.
func NewOrbit(target geom.Vec3) *Orbit {
	return &Orbit{
		Target:        target,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		MinDistance:   0,
		MaxDistance:   math32.Inf(1),
		MinPolar:      0,
		MaxPolar:      math32.Pi,
		scale:         1,
	}
}

// RotateLeft orbits around the vertical axis by angle radians.
func (o *Orbit) RotateLeft(angle float32) { o.deltaTheta -= angle }

// RotateUp orbits toward the top pole by angle radians.
func (o *Orbit) RotateUp(angle float32) { o.deltaPhi -= angle }

// DollyIn moves the camera toward the target by factor (>1).
func (o *Orbit) DollyIn(factor float32) { o.scale /= factor }

// DollyOut moves the camera away from the target by factor (>1).
func (o *Orbit) DollyOut(factor float32) { o.scale *= factor }

func (o *Orbit) zoomFactor() float32 {
	return math32.Pow(0.95, -o.ZoomSpeed)
}

// Apply turns one frame of pointer input into pending motion. viewportHeight is in pixels
// and makes a full-height drag equal one full turn.
func (o *Orbit) Apply(p Pointer, cam scene.Camera, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	switch {
	case p.Rotate:
		o.RotateLeft(2 * math32.Pi * p.DX / viewportHeight * o.RotateSpeed)
		o.RotateUp(2 * math32.Pi * p.DY / viewportHeight * o.RotateSpeed)
	case p.Pan:
		o.pan(p.DX, p.DY, cam, viewportHeight)
	}
	switch {
	case p.Wheel > 0:
		o.DollyIn(o.zoomFactor())
	case p.Wheel < 0:
		o.DollyOut(o.zoomFactor())
	}
}

// pan slides the target so the point under the pointer follows it at the target's depth.
func (o *Orbit) pan(dx, dy float32, cam scene.Camera, viewportHeight float32) {
	offset := cam.Position.Sub(o.Target)
	distance := offset.Length() * math32.Tan(cam.FovY/2*math32.Pi/180)
	forward := cam.Forward()
	right := forward.Cross(cam.Up).Normalize()
	up := right.Cross(forward)
	k := 2 * distance / viewportHeight * o.PanSpeed
	o.panOffset = o.panOffset.Add(right.Scale(-dx * k)).Add(up.Scale(dy * k))
}

// Update moves cam according to pending motion and reports whether it moved.
// It must be called once per frame when damping is enabled.
func (o *Orbit) Update(cam *scene.Camera) bool {
	offset := cam.Position.Sub(o.Target)
	radius := offset.Length()
	theta := math32.Atan2(offset.X, offset.Z)
	var phi float32
	if radius > 0 {
		phi = math32.Acos(max(-1, min(1, offset.Y/radius)))
	}

	if o.EnableDamping {
		theta += o.deltaTheta * o.DampingFactor
		phi += o.deltaPhi * o.DampingFactor
		o.Target = o.Target.Add(o.panOffset.Scale(o.DampingFactor))
	} else {
		theta += o.deltaTheta
		phi += o.deltaPhi
		o.Target = o.Target.Add(o.panOffset)
	}
	phi = max(o.MinPolar, min(o.MaxPolar, phi))
	phi = max(polarEpsilon, min(math32.Pi-polarEpsilon, phi))
	radius = max(o.MinDistance, min(o.MaxDistance, radius*o.scale))

	sinPhi := math32.Sin(phi)
	newOffset := geom.V3(
		radius*sinPhi*math32.Sin(theta),
		radius*math32.Cos(phi),
		radius*sinPhi*math32.Cos(theta),
	)
	before := cam.Position
	cam.Position = o.Target.Add(newOffset)
	cam.Target = o.Target

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
		o.panOffset = o.panOffset.Scale(1 - o.DampingFactor)
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
		o.panOffset = geom.Vec3{}
	}
	o.scale = 1

	return before.DistanceSq(cam.Position) > 1e-12
}
