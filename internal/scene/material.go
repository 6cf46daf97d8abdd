package scene

import "image"

// Color is linear RGB in [0,1].
type Color struct {
	R, G, B float32
}

// Hex converts a 0xRRGGBB literal.
func Hex(v uint32) Color {
	return Color{
		R: float32((v>>16)&0xff) / 255,
		G: float32((v>>8)&0xff) / 255,
		B: float32(v&0xff) / 255,
	}
}

var (
	White = Color{1, 1, 1}
	Black = Color{}
)

// Shading selects the lighting model a renderer uses for a material.
type Shading int

const (
	// ShadingStandard is lit by the scene's directional and ambient lights.
	ShadingStandard Shading = iota
	// ShadingBasic ignores lights.
	ShadingBasic
	// ShadingAtmosphere is a rim glow that brightens where the surface turns away from the viewer.
	ShadingAtmosphere
)

// Blending is how fragments combine with what is already drawn.
type Blending int

const (
	BlendNormal Blending = iota
	BlendAdditive
)

// Side selects which triangle faces are drawn. BackSide geometry is expected to be wound
// inside-out (see geom.Geometry.FlipWinding), so renderers cull it like FrontSide.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Material describes surface appearance independently of any GPU API.
type Material struct {
	Name    string
	Shading Shading
	Color   Color

	Map         *Texture
	SpecularMap *Texture
	BumpMap     *Texture
	BumpScale   float32

	Opacity      float32
	Transparent  bool
	Blending     Blending
	Side         Side
	VertexColors bool
	Wireframe    bool
	// Fog reports whether scene fog applies to this material.
	Fog bool
	// Size is the on-screen point size for point materials.
	Size float32
}

// NewMaterial returns an opaque white front-sided material with the given shading.
func NewMaterial(name string, shading Shading) *Material {
	return &Material{
		Name:    name,
		Shading: shading,
		Color:   White,
		Opacity: 1,
		Fog:     true,
		Size:    1,
	}
}

// Textures lists the non-nil texture slots.
func (m *Material) Textures() []*Texture {
	var out []*Texture
	for _, t := range []*Texture{m.Map, m.SpecularMap, m.BumpMap} {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Texture is an image slot filled asynchronously. Until an image arrives renderers draw the
// material untextured. Only the frame thread may call SetImage.
type Texture struct {
	Name    string
	img     image.Image
	version uint64
}

// NewTexture returns an empty texture slot.
func NewTexture(name string) *Texture {
	return &Texture{Name: name}
}

// SetImage fills the slot and bumps the version so renderers re-upload.
func (t *Texture) SetImage(img image.Image) {
	t.img = img
	t.version++
}

// Image returns the current image (nil until loaded) and its version.
func (t *Texture) Image() (image.Image, uint64) {
	return t.img, t.version
}

// Ready reports whether an image has been set.
func (t *Texture) Ready() bool {
	return t.img != nil
}
