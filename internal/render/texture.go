package render

import (
	"image"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"space-demos/internal/assets"
	"space-demos/internal/scene"
)

type gpuTexture struct {
	tex     rl.Texture2D
	version uint64
}

// textureCache uploads scene textures on first use and again whenever their image changes.
// A material slot with no texture samples white; a texture still loading samples black, so
// unloaded layers contribute nothing.
type textureCache struct {
	entries map[*scene.Texture]*gpuTexture
	white   rl.Texture2D
	black   rl.Texture2D
}

func newTextureCache() *textureCache {
	return &textureCache{
		entries: make(map[*scene.Texture]*gpuTexture),
		white:   solidTexture(rl.White),
		black:   solidTexture(rl.Black),
	}
}

func solidTexture(c rl.Color) rl.Texture2D {
	img := rl.GenImageColor(1, 1, c)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	return tex
}

func (c *textureCache) get(t *scene.Texture) rl.Texture2D {
	if t == nil {
		return c.white
	}
	img, version := t.Image()
	if img == nil {
		return c.black
	}
	e := c.entries[t]
	if e != nil && e.version == version {
		return e.tex
	}
	if e != nil {
		rl.UnloadTexture(e.tex)
	} else {
		e = &gpuTexture{}
		c.entries[t] = e
	}
	e.tex = upload(assets.ToNRGBA(img))
	e.version = version
	return e.tex
}

// upload copies straight-alpha RGBA pixels into a mipmapped texture.
func upload(pix *image.NRGBA) rl.Texture2D {
	b := pix.Bounds()
	if len(pix.Pix) == 0 {
		return rl.Texture2D{}
	}
	var pinner runtime.Pinner
	pinner.Pin(&pix.Pix[0])
	defer pinner.Unpin()

	img := rl.NewImage(pix.Pix, int32(b.Dx()), int32(b.Dy()), 1, rl.UncompressedR8g8b8a8)
	tex := rl.LoadTextureFromImage(img)
	rl.GenTextureMipmaps(&tex)
	rl.SetTextureFilter(tex, rl.FilterTrilinear)
	return tex
}

func (c *textureCache) unload() {
	for t, e := range c.entries {
		rl.UnloadTexture(e.tex)
		delete(c.entries, t)
	}
	rl.UnloadTexture(c.white)
	rl.UnloadTexture(c.black)
}
