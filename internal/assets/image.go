// Package assets resolves and decodes texture images off the frame thread.
package assets

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"

	// Formats beyond the jpeg/png that bild registers.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Decode opens and decodes the image file at path.
func Decode(path string) (image.Image, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// ComposeAlpha returns the colors of col with alpha taken from the green channel of alpha,
// the way an alpha map is sampled. alpha is resized to col's size when they differ.
func ComposeAlpha(col, alpha image.Image) *image.NRGBA {
	b := col.Bounds()
	w, h := b.Dx(), b.Dy()
	src := clone.AsRGBA(col)

	var mask *image.RGBA
	if ab := alpha.Bounds(); ab.Dx() != w || ab.Dy() != h {
		mask = transform.Resize(alpha, w, h, transform.Linear)
	} else {
		mask = clone.AsRGBA(alpha)
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := src.PixOffset(x+src.Rect.Min.X, y+src.Rect.Min.Y)
			mi := mask.PixOffset(x+mask.Rect.Min.X, y+mask.Rect.Min.Y)
			oi := out.PixOffset(x, y)
			r, g, bl, a := src.Pix[si], src.Pix[si+1], src.Pix[si+2], src.Pix[si+3]
			if a != 0 && a != 0xff {
				// clone.AsRGBA is premultiplied; NRGBA is not.
				r = uint8(uint32(r) * 0xff / uint32(a))
				g = uint8(uint32(g) * 0xff / uint32(a))
				bl = uint8(uint32(bl) * 0xff / uint32(a))
			}
			out.Pix[oi] = r
			out.Pix[oi+1] = g
			out.Pix[oi+2] = bl
			out.Pix[oi+3] = uint8(uint32(a) * uint32(mask.Pix[mi+1]) / 0xff)
		}
	}
	return out
}

// ToNRGBA returns img as a tightly packed, zero-origin NRGBA image, the layout GPU uploads
// expect. img is returned as-is when it already has that layout.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == 4*n.Rect.Dx() {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
