package pixel

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/katalvlaran/costdist/raster"
)

// ToImage converts a colour grid to an 8-bit NRGBA image of the same size.
// Invalid cells become fully transparent pixels.
// Complexity: O(W×H).
func ToImage(g *raster.Grid[RGBA]) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	for i := 0; i < g.Len(); i++ {
		c, ok := g.At(i)
		if !ok {
			continue
		}
		x, y := g.Coordinate(i)
		img.SetNRGBA(x, y, c.NRGBA())
	}

	return img
}

// Thumbnail scales src so its longer side is maxDim pixels, preserving the
// aspect ratio, using Catmull-Rom resampling. Images already within maxDim
// are returned unchanged.
func Thumbnail(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return src
	}
	var tw, th int
	if w >= h {
		tw, th = maxDim, max(1, h*maxDim/w)
	} else {
		tw, th = max(1, w*maxDim/h), maxDim
	}
	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	return dst
}
