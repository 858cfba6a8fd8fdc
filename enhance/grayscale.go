package enhance

import (
	"image"
	"image/color"
)

// Grayscale reduces an image to a single luminance channel using the
// ITU-R BT.601 weights (0.299 R, 0.587 G, 0.114 B), the same weighting
// digit recognizers are conventionally trained against. Already-gray
// input passes through unchanged in value but is still copied into a
// fresh buffer.
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			// 16-bit channels down to 8-bit before weighting.
			lum := (299*(r>>8) + 587*(g>>8) + 114*(bl>>8) + 500) / 1000
			dst.SetGray(x, y, color.Gray{Y: uint8(lum)})
		}
	}
	return dst
}

// cloneGray returns a copy of src backed by a fresh pixel buffer.
func cloneGray(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := src.PixOffset(b.Min.X, y)
		di := dst.PixOffset(b.Min.X, y)
		copy(dst.Pix[di:di+b.Dx()], src.Pix[si:si+b.Dx()])
	}
	return dst
}
