package enhance

import "image"

// Open performs a morphological opening: erosion followed by dilation
// with a square structuring element of the given side. Opening removes
// speckle smaller than the element while preserving larger shapes such as
// digit segments. Size 1 is the identity and returns a copy; an even size
// behaves like the next odd size.
func Open(src *image.Gray, size int) *image.Gray {
	if size <= 1 {
		return cloneGray(src)
	}
	return dilate(erode(src, size), size)
}

// erode replaces each pixel with the minimum of its size×size
// neighborhood, clipped to the image.
func erode(src *image.Gray, size int) *image.Gray {
	return morph(src, size, func(best, v uint8) bool { return v < best })
}

// dilate replaces each pixel with the maximum of its size×size
// neighborhood, clipped to the image.
func dilate(src *image.Gray, size int) *image.Gray {
	return morph(src, size, func(best, v uint8) bool { return v > best })
}

// morph applies a sliding-window extremum filter. better reports whether
// v should replace the current extremum.
func morph(src *image.Gray, size int, better func(best, v uint8) bool) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(b)
	radius := size / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			best := src.Pix[src.PixOffset(b.Min.X+x, b.Min.Y+y)]
			for dy := -radius; dy <= radius; dy++ {
				yy := y + dy
				if yy < 0 || yy >= h {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					xx := x + dx
					if xx < 0 || xx >= w {
						continue
					}
					v := src.Pix[src.PixOffset(b.Min.X+xx, b.Min.Y+yy)]
					if better(best, v) {
						best = v
					}
				}
			}
			dst.Pix[dst.PixOffset(b.Min.X+x, b.Min.Y+y)] = best
		}
	}
	return dst
}
