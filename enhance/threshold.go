package enhance

import (
	"image"
	"math"
)

// AdaptiveThreshold binarizes src against a per-pixel threshold: the
// Gaussian-weighted mean of the block×block neighborhood around each
// pixel, minus c. Pixels strictly brighter than their local threshold
// become 255, all others 0. A local threshold tolerates the uneven
// illumination and glare typical of handheld display photographs, where a
// single global threshold loses whole regions.
//
// block must be odd and at least 3; even values are rounded up. Borders
// are handled by replicating edge pixels.
func AdaptiveThreshold(src *image.Gray, block int, c float64) *image.Gray {
	if block < 3 {
		block = 3
	}
	if block%2 == 0 {
		block++
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(b)

	kernel := gaussianKernel(block)
	radius := block / 2

	// Separable blur: horizontal pass, then vertical, with replicated
	// borders.
	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < w; x++ {
			var sum float64
			for i := -radius; i <= radius; i++ {
				xx := clampInt(x+i, 0, w-1)
				sum += kernel[i+radius] * float64(row[xx])
			}
			tmp[y*w+x] = sum
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var mean float64
			for i := -radius; i <= radius; i++ {
				yy := clampInt(y+i, 0, h-1)
				mean += kernel[i+radius] * tmp[yy*w+x]
			}

			di := dst.PixOffset(b.Min.X+x, b.Min.Y+y)
			if float64(src.Pix[src.PixOffset(b.Min.X+x, b.Min.Y+y)]) > mean-c {
				dst.Pix[di] = 255
			} else {
				dst.Pix[di] = 0
			}
		}
	}
	return dst
}

// gaussianKernel builds a normalized 1D Gaussian of the given odd size,
// with sigma derived from the size by the usual 0.3*((size-1)/2 - 1) + 0.8
// rule (sigma 2.0 for the default 11-tap kernel).
func gaussianKernel(size int) []float64 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	radius := size / 2

	kernel := make([]float64, size)
	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
