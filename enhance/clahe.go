package enhance

import (
	"image"
	"math"
)

const histSize = 256

// CLAHE performs contrast-limited adaptive histogram equalization. The
// image is divided into a tilesX×tilesY grid; each tile gets an
// equalization lookup table built from its clipped histogram, and every
// pixel is mapped through a bilinear blend of the four nearest tile
// tables. Clipping each histogram bin at clipLimit×(tileArea/256) before
// equalizing bounds how much local noise can be amplified, which matters
// on the flat backgrounds of LCD displays. clipLimit <= 0 disables
// clipping entirely.
func CLAHE(src *image.Gray, clipLimit float64, tilesX, tilesY int) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(b)

	if tilesX < 1 {
		tilesX = 1
	}
	if tilesY < 1 {
		tilesY = 1
	}
	// A grid finer than the image would leave empty tiles.
	if tilesX > w {
		tilesX = w
	}
	if tilesY > h {
		tilesY = h
	}

	// Per-tile histograms. A pixel at (x, y) belongs to tile
	// (x*tilesX/w, y*tilesY/h).
	hists := make([][histSize]int, tilesX*tilesY)
	areas := make([]int, tilesX*tilesY)
	for y := 0; y < h; y++ {
		ty := y * tilesY / h
		for x := 0; x < w; x++ {
			tx := x * tilesX / w
			i := ty*tilesX + tx
			hists[i][src.Pix[src.PixOffset(b.Min.X+x, b.Min.Y+y)]]++
			areas[i]++
		}
	}

	luts := make([][histSize]uint8, tilesX*tilesY)
	for i := range hists {
		buildLUT(&luts[i], &hists[i], areas[i], clipLimit)
	}

	// Map each pixel through the bilinear blend of the four surrounding
	// tile tables. Tile centers sit at (t+0.5)/tiles of the image span.
	for y := 0; y < h; y++ {
		tyf := (float64(y)+0.5)*float64(tilesY)/float64(h) - 0.5
		ty0 := int(math.Floor(tyf))
		fy := tyf - float64(ty0)
		ty1 := clampInt(ty0+1, 0, tilesY-1)
		ty0 = clampInt(ty0, 0, tilesY-1)

		for x := 0; x < w; x++ {
			txf := (float64(x)+0.5)*float64(tilesX)/float64(w) - 0.5
			tx0 := int(math.Floor(txf))
			fx := txf - float64(tx0)
			tx1 := clampInt(tx0+1, 0, tilesX-1)
			tx0 = clampInt(tx0, 0, tilesX-1)

			p := src.Pix[src.PixOffset(b.Min.X+x, b.Min.Y+y)]
			top := (1-fx)*float64(luts[ty0*tilesX+tx0][p]) + fx*float64(luts[ty0*tilesX+tx1][p])
			bottom := (1-fx)*float64(luts[ty1*tilesX+tx0][p]) + fx*float64(luts[ty1*tilesX+tx1][p])
			v := math.Round((1-fy)*top + fy*bottom)
			dst.Pix[dst.PixOffset(b.Min.X+x, b.Min.Y+y)] = uint8(clampInt(int(v), 0, 255))
		}
	}
	return dst
}

// buildLUT turns one tile histogram into an equalization table: clip the
// bins, redistribute the clipped mass evenly (remainder spread from bin 0
// in fixed steps so the result stays deterministic), then scale the
// cumulative distribution to [0, 255].
func buildLUT(lut *[histSize]uint8, hist *[histSize]int, area int, clipLimit float64) {
	if area == 0 {
		for k := range lut {
			lut[k] = uint8(k)
		}
		return
	}

	if clipLimit > 0 {
		clip := int(clipLimit * float64(area) / histSize)
		if clip < 1 {
			clip = 1
		}
		clipped := 0
		for k := range hist {
			if hist[k] > clip {
				clipped += hist[k] - clip
				hist[k] = clip
			}
		}

		batch := clipped / histSize
		residual := clipped - batch*histSize
		for k := range hist {
			hist[k] += batch
		}
		if residual > 0 {
			step := histSize / residual
			if step < 1 {
				step = 1
			}
			for k := 0; k < histSize && residual > 0; k += step {
				hist[k]++
				residual--
			}
		}
	}

	scale := float64(histSize-1) / float64(area)
	sum := 0
	for k := range hist {
		sum += hist[k]
		v := int(math.Round(float64(sum) * scale))
		lut[k] = uint8(clampInt(v, 0, 255))
	}
}
