package enhance

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Config holds the normalization parameters. The zero value of any field
// means "use the default for that field", so Config{} behaves exactly like
// DefaultConfig().
type Config struct {
	// ThresholdBlock is the side of the square neighborhood used by the
	// adaptive threshold. Must be odd; even values are rounded up.
	ThresholdBlock int

	// ThresholdC is the constant subtracted from the Gaussian-weighted
	// neighborhood mean.
	ThresholdC float64

	// OpeningSize is the side of the square structuring element for the
	// morphological opening. Size 1 is the identity.
	OpeningSize int

	// ClipLimit is the CLAHE contrast-limiting factor.
	ClipLimit float64

	// TileGridX and TileGridY set the CLAHE tile grid.
	TileGridX int
	TileGridY int
}

// DefaultConfig returns the parameters the pipeline was tuned with.
func DefaultConfig() Config {
	return Config{
		ThresholdBlock: 11,
		ThresholdC:     2,
		OpeningSize:    1,
		ClipLimit:      2.0,
		TileGridX:      8,
		TileGridY:      8,
	}
}

// withDefaults fills zero-valued fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ThresholdBlock == 0 {
		c.ThresholdBlock = def.ThresholdBlock
	}
	if c.ThresholdC == 0 {
		c.ThresholdC = def.ThresholdC
	}
	if c.OpeningSize == 0 {
		c.OpeningSize = def.OpeningSize
	}
	if c.ClipLimit == 0 {
		c.ClipLimit = def.ClipLimit
	}
	if c.TileGridX == 0 {
		c.TileGridX = def.TileGridX
	}
	if c.TileGridY == 0 {
		c.TileGridY = def.TileGridY
	}
	return c
}

// Result holds the two single-channel outputs of a normalization run.
type Result struct {
	// Enhanced is the CLAHE-equalized grayscale image handed to the
	// recognizer.
	Enhanced *image.Gray

	// Binary is the thresholded and opened image, retained as a
	// diagnostic artifact only.
	Binary *image.Gray
}

// Normalize runs the full pipeline on a decoded image. Both outputs have
// the same spatial dimensions as the input. Identical inputs always yield
// identical outputs.
func Normalize(img image.Image, cfg Config) (*Result, error) {
	if img == nil {
		return nil, fmt.Errorf("normalize: nil image")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("normalize: empty image (%dx%d)", b.Dx(), b.Dy())
	}
	cfg = cfg.withDefaults()

	gray := Grayscale(img)

	binary := AdaptiveThreshold(gray, cfg.ThresholdBlock, cfg.ThresholdC)
	binary = Open(binary, cfg.OpeningSize)

	enhanced := CLAHE(gray, cfg.ClipLimit, cfg.TileGridX, cfg.TileGridY)

	return &Result{Enhanced: enhanced, Binary: binary}, nil
}

// Upscale resizes img so its height is at least minHeight, preserving
// aspect ratio with Lanczos resampling. Photographs of small display
// crops recognize noticeably better after upscaling. It reports whether a
// resize happened; minHeight <= 0 or an already-large image is returned
// unchanged. Upscaling runs before Normalize, which itself never changes
// dimensions.
func Upscale(img image.Image, minHeight int) (image.Image, bool) {
	if img == nil || minHeight <= 0 {
		return img, false
	}
	if img.Bounds().Dy() >= minHeight {
		return img, false
	}
	return imaging.Resize(img, 0, minHeight, imaging.Lanczos), true
}
