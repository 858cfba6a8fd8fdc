// Package ocr turns display photographs into text with the Tesseract
// engine via gosseract.
//
// The Tesseract binding needs cgo and a system Tesseract install, so the
// real client sits behind the "ocr" build tag; without it [New] fails
// with [ErrNotEnabled] while everything pure-Go in this package (hOCR
// parsing, text cleanup) keeps working. To enable recognition, rebuild
// with the tag:
//
//	go build -tags ocr
//
// Tesseract must be installed on the system. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"context"
	"errors"
	"image"
)

// ErrNotEnabled is returned when recognition is requested but Tesseract
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrNotEnabled = errors.New("ocr support not enabled; rebuild with -tags ocr")

// Recognizer converts a prepared image into text. Implementations must be
// safe for concurrent use.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// PageSegMode mirrors Tesseract's page segmentation modes so the type and
// constants exist with or without the ocr build tag.
type PageSegMode int

const (
	PSM_OSD_ONLY               PageSegMode = 0  // Orientation and script detection only
	PSM_AUTO_OSD               PageSegMode = 1  // Automatic with OSD
	PSM_AUTO_ONLY              PageSegMode = 2  // Automatic, no OSD or OCR
	PSM_AUTO                   PageSegMode = 3  // Fully automatic
	PSM_SINGLE_COLUMN          PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = 5  // Single uniform block of vertical text
	PSM_SINGLE_BLOCK           PageSegMode = 6  // Single uniform block of text
	PSM_SINGLE_LINE            PageSegMode = 7  // Single text line
	PSM_SINGLE_WORD            PageSegMode = 8  // Single word
	PSM_CIRCLE_WORD            PageSegMode = 9  // Single word in a circle
	PSM_SINGLE_CHAR            PageSegMode = 10 // Single character
	PSM_SPARSE_TEXT            PageSegMode = 11 // Find as much text as possible
	PSM_SPARSE_TEXT_OSD        PageSegMode = 12 // Sparse text with OSD
	PSM_RAW_LINE               PageSegMode = 13 // Treat image as a single raw line
)

// DigitsWhitelist restricts recognition to digits and the separators the
// measurement parsers understand. Useful on seven-segment displays where
// letters are rare and easily misread.
const DigitsWhitelist = "0123456789./:"

// UnitsWhitelist extends DigitsWhitelist with the space and the letters of
// mg/dL and mmol/L, so glucometer unit markers survive the restriction.
const UnitsWhitelist = DigitsWhitelist + " mgdLol"

// Config controls a recognition run.
type Config struct {
	// Languages passed to Tesseract, one entry per language. Empty means
	// English.
	Languages []string

	// PageSegMode tells Tesseract how to segment the page. Display crops
	// are one uniform block, so the zero value selects PSM_SINGLE_BLOCK.
	PageSegMode PageSegMode

	// Whitelist restricts recognition to the given characters via
	// tessedit_char_whitelist. Empty imposes no restriction.
	Whitelist string

	// TessdataPrefix overrides the traineddata directory.
	TessdataPrefix string

	// DPI is passed as user_defined_dpi for images without resolution
	// metadata. Zero leaves Tesseract's own guess in place.
	DPI int

	// MinWordConfidence, when positive, switches recognition to hOCR and
	// drops words below this confidence (0-100) before joining the
	// survivors.
	MinWordConfidence float64
}

// DefaultConfig returns the settings tuned for device display photos.
func DefaultConfig() Config {
	return Config{
		Languages:   []string{"eng"},
		PageSegMode: PSM_SINGLE_BLOCK,
	}
}

// withDefaults fills unset fields the way DefaultConfig would.
func (c Config) withDefaults() Config {
	if len(c.Languages) == 0 {
		c.Languages = []string{"eng"}
	}
	if c.PageSegMode == 0 {
		c.PageSegMode = PSM_SINGLE_BLOCK
	}
	return c
}
