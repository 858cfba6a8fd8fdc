// Package vitalscan provides a fluent API for extracting validated
// measurements - blood pressure and blood glucose - from photographs of
// medical device displays.
//
// Basic usage:
//
//	reading, warnings, err := vitalscan.FromBytes(data).BloodPressure(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", measure.FormatWarnings(warnings))
//	}
//
// With options:
//
//	reading, _, err := vitalscan.FromBytes(data).
//	    UpscaleTo(600).
//	    DigitsOnly().
//	    MinWordConfidence(60).
//	    BloodSugar(ctx)
//
// Failures wrap the sentinels in package measure (measure.ErrDecode,
// measure.ErrNoCandidate, measure.ErrOutOfRange), so callers classify
// outcomes with errors.Is.
//
// Recognition runs on Tesseract and needs the "ocr" build tag; see
// package ocr. Without the tag, inject any ocr.Recognizer via
// WithRecognizer, or use FromText to parse text recognized elsewhere.
package vitalscan

import (
	"fmt"
	"image"

	"github.com/healthtrack/vitalscan/measure"
)

// FromBytes starts an extraction from encoded image bytes (PNG, JPEG,
// GIF, BMP, TIFF or WebP). Decoding is deferred to the terminal
// operation.
//
// Example:
//
//	reading, warnings, err := vitalscan.FromBytes(data).BloodPressure(ctx)
func FromBytes(data []byte) *Extraction {
	e := &Extraction{
		source:  sourceBytes,
		data:    data,
		options: defaultOptions(),
	}
	if len(data) == 0 {
		e.err = fmt.Errorf("empty input: %w", &measure.Error{Err: measure.ErrDecode})
	}
	return e
}

// FromImage starts an extraction from an already-decoded image, skipping
// the decode step.
//
// Example:
//
//	reading, warnings, err := vitalscan.FromImage(img).BloodSugar(ctx)
func FromImage(img image.Image) *Extraction {
	e := &Extraction{
		source:  sourceImage,
		img:     img,
		options: defaultOptions(),
	}
	if img == nil {
		e.err = fmt.Errorf("nil image")
	}
	return e
}

// FromText starts a parse-only extraction from text recognized elsewhere.
// Normalization and recognition are skipped; text cleanup still applies
// unless disabled with WithoutTextCleanup.
//
// Example:
//
//	reading, warnings, err := vitalscan.FromText("SYS 120 DIA 80 PULSE 72").BloodPressure(ctx)
func FromText(text string) *Extraction {
	return &Extraction{
		source:  sourceText,
		text:    text,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	res := vitalscan.Must(vitalscan.FromBytes(data).Normalized())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustReading is a helper that wraps a terminal operation returning
// (T, []measure.Warning, error) and panics if the error is non-nil. It
// discards warnings and returns just the value. It is intended for use in
// scripts or tests where error handling would be cumbersome.
//
// Example:
//
//	bp := vitalscan.MustReading(vitalscan.FromText("142/88").BloodPressure(ctx))
func MustReading[T any](val T, _ []measure.Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
