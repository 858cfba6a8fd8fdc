package vitalscan

import (
	"context"
	"fmt"
	"image"

	"github.com/healthtrack/vitalscan/enhance"
	"github.com/healthtrack/vitalscan/measure"
	"github.com/healthtrack/vitalscan/ocr"
	"github.com/healthtrack/vitalscan/parse"
)

// sourceKind identifies what an Extraction was built from.
type sourceKind int

const (
	sourceNone sourceKind = iota
	sourceBytes
	sourceImage
	sourceText
)

// Extraction provides a fluent interface for pulling a validated reading
// out of one display photograph. Each configuration method returns a new
// Extraction instance, making chains immutable and safe for concurrent
// use; terminal operations never mutate the chain, so the same Extraction
// can be executed repeatedly with identical results.
type Extraction struct {
	// Source (exactly one is set)
	source sourceKind
	data   []byte      // encoded image bytes
	img    image.Image // already-decoded image
	text   string      // recognized text supplied directly

	// Configuration
	options extractOptions

	// Accumulated error (fail-fast, surfaced by terminal operations)
	err error
}

// clone creates a shallow copy of the Extraction with a deep copy of
// options. This ensures immutability - each chain method returns a new
// instance.
func (e *Extraction) clone() *Extraction {
	return &Extraction{
		source:  e.source,
		data:    e.data,
		img:     e.img,
		text:    e.text,
		options: e.options.clone(),
		err:     e.err,
	}
}

// ============================================================================
// Chain Configuration (each method returns a new Extraction)
// ============================================================================

// WithRecognizer supplies the recognizer used for the image-to-text step.
// Without it, terminal operations construct the package ocr client, which
// needs the "ocr" build tag.
//
// Example:
//
//	reading, _, err := vitalscan.FromBytes(data).WithRecognizer(client).BloodPressure(ctx)
func (e *Extraction) WithRecognizer(r ocr.Recognizer) *Extraction {
	newExt := e.clone()
	newExt.options.recognizer = r
	return newExt
}

// WithEnhanceConfig overrides the normalization parameters. Zero-valued
// fields keep their defaults.
func (e *Extraction) WithEnhanceConfig(cfg enhance.Config) *Extraction {
	newExt := e.clone()
	newExt.options.enhanceConfig = cfg
	return newExt
}

// Languages sets the recognition languages for the default client.
// Ignored when a recognizer was injected with WithRecognizer.
//
// Example:
//
//	reading, _, err := vitalscan.FromBytes(data).Languages("eng", "deu").BloodSugar(ctx)
func (e *Extraction) Languages(langs ...string) *Extraction {
	newExt := e.clone()
	newExt.options.ocrConfig.Languages = append([]string(nil), langs...)
	return newExt
}

// PageSegMode sets the Tesseract page segmentation mode for the default
// client. Ignored when a recognizer was injected with WithRecognizer.
func (e *Extraction) PageSegMode(mode ocr.PageSegMode) *Extraction {
	newExt := e.clone()
	newExt.options.ocrConfig.PageSegMode = mode
	return newExt
}

// TessdataPrefix points the default client at a directory of Tesseract
// trained data files. Ignored when a recognizer was injected with
// WithRecognizer.
func (e *Extraction) TessdataPrefix(dir string) *Extraction {
	newExt := e.clone()
	newExt.options.ocrConfig.TessdataPrefix = dir
	return newExt
}

// DigitsOnly restricts the default client to digits, separators and unit
// letters, which cuts down on stray characters from seven-segment
// displays. Ignored when a recognizer was injected with WithRecognizer.
//
// Example:
//
//	reading, _, err := vitalscan.FromBytes(data).DigitsOnly().BloodPressure(ctx)
func (e *Extraction) DigitsOnly() *Extraction {
	newExt := e.clone()
	newExt.options.ocrConfig.Whitelist = ocr.UnitsWhitelist
	return newExt
}

// MinWordConfidence makes the default client discard recognized words
// below the given confidence (0-100) before parsing. Ignored when a
// recognizer was injected with WithRecognizer.
func (e *Extraction) MinWordConfidence(cutoff float64) *Extraction {
	newExt := e.clone()
	newExt.options.ocrConfig.MinWordConfidence = cutoff
	return newExt
}

// UpscaleTo resizes the image to at least minHeight pixels tall before
// normalization. Small display crops recognize noticeably better around
// 600 px. An upscale is reported through a warning on the terminal
// operation.
func (e *Extraction) UpscaleTo(minHeight int) *Extraction {
	newExt := e.clone()
	newExt.options.upscaleTo = minHeight
	return newExt
}

// WithoutTextCleanup disables the cleanup pass (whitespace normalization,
// digit confusion repair) between recognition and parsing. The parsers
// then see the recognizer's raw output.
func (e *Extraction) WithoutTextCleanup() *Extraction {
	newExt := e.clone()
	newExt.options.skipCleanup = true
	return newExt
}

// ============================================================================
// Terminal Operations (execute the pipeline and return results)
// ============================================================================

// BloodPressure runs the pipeline and parses a blood pressure reading out
// of the recognized text.
//
// Returns the validated reading, any warnings encountered (swapped
// values, dropped pulse, upscaling), and an error if extraction failed.
// Failures wrap the measure sentinels, so callers classify with
// errors.Is.
//
// Example:
//
//	reading, warnings, err := vitalscan.FromBytes(data).BloodPressure(ctx)
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", measure.FormatWarnings(warnings))
//	}
func (e *Extraction) BloodPressure(ctx context.Context) (measure.BloodPressure, []measure.Warning, error) {
	text, warnings, err := e.recognizedText(ctx)
	if err != nil {
		return measure.BloodPressure{}, warnings, err
	}

	reading, parseWarnings, err := parse.BloodPressure(text)
	warnings = append(warnings, parseWarnings...)
	if err != nil {
		return measure.BloodPressure{}, warnings, err
	}
	return reading, warnings, nil
}

// BloodSugar runs the pipeline and parses a glucose reading out of the
// recognized text. See BloodPressure for the outcome contract.
func (e *Extraction) BloodSugar(ctx context.Context) (measure.BloodSugar, []measure.Warning, error) {
	text, warnings, err := e.recognizedText(ctx)
	if err != nil {
		return measure.BloodSugar{}, warnings, err
	}

	reading, parseWarnings, err := parse.BloodSugar(text)
	warnings = append(warnings, parseWarnings...)
	if err != nil {
		return measure.BloodSugar{}, warnings, err
	}
	return reading, warnings, nil
}

// Reading dispatches on kind and returns the reading behind the
// measure.Reading interface. It is the entry point for callers that keep
// the measurement kind in data rather than code.
func (e *Extraction) Reading(ctx context.Context, kind measure.Kind) (measure.Reading, []measure.Warning, error) {
	switch kind {
	case measure.KindBloodPressure:
		reading, warnings, err := e.BloodPressure(ctx)
		if err != nil {
			return nil, warnings, err
		}
		return reading, warnings, nil
	case measure.KindBloodSugar:
		reading, warnings, err := e.BloodSugar(ctx)
		if err != nil {
			return nil, warnings, err
		}
		return reading, warnings, nil
	default:
		return nil, nil, fmt.Errorf("unsupported measurement kind %q", kind)
	}
}

// Text runs the pipeline up to and including text cleanup and returns the
// recognized text without parsing it. Useful for debugging what the
// parsers actually see.
func (e *Extraction) Text(ctx context.Context) (string, []measure.Warning, error) {
	return e.recognizedText(ctx)
}

// Normalized runs the image normalizer alone and returns both of its
// outputs: the enhanced grayscale handed to recognizers and the binary
// diagnostic image.
func (e *Extraction) Normalized() (*enhance.Result, error) {
	if e.err != nil {
		return nil, e.err
	}

	img, err := e.decodeSource()
	if err != nil {
		return nil, err
	}
	if e.options.upscaleTo > 0 {
		img, _ = enhance.Upscale(img, e.options.upscaleTo)
	}
	return enhance.Normalize(img, e.options.enhanceConfig)
}

// ============================================================================
// Pipeline
// ============================================================================

// recognizedText runs decode, normalization, recognition and cleanup.
// Text supplied via FromText skips straight to cleanup.
func (e *Extraction) recognizedText(ctx context.Context) (string, []measure.Warning, error) {
	if e.err != nil {
		return "", nil, e.err
	}
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	if e.source == sourceText {
		return e.cleanup(e.text), nil, nil
	}

	res, warnings, err := e.normalized()
	if err != nil {
		return "", warnings, err
	}

	recognizer := e.options.recognizer
	if recognizer == nil {
		client, err := ocr.NewWithConfig(e.options.ocrConfig)
		if err != nil {
			return "", warnings, err
		}
		recognizer = client
		if cutoff := e.options.ocrConfig.MinWordConfidence; cutoff > 0 {
			warnings = append(warnings, measure.Warning{
				Code:    measure.WarnLowConfidence,
				Message: fmt.Sprintf("words below confidence %.0f are discarded before parsing", cutoff),
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return "", warnings, err
	}
	raw, err := recognizer.Recognize(ctx, res.Enhanced)
	if err != nil {
		return "", warnings, fmt.Errorf("recognize: %w", err)
	}

	return e.cleanup(raw), warnings, nil
}

// normalized decodes the source and runs upscaling plus normalization.
func (e *Extraction) normalized() (*enhance.Result, []measure.Warning, error) {
	img, err := e.decodeSource()
	if err != nil {
		return nil, nil, err
	}

	var warnings []measure.Warning
	if e.options.upscaleTo > 0 {
		var resized bool
		img, resized = enhance.Upscale(img, e.options.upscaleTo)
		if resized {
			warnings = append(warnings, measure.Warning{
				Code:    measure.WarnUpscaled,
				Message: fmt.Sprintf("input upscaled to %d px height before normalization", img.Bounds().Dy()),
			})
		}
	}

	res, err := enhance.Normalize(img, e.options.enhanceConfig)
	if err != nil {
		return nil, warnings, err
	}
	return res, warnings, nil
}

// decodeSource produces the image handed to the normalizer.
func (e *Extraction) decodeSource() (image.Image, error) {
	switch e.source {
	case sourceImage:
		return e.img, nil
	case sourceBytes:
		return decodeImage(e.data)
	default:
		return nil, fmt.Errorf("no image source configured")
	}
}

// cleanup applies the text cleanup pass unless disabled.
func (e *Extraction) cleanup(text string) string {
	if e.options.skipCleanup {
		return text
	}
	return ocr.RepairDigits(ocr.CleanText(text))
}
