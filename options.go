package vitalscan

import (
	"github.com/healthtrack/vitalscan/enhance"
	"github.com/healthtrack/vitalscan/ocr"
)

// extractOptions holds configuration for an extraction chain.
type extractOptions struct {
	// Recognition
	recognizer ocr.Recognizer // nil means construct the default client
	ocrConfig  ocr.Config     // settings for the default client

	// Normalization
	enhanceConfig enhance.Config
	upscaleTo     int // minimum height before normalization, 0 disables

	// Text handling
	skipCleanup bool // leave recognized text untouched before parsing
}

// defaultOptions returns the default extraction options.
func defaultOptions() extractOptions {
	return extractOptions{
		ocrConfig:     ocr.DefaultConfig(),
		enhanceConfig: enhance.DefaultConfig(),
	}
}

// clone creates a deep copy of extractOptions.
func (o extractOptions) clone() extractOptions {
	newOpts := o

	// Deep copy the language list
	if o.ocrConfig.Languages != nil {
		newOpts.ocrConfig.Languages = make([]string, len(o.ocrConfig.Languages))
		copy(newOpts.ocrConfig.Languages, o.ocrConfig.Languages)
	}

	return newOpts
}
