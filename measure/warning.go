package measure

import "strings"

// WarningCode classifies a non-fatal condition observed during extraction.
type WarningCode int

const (
	// WarnValuesSwapped: systolic and diastolic arrived flipped and were
	// swapped by the correction step.
	WarnValuesSwapped WarningCode = iota
	// WarnPulseDropped: a pulse candidate was found but fell outside
	// [MinPulse, MaxPulse] and was omitted from the reading.
	WarnPulseDropped
	// WarnLowConfidence: recognized words below the confidence cutoff
	// were discarded before parsing.
	WarnLowConfidence
	// WarnUpscaled: the input image was upscaled before normalization.
	WarnUpscaled
)

// String returns a short identifier for the code.
func (c WarningCode) String() string {
	switch c {
	case WarnValuesSwapped:
		return "values-swapped"
	case WarnPulseDropped:
		return "pulse-dropped"
	case WarnLowConfidence:
		return "low-confidence"
	case WarnUpscaled:
		return "upscaled"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal diagnostic produced alongside a successful
// reading. Extraction never logs; it returns warnings and lets the caller
// decide what to surface.
type Warning struct {
	Code    WarningCode
	Message string
}

// String renders the warning for logs.
func (w Warning) String() string {
	return w.Code.String() + ": " + w.Message
}

// FormatWarnings renders a warning slice as a single line, semicolon
// separated, for compact logging.
func FormatWarnings(ws []Warning) string {
	if len(ws) == 0 {
		return ""
	}
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
