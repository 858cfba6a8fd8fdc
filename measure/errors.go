package measure

import (
	"errors"
	"strings"
)

// Sentinel errors forming the extraction failure taxonomy. Every failure
// returned by the extraction pipeline is an *Error wrapping exactly one of
// these, so callers classify outcomes with errors.Is.
var (
	// ErrDecode reports that the raw image bytes could not be decoded.
	// Fatal to the call; nothing is retried.
	ErrDecode = errors.New("image decode failed")

	// ErrNoCandidate reports that no plausible numeric pattern was found
	// in the recognized text. User-correctable: retake the photo.
	ErrNoCandidate = errors.New("no measurement candidate found")

	// ErrOutOfRange reports that a candidate was found but lies outside
	// physiologically plausible bounds. The rejected value travels in
	// Error.Candidate for user review.
	ErrOutOfRange = errors.New("measurement outside plausible range")

	// ErrAmbiguous is reserved for future multi-candidate disambiguation.
	// No current tier raises it.
	ErrAmbiguous = errors.New("ambiguous measurement candidates")
)

// Error is the extraction failure type. It carries the recognized text and
// the offending candidate so callers can show users what was rejected.
type Error struct {
	// Kind is the measurement kind under extraction, or KindUnknown when
	// the failure happened before the parser ran (e.g. decode).
	Kind Kind

	// Err is one of the sentinel errors above.
	Err error

	// Text is the recognized text the parser saw, when available.
	Text string

	// Candidate is the rejected value for ErrOutOfRange failures,
	// e.g. "999/999" or "1050 mg/dL".
	Candidate string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Kind != KindUnknown {
		b.WriteString(e.Kind.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	if e.Candidate != "" {
		b.WriteString(": candidate ")
		b.WriteString(e.Candidate)
	}
	return b.String()
}

// Unwrap exposes the sentinel for errors.Is.
func (e *Error) Unwrap() error { return e.Err }
