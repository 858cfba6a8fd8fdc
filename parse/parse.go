// Package parse turns recognized display text into validated readings.
//
// Each measurement kind gets a tiered parser: explicit forms (a slash
// pair, a unit suffix) are tried before labeled values, and a bare-number
// scan runs last, gated so stray digits cannot invent a reading. Both
// parsers are pure functions of their text argument; the only package
// state is the precompiled patterns.
//
// Failures are always *[measure.Error] values wrapping one of the measure
// sentinels, so callers classify outcomes with errors.Is. Warnings
// accumulated before a failure are returned alongside it.
package parse

import "github.com/healthtrack/vitalscan/measure"

// fail wraps a sentinel into the package's error value.
func fail(kind measure.Kind, sentinel error, text, candidate string) error {
	return &measure.Error{Kind: kind, Err: sentinel, Text: text, Candidate: candidate}
}
