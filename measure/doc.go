// Package measure defines the measurement domain model shared by the
// extraction pipeline: measurement kinds, units, strongly-typed readings,
// the extraction error taxonomy, and non-fatal warnings.
//
// # Readings
//
// The two concrete reading types are [BloodPressure] and [BloodSugar]. Both
// implement the [Reading] interface and validate themselves against
// physiologically plausible ranges:
//
//	bp := measure.BloodPressure{Systolic: 120, Diastolic: 80, Pulse: 72}
//	if err := bp.Validate(); err != nil {
//	    // out of range
//	}
//
// # Outcomes
//
// Extraction failures are *[Error] values wrapping one of the sentinel
// errors [ErrDecode], [ErrNoCandidate], [ErrOutOfRange] or [ErrAmbiguous],
// so callers branch with errors.Is:
//
//	_, _, err := vitalscan.FromText(text).BloodPressure(ctx)
//	if errors.Is(err, measure.ErrNoCandidate) {
//	    // ask the user for a clearer photo
//	}
//
// Non-fatal conditions (a dropped out-of-range pulse, swapped values) are
// reported as [Warning] values alongside the successful reading rather
// than logged.
//
// # Records
//
// [Record] is the serializable envelope for a reading as captured from a
// device photo: a UUID, the measurement type and value, unit, timestamps
// and the "image_upload" source tag. [SummarizeBloodPressure] and
// [SummarizeBloodSugar] compute aggregate statistics over reading slices.
package measure
