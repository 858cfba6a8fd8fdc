package measure

import (
	"fmt"
	"strconv"
)

// Kind identifies which measurement a device photo is expected to contain.
// It selects the parser tier chain and the unit/range rules that apply.
type Kind int

const (
	// KindUnknown is the zero value; no parser accepts it.
	KindUnknown Kind = iota
	// KindBloodPressure selects the blood-pressure tier chain (mmHg).
	KindBloodPressure
	// KindBloodSugar selects the blood-glucose tier chain (mg/dL or mmol/L).
	KindBloodSugar
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBloodPressure:
		return "blood_pressure"
	case KindBloodSugar:
		return "blood_sugar"
	default:
		return "unknown"
	}
}

// ParseKind converts a wire name ("blood_pressure", "blood_sugar") to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "blood_pressure":
		return KindBloodPressure, nil
	case "blood_sugar":
		return KindBloodSugar, nil
	default:
		return KindUnknown, fmt.Errorf("unknown measurement kind %q", s)
	}
}

// Unit is the unit of a blood-sugar value.
// The zero value is mg/dL, the default unit when a display carries none.
type Unit int

const (
	// UnitMgPerDL is milligrams per deciliter.
	UnitMgPerDL Unit = iota
	// UnitMmolPerL is millimoles per liter.
	UnitMmolPerL
)

// String returns the conventional unit spelling.
func (u Unit) String() string {
	if u == UnitMmolPerL {
		return "mmol/L"
	}
	return "mg/dL"
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Unit) UnmarshalText(b []byte) error {
	parsed, err := ParseUnit(string(b))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ParseUnit converts a unit spelling to a Unit. Both full ("mg/dL",
// "mmol/L") and partial ("mg", "mmol") spellings are accepted, matching
// what device displays actually print.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "mg/dL", "mg/dl", "mg":
		return UnitMgPerDL, nil
	case "mmol/L", "mmol/l", "mmol":
		return UnitMmolPerL, nil
	default:
		return UnitMgPerDL, fmt.Errorf("unknown blood sugar unit %q", s)
	}
}

// Plausible measurement bounds, inclusive. Candidates outside these ranges
// are rejected with ErrOutOfRange (or dropped, for the optional pulse).
const (
	MinSystolic  = 60
	MaxSystolic  = 250
	MinDiastolic = 30
	MaxDiastolic = 150
	MinPulse     = 30
	MaxPulse     = 220

	MinMgPerDL  = 20.0
	MaxMgPerDL  = 800.0
	MinMmolPerL = 1.1
	MaxMmolPerL = 44.4
)

// Reading is the common interface of extracted measurements. Callers
// type-switch on the concrete reading when they need the fields.
type Reading interface {
	// Kind reports which measurement this reading is.
	Kind() Kind
	// Validate checks the reading against plausible physiological ranges
	// and returns an error wrapping ErrOutOfRange on violation.
	Validate() error
}

// BloodPressure is a blood-pressure reading in mmHg. Pulse is optional
// metadata: zero means the device display carried no usable pulse.
type BloodPressure struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
	Pulse     int `json:"pulse,omitempty"`
}

// Kind implements Reading.
func (b BloodPressure) Kind() Kind { return KindBloodPressure }

// HasPulse reports whether the reading includes a pulse.
func (b BloodPressure) HasPulse() bool { return b.Pulse != 0 }

// Validate checks systolic, diastolic and (when present) pulse against
// their plausible ranges. The returned error wraps ErrOutOfRange.
func (b BloodPressure) Validate() error {
	if b.Systolic < MinSystolic || b.Systolic > MaxSystolic {
		return fmt.Errorf("systolic %d outside [%d, %d]: %w", b.Systolic, MinSystolic, MaxSystolic, ErrOutOfRange)
	}
	if b.Diastolic < MinDiastolic || b.Diastolic > MaxDiastolic {
		return fmt.Errorf("diastolic %d outside [%d, %d]: %w", b.Diastolic, MinDiastolic, MaxDiastolic, ErrOutOfRange)
	}
	if b.Diastolic > b.Systolic {
		return fmt.Errorf("diastolic %d exceeds systolic %d: %w", b.Diastolic, b.Systolic, ErrOutOfRange)
	}
	if b.HasPulse() && (b.Pulse < MinPulse || b.Pulse > MaxPulse) {
		return fmt.Errorf("pulse %d outside [%d, %d]: %w", b.Pulse, MinPulse, MaxPulse, ErrOutOfRange)
	}
	return nil
}

// String renders the reading the way a clinician would write it.
func (b BloodPressure) String() string {
	if b.HasPulse() {
		return fmt.Sprintf("%d/%d mmHg, pulse %d bpm", b.Systolic, b.Diastolic, b.Pulse)
	}
	return fmt.Sprintf("%d/%d mmHg", b.Systolic, b.Diastolic)
}

// BloodSugar is a blood-glucose reading. Context is optional and is set by
// the caller (for example from note keywords via InferContext), never by
// the parser.
type BloodSugar struct {
	Value   float64 `json:"value"`
	Unit    Unit    `json:"unit"`
	Context Context `json:"measurement_context,omitempty"`
}

// Kind implements Reading.
func (b BloodSugar) Kind() Kind { return KindBloodSugar }

// Validate checks the value against the plausible range for its unit.
// The returned error wraps ErrOutOfRange.
func (b BloodSugar) Validate() error {
	lo, hi := MinMgPerDL, MaxMgPerDL
	if b.Unit == UnitMmolPerL {
		lo, hi = MinMmolPerL, MaxMmolPerL
	}
	if b.Value < lo || b.Value > hi {
		return fmt.Errorf("value %s %s outside [%s, %s]: %w",
			formatValue(b.Value), b.Unit, formatValue(lo), formatValue(hi), ErrOutOfRange)
	}
	return nil
}

// String renders the reading with its unit.
func (b BloodSugar) String() string {
	return formatValue(b.Value) + " " + b.Unit.String()
}

// formatValue renders a glucose value without trailing zeros, so integral
// mg/dL readings print as "115" and mmol/L readings as "6.2".
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
