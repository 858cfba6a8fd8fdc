package measure

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindBloodPressure, "blood_pressure"},
		{KindBloodSugar, "blood_sugar"},
		{KindUnknown, "unknown"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"blood_pressure", KindBloodPressure, false},
		{"blood_sugar", KindBloodSugar, false},
		{"heart_rate", KindUnknown, true},
		{"", KindUnknown, true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUnit_String(t *testing.T) {
	if got := UnitMgPerDL.String(); got != "mg/dL" {
		t.Errorf("UnitMgPerDL.String() = %q, want %q", got, "mg/dL")
	}
	if got := UnitMmolPerL.String(); got != "mmol/L" {
		t.Errorf("UnitMmolPerL.String() = %q, want %q", got, "mmol/L")
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    Unit
		wantErr bool
	}{
		{"mg/dL", UnitMgPerDL, false},
		{"mg", UnitMgPerDL, false},
		{"mmol/L", UnitMmolPerL, false},
		{"mmol", UnitMmolPerL, false},
		{"moles", UnitMgPerDL, true},
	}

	for _, tt := range tests {
		got, err := ParseUnit(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseUnit(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseUnit(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUnit_JSONRoundTrip(t *testing.T) {
	reading := BloodSugar{Value: 6.2, Unit: UnitMmolPerL}
	data, err := json.Marshal(reading)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"value":6.2,"unit":"mmol/L"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var back BloodSugar
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != reading {
		t.Errorf("round trip = %+v, want %+v", back, reading)
	}
}

func TestBloodPressure_Validate(t *testing.T) {
	tests := []struct {
		name    string
		reading BloodPressure
		wantErr bool
	}{
		{"normal", BloodPressure{Systolic: 120, Diastolic: 80}, false},
		{"with pulse", BloodPressure{Systolic: 120, Diastolic: 80, Pulse: 72}, false},
		{"boundary low", BloodPressure{Systolic: 60, Diastolic: 30}, false},
		{"boundary high", BloodPressure{Systolic: 250, Diastolic: 150}, false},
		{"systolic too high", BloodPressure{Systolic: 999, Diastolic: 80}, true},
		{"systolic too low", BloodPressure{Systolic: 45, Diastolic: 33}, true},
		{"diastolic too high", BloodPressure{Systolic: 200, Diastolic: 160}, true},
		{"diastolic too low", BloodPressure{Systolic: 120, Diastolic: 20}, true},
		{"diastolic above systolic", BloodPressure{Systolic: 70, Diastolic: 110}, true},
		{"pulse too high", BloodPressure{Systolic: 120, Diastolic: 80, Pulse: 250}, true},
		{"pulse too low", BloodPressure{Systolic: 120, Diastolic: 80, Pulse: 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reading.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrOutOfRange) {
				t.Errorf("Validate() error = %v, want wrapped ErrOutOfRange", err)
			}
		})
	}
}

func TestBloodSugar_Validate(t *testing.T) {
	tests := []struct {
		name    string
		reading BloodSugar
		wantErr bool
	}{
		{"normal mg/dL", BloodSugar{Value: 115, Unit: UnitMgPerDL}, false},
		{"normal mmol/L", BloodSugar{Value: 6.2, Unit: UnitMmolPerL}, false},
		{"mg/dL boundary low", BloodSugar{Value: 20, Unit: UnitMgPerDL}, false},
		{"mg/dL boundary high", BloodSugar{Value: 800, Unit: UnitMgPerDL}, false},
		{"mg/dL too high", BloodSugar{Value: 1050, Unit: UnitMgPerDL}, true},
		{"mg/dL too low", BloodSugar{Value: 12, Unit: UnitMgPerDL}, true},
		{"mmol/L boundary low", BloodSugar{Value: 1.1, Unit: UnitMmolPerL}, false},
		{"mmol/L boundary high", BloodSugar{Value: 44.4, Unit: UnitMmolPerL}, false},
		{"mmol/L too high", BloodSugar{Value: 50, Unit: UnitMmolPerL}, true},
		{"mmol/L too low", BloodSugar{Value: 0.5, Unit: UnitMmolPerL}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reading.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrOutOfRange) {
				t.Errorf("Validate() error = %v, want wrapped ErrOutOfRange", err)
			}
		})
	}
}

func TestBloodPressure_String(t *testing.T) {
	bp := BloodPressure{Systolic: 142, Diastolic: 88}
	if got := bp.String(); got != "142/88 mmHg" {
		t.Errorf("String() = %q, want %q", got, "142/88 mmHg")
	}

	bp.Pulse = 72
	if got := bp.String(); got != "142/88 mmHg, pulse 72 bpm" {
		t.Errorf("String() = %q, want %q", got, "142/88 mmHg, pulse 72 bpm")
	}
}

func TestBloodSugar_String(t *testing.T) {
	tests := []struct {
		reading BloodSugar
		want    string
	}{
		{BloodSugar{Value: 115, Unit: UnitMgPerDL}, "115 mg/dL"},
		{BloodSugar{Value: 6.2, Unit: UnitMmolPerL}, "6.2 mmol/L"},
	}

	for _, tt := range tests {
		if got := tt.reading.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestReadingInterface(t *testing.T) {
	var r Reading = BloodPressure{Systolic: 120, Diastolic: 80}
	if r.Kind() != KindBloodPressure {
		t.Errorf("Kind() = %v, want KindBloodPressure", r.Kind())
	}

	r = BloodSugar{Value: 115}
	if r.Kind() != KindBloodSugar {
		t.Errorf("Kind() = %v, want KindBloodSugar", r.Kind())
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "out of range with candidate",
			err:  &Error{Kind: KindBloodPressure, Err: ErrOutOfRange, Candidate: "999/999"},
			want: "blood_pressure: measurement outside plausible range: candidate 999/999",
		},
		{
			name: "no candidate",
			err:  &Error{Kind: KindBloodSugar, Err: ErrNoCandidate, Text: "no digits here"},
			want: "blood_sugar: no measurement candidate found",
		},
		{
			name: "decode failure without kind",
			err:  &Error{Err: ErrDecode},
			want: "image decode failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	err := error(&Error{Kind: KindBloodPressure, Err: ErrOutOfRange, Candidate: "999/999"})
	if !errors.Is(err, ErrOutOfRange) {
		t.Error("errors.Is(err, ErrOutOfRange) = false, want true")
	}
	if errors.Is(err, ErrNoCandidate) {
		t.Error("errors.Is(err, ErrNoCandidate) = true, want false")
	}

	var extractErr *Error
	if !errors.As(err, &extractErr) {
		t.Fatal("errors.As(err, *Error) = false, want true")
	}
	if extractErr.Candidate != "999/999" {
		t.Errorf("Candidate = %q, want %q", extractErr.Candidate, "999/999")
	}
}

func TestFormatWarnings(t *testing.T) {
	if got := FormatWarnings(nil); got != "" {
		t.Errorf("FormatWarnings(nil) = %q, want empty", got)
	}

	ws := []Warning{
		{Code: WarnValuesSwapped, Message: "systolic 70 < diastolic 110, swapped"},
		{Code: WarnPulseDropped, Message: "pulse 250 outside [30, 220]"},
	}
	want := "values-swapped: systolic 70 < diastolic 110, swapped; pulse-dropped: pulse 250 outside [30, 220]"
	if got := FormatWarnings(ws); got != want {
		t.Errorf("FormatWarnings() = %q, want %q", got, want)
	}
}
