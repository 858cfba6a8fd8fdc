package measure

import (
	"time"

	"github.com/google/uuid"
)

// SourceImageUpload tags records whose values were extracted from a photo
// of a device display, as opposed to manual entry.
const SourceImageUpload = "image_upload"

// Record is the serializable envelope for a captured measurement: the
// shape a caller stores or transmits after a successful extraction.
type Record struct {
	ID                 string    `json:"id"`
	Type               string    `json:"type"`
	Value              any       `json:"value"`
	Unit               string    `json:"unit"`
	Timestamp          time.Time `json:"timestamp"`
	Notes              string    `json:"notes,omitempty"`
	MeasurementContext Context   `json:"measurement_context,omitempty"`
	Source             string    `json:"source"`
	CreatedAt          time.Time `json:"created_at"`
}

// bloodPressureValue is the nested value object of a blood-pressure record.
type bloodPressureValue struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
	Pulse     int `json:"pulse,omitempty"`
}

// NewRecord wraps a reading in a Record tagged as an image upload. Blood
// pressure is stored as a nested {systolic, diastolic, pulse} object with
// unit mmHg; blood sugar as a scalar value with its own unit and, when
// set, the measurement context.
func NewRecord(r Reading, notes string) Record {
	now := time.Now().UTC()
	rec := Record{
		ID:        uuid.NewString(),
		Type:      r.Kind().String(),
		Timestamp: now,
		Notes:     notes,
		Source:    SourceImageUpload,
		CreatedAt: now,
	}

	switch v := r.(type) {
	case BloodPressure:
		rec.Value = bloodPressureValue{
			Systolic:  v.Systolic,
			Diastolic: v.Diastolic,
			Pulse:     v.Pulse,
		}
		rec.Unit = "mmHg"
	case BloodSugar:
		rec.Value = v.Value
		rec.Unit = v.Unit.String()
		rec.MeasurementContext = v.Context
	}

	return rec
}
