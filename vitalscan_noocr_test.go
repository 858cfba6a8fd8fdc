//go:build !ocr

package vitalscan

import (
	"context"
	"errors"
	"testing"

	"github.com/healthtrack/vitalscan/ocr"
)

// Without the ocr build tag there is no default recognizer, so pipelines
// that reach the recognition step must fail with ocr.ErrNotEnabled unless
// one was injected.
func TestDefaultRecognizerRequiresBuildTag(t *testing.T) {
	_, _, err := FromBytes(displayPNG(t)).BloodPressure(context.Background())
	if !errors.Is(err, ocr.ErrNotEnabled) {
		t.Errorf("BloodPressure() error = %v, want ocr.ErrNotEnabled", err)
	}
}

func TestTextSourcesWorkWithoutBuildTag(t *testing.T) {
	// FromText never reaches recognition, so it works in every build.
	if _, _, err := FromText("142/88").BloodPressure(context.Background()); err != nil {
		t.Errorf("FromText().BloodPressure() error = %v, want nil", err)
	}
	// So does an injected recognizer.
	rec := &fakeRecognizer{text: "142/88"}
	if _, _, err := FromBytes(displayPNG(t)).WithRecognizer(rec).BloodPressure(context.Background()); err != nil {
		t.Errorf("injected recognizer error = %v, want nil", err)
	}
}
