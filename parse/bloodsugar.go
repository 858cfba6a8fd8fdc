package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/healthtrack/vitalscan/measure"
)

var (
	sugarUnitPattern    = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(mg/dL|mmol/L|mg|mmol)`)
	sugarLabeledPattern = regexp.MustCompile(`(?i)(?:glucose|sugar|reading|glucose reading)[:\s]+(\d+\.?\d*)`)
	sugarBarePattern    = regexp.MustCompile(`\b\d+\.?\d*\b`)
)

// Display ranges for the bare-number fallback, narrower than the final
// validation bounds so timestamps and other stray digits on the display
// cannot become a reading.
const (
	bareMinMgPerDL  = 40.0
	bareMaxMgPerDL  = 600.0
	bareMinMmolPerL = 2.0
	bareMaxMmolPerL = 33.3
)

// BloodSugar extracts a glucose reading from recognized display text. The
// first tier to produce a value wins: a number with an explicit unit
// token, a labeled value ("Glucose reading: 115"), then the first
// standalone number inside the typical meter display range. The unit is
// mmol/L when "mmol" occurs anywhere in the text, mg/dL otherwise.
//
// No candidate in any tier wraps [measure.ErrNoCandidate]; a candidate
// outside the validation bounds wraps [measure.ErrOutOfRange] and carries
// the rejected value with its unit.
func BloodSugar(text string) (measure.BloodSugar, []measure.Warning, error) {
	unit := measure.UnitMgPerDL
	if strings.Contains(strings.ToLower(text), "mmol") {
		unit = measure.UnitMmolPerL
	}

	value, found := findSugarValue(text, unit)
	if !found {
		return measure.BloodSugar{}, nil, fail(measure.KindBloodSugar, measure.ErrNoCandidate, text, "")
	}

	reading := measure.BloodSugar{Value: value, Unit: unit}
	if err := reading.Validate(); err != nil {
		candidate := strconv.FormatFloat(value, 'f', -1, 64) + " " + unit.String()
		return measure.BloodSugar{}, nil, fail(measure.KindBloodSugar, measure.ErrOutOfRange, text, candidate)
	}

	return reading, nil, nil
}

func findSugarValue(text string, unit measure.Unit) (float64, bool) {
	// Tier 1: a number immediately followed by a unit token.
	if m := sugarUnitPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v, true
		}
	}

	// Tier 2: a labeled value.
	if m := sugarLabeledPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v, true
		}
	}

	// Tier 3: the first standalone number inside the display range.
	lo, hi := bareMinMgPerDL, bareMaxMgPerDL
	if unit == measure.UnitMmolPerL {
		lo, hi = bareMinMmolPerL, bareMaxMmolPerL
	}
	for _, s := range sugarBarePattern.FindAllString(text, -1) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			continue
		}
		if v >= lo && v <= hi {
			return v, true
		}
	}

	return 0, false
}
