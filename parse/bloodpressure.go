package parse

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/healthtrack/vitalscan/measure"
)

var (
	bpSlashPattern     = regexp.MustCompile(`(\d{2,3})\s*/\s*(\d{2,3})`)
	bpSystolicPattern  = regexp.MustCompile(`(?i)(?:SYS|SYSTOLIC)[:\s]+(\d{2,3})`)
	bpDiastolicPattern = regexp.MustCompile(`(?i)(?:DIA|DIASTOLIC)[:\s]+(\d{2,3})`)
	bpPulsePattern     = regexp.MustCompile(`(?i)(?:PUL|PULSE)[:\s]+(\d{2,3})`)
	bpBarePattern      = regexp.MustCompile(`\b(\d{2,3})\b`)
)

// BloodPressure extracts a blood pressure reading from recognized display
// text. Three tiers fill the fields: the NNN/NN slash form, labeled values
// (SYS/SYSTOLIC, DIA/DIASTOLIC, PUL/PULSE), and a last-resort scan over
// standalone 2-3 digit numbers where the two largest fill whichever of
// systolic and diastolic is still missing. Labeled values overwrite slash
// values. A flipped systolic/diastolic pair is corrected with a warning,
// and an implausible pulse is dropped with a warning rather than failing
// the reading.
//
// With no workable systolic/diastolic pair the error wraps
// [measure.ErrNoCandidate]; a pair outside physiological bounds wraps
// [measure.ErrOutOfRange] and carries the rejected pair as the candidate.
func BloodPressure(text string) (measure.BloodPressure, []measure.Warning, error) {
	var (
		systolic, diastolic, pulse int
		haveSys, haveDia, havePul  bool
		warnings                   []measure.Warning
	)

	// Tier 1: the NNN/NN form every cuff display shows.
	if m := bpSlashPattern.FindStringSubmatch(text); m != nil {
		systolic, _ = strconv.Atoi(m[1])
		diastolic, _ = strconv.Atoi(m[2])
		haveSys, haveDia = true, true
	}

	// Tier 2: labeled values win over the slash form.
	if m := bpSystolicPattern.FindStringSubmatch(text); m != nil {
		systolic, _ = strconv.Atoi(m[1])
		haveSys = true
	}
	if m := bpDiastolicPattern.FindStringSubmatch(text); m != nil {
		diastolic, _ = strconv.Atoi(m[1])
		haveDia = true
	}
	if m := bpPulsePattern.FindStringSubmatch(text); m != nil {
		pulse, _ = strconv.Atoi(m[1])
		havePul = true
	}

	// Tier 3: with at least two standalone numbers, the largest fills a
	// missing systolic and the second largest a missing diastolic.
	if !haveSys || !haveDia {
		if nums := bareNumbers(text); len(nums) >= 2 {
			sort.Sort(sort.Reverse(sort.IntSlice(nums)))
			if !haveSys {
				systolic = nums[0]
				haveSys = true
			}
			if !haveDia {
				diastolic = nums[1]
				haveDia = true
			}
		}
	}

	if !haveSys || !haveDia {
		return measure.BloodPressure{}, warnings, fail(measure.KindBloodPressure, measure.ErrNoCandidate, text, "")
	}

	if systolic < diastolic {
		systolic, diastolic = diastolic, systolic
		warnings = append(warnings, measure.Warning{
			Code:    measure.WarnValuesSwapped,
			Message: fmt.Sprintf("systolic and diastolic were flipped, corrected to %d/%d", systolic, diastolic),
		})
	}

	reading := measure.BloodPressure{Systolic: systolic, Diastolic: diastolic}
	if err := reading.Validate(); err != nil {
		candidate := fmt.Sprintf("%d/%d", systolic, diastolic)
		return measure.BloodPressure{}, warnings, fail(measure.KindBloodPressure, measure.ErrOutOfRange, text, candidate)
	}

	if havePul {
		if pulse < measure.MinPulse || pulse > measure.MaxPulse {
			warnings = append(warnings, measure.Warning{
				Code:    measure.WarnPulseDropped,
				Message: fmt.Sprintf("pulse %d outside [%d, %d], dropped", pulse, measure.MinPulse, measure.MaxPulse),
			})
		} else {
			reading.Pulse = pulse
		}
	}

	return reading, warnings, nil
}

// bareNumbers collects every standalone 2-3 digit number in text order.
// Longer digit runs have no internal word boundary and are skipped whole.
func bareNumbers(text string) []int {
	ms := bpBarePattern.FindAllStringSubmatch(text, -1)
	nums := make([]int, 0, len(ms))
	for _, m := range ms {
		if n, err := strconv.Atoi(m[1]); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}
