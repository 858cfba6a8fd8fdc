package measure

// ValueStats aggregates a single series of measurement values.
type ValueStats struct {
	Count int     `json:"count"`
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// add folds one value into the running aggregate.
func (s *ValueStats) add(v float64) {
	if s.Count == 0 || v < s.Min {
		s.Min = v
	}
	if s.Count == 0 || v > s.Max {
		s.Max = v
	}
	// Avg holds the running sum until finish is called.
	s.Avg += v
	s.Count++
}

// finish converts the running sum into the mean.
func (s *ValueStats) finish() {
	if s.Count > 0 {
		s.Avg /= float64(s.Count)
	}
}

// BloodPressureStats aggregates a set of blood-pressure readings. Pulse
// covers only the readings that carried one, so its count may be lower.
type BloodPressureStats struct {
	Count     int        `json:"count"`
	Systolic  ValueStats `json:"systolic"`
	Diastolic ValueStats `json:"diastolic"`
	Pulse     ValueStats `json:"pulse,omitempty"`
}

// SummarizeBloodPressure computes aggregate statistics over readings.
func SummarizeBloodPressure(readings []BloodPressure) BloodPressureStats {
	var stats BloodPressureStats
	stats.Count = len(readings)
	for _, r := range readings {
		stats.Systolic.add(float64(r.Systolic))
		stats.Diastolic.add(float64(r.Diastolic))
		if r.HasPulse() {
			stats.Pulse.add(float64(r.Pulse))
		}
	}
	stats.Systolic.finish()
	stats.Diastolic.finish()
	stats.Pulse.finish()
	return stats
}

// BloodSugarStats aggregates a set of blood-sugar readings, overall and
// grouped by measurement context. Readings without a context group under
// ContextUnknown.
type BloodSugarStats struct {
	Count     int                    `json:"count"`
	Overall   ValueStats             `json:"overall"`
	ByContext map[Context]ValueStats `json:"by_context"`
}

// SummarizeBloodSugar computes aggregate statistics over readings. Mixed
// units are not converted; callers should summarize one unit at a time.
func SummarizeBloodSugar(readings []BloodSugar) BloodSugarStats {
	stats := BloodSugarStats{
		Count:     len(readings),
		ByContext: make(map[Context]ValueStats),
	}
	groups := make(map[Context]*ValueStats)
	for _, r := range readings {
		stats.Overall.add(r.Value)

		ctx := r.Context
		if ctx == "" {
			ctx = ContextUnknown
		}
		g, ok := groups[ctx]
		if !ok {
			g = &ValueStats{}
			groups[ctx] = g
		}
		g.add(r.Value)
	}
	stats.Overall.finish()
	for ctx, g := range groups {
		g.finish()
		stats.ByContext[ctx] = *g
	}
	return stats
}
