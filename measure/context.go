package measure

import "strings"

// Context describes when a blood-sugar measurement was taken relative to
// meals. Glucose targets differ sharply between fasting and post-meal
// readings, so records preserve it when it can be determined.
type Context string

const (
	ContextFasting   Context = "fasting"
	ContextAfterMeal Context = "after meal"
	ContextUnknown   Context = "unknown"
)

// fasting keywords are checked before after-meal keywords; "before meal"
// notes frequently also contain "meal".
var (
	fastingTerms   = []string{"fast", "before meal", "before breakfast"}
	afterMealTerms = []string{"after meal", "post", "post meal"}
)

// InferContext derives a measurement context from free-form user notes.
// Matching is case-insensitive substring search. Notes matching no known
// term (or empty notes) yield ContextUnknown.
func InferContext(notes string) Context {
	if notes == "" {
		return ContextUnknown
	}
	lower := strings.ToLower(notes)
	for _, term := range fastingTerms {
		if strings.Contains(lower, term) {
			return ContextFasting
		}
	}
	for _, term := range afterMealTerms {
		if strings.Contains(lower, term) {
			return ContextAfterMeal
		}
	}
	return ContextUnknown
}
