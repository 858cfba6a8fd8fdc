package ocr

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// CleanText prepares raw recognizer output for parsing. NFKC folding maps
// full-width digits and letters to ASCII, line endings are normalized,
// whitespace runs collapse to single spaces, and lines without a single
// letter or digit (pure punctuation noise) are dropped. Text that already
// parses cleanly comes through with its meaning intact.
func CleanText(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" || !hasAlnum(line) {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

var digitConfusions = strings.NewReplacer("O", "0", "o", "0", "I", "1", "l", "1")

// RepairDigits fixes the classic seven-segment confusions, O read for 0
// and I or l read for 1, inside tokens that already carry at least one
// digit. Pure letter tokens like "PULSE" or "mmol" are never touched, and
// only short segments (2-4 runes between slashes, dots or colons) are
// repaired, which is where display digits live. Whitespace inside each
// line is normalized to single spaces.
func RepairDigits(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		tokens := strings.Fields(line)
		for j, tok := range tokens {
			tokens[j] = repairToken(tok)
		}
		lines[i] = strings.Join(tokens, " ")
	}
	return strings.Join(lines, "\n")
}

// repairToken repairs one whitespace-delimited token, treating the
// segments around slashes, dots and colons independently so "12O/8O" and
// "1O5.2" both come out right.
func repairToken(tok string) string {
	var b strings.Builder
	start := 0
	for i, r := range tok {
		if r == '/' || r == '.' || r == ':' {
			b.WriteString(repairSegment(tok[start:i]))
			b.WriteRune(r)
			start = i + utf8.RuneLen(r)
		}
	}
	if start == 0 {
		return repairSegment(tok)
	}
	b.WriteString(repairSegment(tok[start:]))
	return b.String()
}

func repairSegment(seg string) string {
	n := utf8.RuneCountInString(seg)
	if n < 2 || n > 4 {
		return seg
	}
	hasDigit := false
	for _, r := range seg {
		if r >= '0' && r <= '9' {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return seg
	}
	return digitConfusions.Replace(seg)
}
