package ocr

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Digits, dates, and bracket noise around the printed name.
	noisePattern = regexp.MustCompile(`[0-9/\-\.\(\)\[\]:]+`)
	// A plausible romanized name: letters with comma, space, hyphen, or
	// apostrophe separators, letter at both ends. Accepts the plate styles
	// seen in practice: "LIN,HSI-TSUNG", "Chen peiru", "CHANG CHIA HAO".
	namePattern      = regexp.MustCompile(`^[A-Za-z][A-Za-z,\s\-']+[A-Za-z]$`)
	separatorPattern = regexp.MustCompile(`[,\s\-']+`)
	underscoreRuns   = regexp.MustCompile(`_+`)

	upper = cases.Upper(language.English)
)

// nameFromText scans raw OCR output line by line and returns the first
// plausible name, normalized to UPPER_SNAKE. Empty string when no line
// qualifies.
func nameFromText(text string) string {
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 3 {
			continue
		}

		cleaned := strings.TrimSpace(noisePattern.ReplaceAllString(line, " "))
		if len(cleaned) < 3 {
			continue
		}
		if !namePattern.MatchString(cleaned) {
			continue
		}

		name := upper.String(cleaned)
		name = separatorPattern.ReplaceAllString(name, "_")
		name = underscoreRuns.ReplaceAllString(name, "_")
		name = strings.Trim(name, "_")

		// Multi-part names of reasonable length, or a single word long
		// enough to be unambiguous.
		if len(name) >= 4 && strings.Contains(name, "_") {
			return name
		}
		if len(name) >= 6 {
			return name
		}
	}
	return ""
}
