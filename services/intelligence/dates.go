// File: service/ai/dates.go
package ai

import (
	"regexp"
	"strings"
)

// monthNums maps month names and their common abbreviations to a zero-padded
// month number.
var monthNums = map[string]string{
	"january": "01", "jan": "01",
	"february": "02", "feb": "02",
	"march": "03", "mar": "03",
	"april": "04", "apr": "04",
	"may":  "05",
	"june": "06", "jun": "06",
	"july": "07", "jul": "07",
	"august": "08", "aug": "08",
	"september": "09", "sep": "09", "sept": "09",
	"october": "10", "oct": "10",
	"november": "11", "nov": "11",
	"december": "12", "dec": "12",
}

var (
	dayNameYearForm = regexp.MustCompile(`^\d{1,2}\s+[A-Za-z]+\s+\d{4}$`)
	isoForm         = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)
	usForm          = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{4}$`)
)

// NormalizeDate canonicalizes the date spellings guests actually type into
// "YYYY-MM-DD". Supported: "25 December 2024" (month names and
// abbreviations), "2024-12-25" (loose ISO, parts re-padded), and US-style
// "12/25/2024" or "12-25-2024" (month first). Anything else is rejected.
// Purely textual: calendar validity is the validator's job.
func NormalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)

	switch {
	case dayNameYearForm.MatchString(raw):
		parts := strings.Fields(raw)
		month, ok := monthNums[strings.ToLower(parts[1])]
		if !ok {
			return "", false
		}
		return parts[2] + "-" + month + "-" + pad2(parts[0]), true

	case isoForm.MatchString(raw):
		parts := strings.Split(raw, "-")
		return parts[0] + "-" + pad2(parts[1]) + "-" + pad2(parts[2]), true

	case usForm.MatchString(raw):
		sep := "-"
		if strings.Contains(raw, "/") {
			sep = "/"
		}
		parts := strings.Split(raw, sep)
		return parts[2] + "-" + pad2(parts[0]) + "-" + pad2(parts[1]), true
	}
	return "", false
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
