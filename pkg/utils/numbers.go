package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyJunk   = regexp.MustCompile(`(?i)[^\d.,\-]`)
	dotThousands   = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)
	commaThousands = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+$`)
)

// ParseFlexibleNumber parses a human-typed numeric string. It tolerates
// currency symbols, spaces, and Spanish-locale separators: "S/ 20.249,00"
// parses to 20249, "22,50" to 22.5, "9.749" to 9749 (dot as thousands
// grouping). Returns false when nothing numeric can be recovered.
func ParseFlexibleNumber(s string) (float64, bool) {
	s = strings.TrimSpace(currencyJunk.ReplaceAllString(s, ""))
	if s == "" || s == "-" {
		return 0, false
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")

	switch {
	case hasDot && hasComma:
		// The rightmost separator is the decimal mark.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		if commaThousands.MatchString(s) {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case hasDot:
		if dotThousands.MatchString(s) {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
