// Package phone canonicalizes free-form French phone numbers.
package phone

import (
	"regexp"
	"strings"
)

// nonDigitPattern strips everything that is not a digit. A leading plus
// is re-attached separately in clean.
var nonDigitPattern = regexp.MustCompile(`\D`)

// Accepted shapes for a 10-digit domestic number, in precedence order.
// Every shape captures the 9 significant digits; the canonical form is
// "0" followed by those digits.
var shapePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^0033(\d{9})$`),
	regexp.MustCompile(`^\+33(\d{9})$`),
	regexp.MustCompile(`^33(\d{9})$`),
	regexp.MustCompile(`^0(\d{9})$`),
	regexp.MustCompile(`^(\d{9})$`),
}

// Normalize converts an arbitrary string to the canonical domestic form
// ("0" + 9 digits). The second return value is false when no accepted
// shape matches, including empty or non-numeric input.
func Normalize(raw string) (string, bool) {
	cleaned := clean(raw)
	if cleaned == "" {
		return "", false
	}
	for _, pattern := range shapePatterns {
		if m := pattern.FindStringSubmatch(cleaned); m != nil {
			return "0" + m[1], true
		}
	}
	return "", false
}

// clean keeps digits and a plus only in leading position, so
// "06+69290606" cleans to "0669290606" while "+33..." keeps its prefix.
func clean(raw string) string {
	raw = strings.TrimSpace(raw)
	digits := nonDigitPattern.ReplaceAllString(raw, "")
	if digits != "" && strings.HasPrefix(raw, "+") {
		return "+" + digits
	}
	return digits
}
