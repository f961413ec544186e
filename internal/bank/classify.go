package bank

import (
	"fmt"
	"strings"
)

// Display names for identifiers the routing table cannot resolve.
const (
	NameNone    = "N/A"
	NameForeign = "Foreign bank"
	NameInvalid = "Invalid account identifier"

	// UnknownCode is the sort-code prefix sentinel for unresolvable
	// identifiers.
	UnknownCode = "unknown"

	countryMarker = "FR"
	minIBANLength = 14
)

// Classification is the outcome of resolving one account identifier.
type Classification struct {
	BankName string `json:"bankName"`
	Code     string `json:"code"`
	// Identified is true only for exact routing-table hits. A fallback
	// "French bank (<code>)" name still carries a real code for grouping
	// but does not count as identified.
	Identified bool `json:"identified"`
}

// CleanIdentifier normalizes a raw account identifier: spaces and
// hyphens removed, upper-cased.
func CleanIdentifier(raw string) string {
	cleaned := strings.ReplaceAll(raw, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	return strings.ToUpper(cleaned)
}

// Classify resolves a raw account identifier against the routing table.
// Pure function of its input: it never fails and has no side effects.
func (t *RoutingTable) Classify(raw string) Classification {
	cleaned := CleanIdentifier(raw)
	if cleaned == "" {
		return Classification{BankName: NameNone, Code: UnknownCode}
	}
	if !strings.HasPrefix(cleaned, countryMarker) {
		return Classification{BankName: NameForeign, Code: UnknownCode}
	}
	if len(cleaned) < minIBANLength {
		return Classification{BankName: NameInvalid, Code: UnknownCode}
	}

	code := cleaned[4:9]
	if name, ok := t.banks[code]; ok {
		return Classification{BankName: name, Code: code, Identified: true}
	}
	return Classification{
		BankName: fmt.Sprintf("French bank (%s)", code),
		Code:     code,
	}
}
