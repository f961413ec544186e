package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/insightdelivered/client-registry/internal/bank"
	"github.com/insightdelivered/client-registry/internal/models"
)

// Message contexts for FormatClientMessage.
const (
	ContextCall   = "call"
	ContextSearch = "search"
)

// FormatClientMessage renders one client record as a Telegram HTML
// message for an incoming call or a manual search.
func FormatClientMessage(rec models.ClientRecord, context, lineNumber string) string {
	title := "INCOMING CALL"
	if context == ContextSearch {
		title = "SEARCH RESULT"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", title)
	fmt.Fprintf(&b, "Number: <code>%s</code>\n", rec.Phone)
	if lineNumber != "" {
		fmt.Fprintf(&b, "Line: <code>%s</code>\n", lineNumber)
	}
	fmt.Fprintf(&b, "%s\n\n", time.Now().Format("02/01/2006 15:04:05"))

	fmt.Fprintf(&b, "<b>IDENTITY</b>\n")
	fmt.Fprintf(&b, "Last name: <b>%s</b>\n", rec.LastName)
	fmt.Fprintf(&b, "First name: <b>%s</b>\n", rec.FirstName)
	fmt.Fprintf(&b, "Born: %s\n\n", rec.BirthDate)

	fmt.Fprintf(&b, "<b>CONTACT</b>\n")
	fmt.Fprintf(&b, "Email: %s\n", rec.Email)
	fmt.Fprintf(&b, "Address: %s\n", rec.Address)
	fmt.Fprintf(&b, "City: %s (%s)\n\n", rec.City, rec.PostalCode)

	fmt.Fprintf(&b, "<b>BANK</b>\n")
	fmt.Fprintf(&b, "Bank: %s\n", rec.BankName)
	fmt.Fprintf(&b, "SWIFT: <code>%s</code>\n", rec.SWIFT)
	fmt.Fprintf(&b, "IBAN: <code>%s</code>\n\n", rec.IBAN)

	fmt.Fprintf(&b, "<b>STATUS</b>\n")
	fmt.Fprintf(&b, "%s | calls: %d", rec.Status, rec.CallCount)
	return b.String()
}

// FormatClassification renders an account-identifier analysis.
func FormatClassification(raw string, cls bank.Classification) string {
	return fmt.Sprintf("<b>IBAN ANALYSIS</b>\n\n<code>%s</code>\n%s", raw, cls.BankName)
}
