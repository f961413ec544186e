package models

import "time"

// Status describes how a record entered the registry.
type Status string

const (
	// StatusProspect marks records loaded from an upload batch.
	StatusProspect Status = "Prospect"
	// StatusNotOnFile marks synthesized placeholder records for callers
	// that are not in the registry. Placeholders are never stored.
	StatusNotOnFile Status = "Not on file"
)

// Format identifies a supported upload format.
type Format string

const (
	FormatPipe  Format = "pipe"
	FormatSheet Format = "sheet"
)

// ClientRecord is one customer entity, keyed by canonical phone number.
//
// BankName and BankCode are always derived together by the account
// classifier; they are never set independently.
type ClientRecord struct {
	Phone      string     `json:"phone"`
	LastName   string     `json:"lastName"`
	FirstName  string     `json:"firstName"`
	BirthDate  string     `json:"birthDate"` // free text, source formats vary
	Email      string     `json:"email"`
	Address    string     `json:"address"`
	City       string     `json:"city"`
	PostalCode string     `json:"postalCode"`
	IBAN       string     `json:"iban"` // raw identifier, as supplied
	SWIFT      string     `json:"swift"`
	BankName   string     `json:"bankName"`
	BankCode   string     `json:"bankCode"` // 5-char sort-code prefix, or "unknown"
	Status     Status     `json:"status"`
	CallCount  int        `json:"callCount"`
	LastCall   *time.Time `json:"lastCall,omitempty"`
	UploadedAt time.Time  `json:"uploadedAt"`
	Notes      string     `json:"notes,omitempty"`
}

// FullName joins last and first name with a single space, matching the
// pipe-format name field.
func (r ClientRecord) FullName() string {
	if r.FirstName == "" {
		return r.LastName
	}
	return r.LastName + " " + r.FirstName
}

// ParseResult holds the outcome of one ingestion batch.
type ParseResult struct {
	Records []ClientRecord `json:"records"`
	// Identified counts records whose sort-code prefix resolved to an
	// exact routing-table entry (fallback names do not count).
	Identified int `json:"identified"`
	// Skipped counts dropped rows (blank, short, or unparseable phone).
	Skipped int `json:"skipped"`
}
