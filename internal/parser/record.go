package parser

import (
	"strings"
	"time"

	"github.com/insightdelivered/client-registry/internal/bank"
	"github.com/insightdelivered/client-registry/internal/models"
	"github.com/insightdelivered/client-registry/internal/phone"
)

// rowFields is the raw, untrimmed-but-positioned view of one candidate
// row, common to both source formats.
type rowFields struct {
	phone      string
	lastName   string
	firstName  string
	birthDate  string
	email      string
	address    string
	city       string
	postalCode string
	iban       string
	swift      string
}

// buildRecord validates and classifies one candidate row. ok is false
// when the phone cannot be canonicalized; such rows are dropped whole,
// never stored partially.
func buildRecord(table *bank.RoutingTable, f rowFields, now time.Time) (models.ClientRecord, bank.Classification, bool) {
	canonical, ok := phone.Normalize(f.phone)
	if !ok {
		return models.ClientRecord{}, bank.Classification{}, false
	}

	cls := table.Classify(f.iban)

	rec := models.ClientRecord{
		Phone:      canonical,
		LastName:   f.lastName,
		FirstName:  f.firstName,
		BirthDate:  f.birthDate,
		Email:      f.email,
		Address:    f.address,
		City:       f.city,
		PostalCode: f.postalCode,
		IBAN:       f.iban,
		SWIFT:      f.swift,
		BankName:   cls.BankName,
		BankCode:   cls.Code,
		Status:     models.StatusProspect,
		UploadedAt: now,
	}
	return rec, cls, true
}

// splitFullName splits a combined name field on the first space.
// No space means the whole field is the last name.
func splitFullName(full string) (lastName, firstName string) {
	parts := strings.SplitN(full, " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return full, ""
}
