// Package export serializes store contents into downloadable files.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/insightdelivered/client-registry/internal/bank"
	"github.com/insightdelivered/client-registry/internal/models"
	"github.com/insightdelivered/client-registry/internal/store"
)

// Format selects the output serialization.
type Format string

const (
	FormatText Format = "txt" // pipe-delimited, same schema as ingestion
	FormatCSV  Format = "csv" // ;-separated with header row
)

// ParseFormat validates a format selector from a request path.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText:
		return FormatText, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q: use txt or csv", s)
	}
}

// ErrEmptyGroup is returned when a per-bank export targets a prefix with
// no records on file.
var ErrEmptyGroup = errors.New("no clients on file for this bank")

// File is one generated export.
type File struct {
	Content  []byte
	Filename string
	MIMEType string
}

// Generator serializes subsets of the client store. Output order follows
// the store's insertion and grouping order, so exports are deterministic
// for a fixed store state.
type Generator struct {
	Store *store.ClientStore
	Table *bank.RoutingTable
}

// AllClients exports every record. The CSV variant carries a trailing
// bank-name column; the text variant mirrors the ingestion schema.
func (g *Generator) AllClients(format Format) (*File, error) {
	records := g.Store.All()
	stamp := time.Now().Format("20060102_1504")

	switch format {
	case FormatText:
		return &File{
			Content:  pipeContent(records),
			Filename: fmt.Sprintf("all_clients_%s.txt", stamp),
			MIMEType: "text/plain",
		}, nil
	case FormatCSV:
		content, err := csvContent(records, true)
		if err != nil {
			return nil, err
		}
		return &File{
			Content:  content,
			Filename: fmt.Sprintf("all_clients_%s.csv", stamp),
			MIMEType: "text/csv",
		}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// BankClients exports the records grouped under one sort-code prefix.
// The bank column is omitted from the CSV since the bank is implied by
// the selection.
func (g *Generator) BankClients(code string, format Format) (*File, error) {
	phones := g.Store.ByBank(code)
	if len(phones) == 0 {
		return nil, ErrEmptyGroup
	}
	records := g.Store.Records(phones)

	name, ok := g.Table.Name(code)
	if !ok {
		name = "Bank_" + code
	}
	base := fmt.Sprintf("clients_%s_%s", strings.ReplaceAll(name, " ", "_"), code)

	switch format {
	case FormatText:
		return &File{
			Content:  pipeContent(records),
			Filename: base + ".txt",
			MIMEType: "text/plain",
		}, nil
	case FormatCSV:
		content, err := csvContent(records, false)
		if err != nil {
			return nil, err
		}
		return &File{
			Content:  content,
			Filename: base + ".csv",
			MIMEType: "text/csv",
		}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// pipeContent renders records in the 8-field ingestion schema, one line
// per record.
func pipeContent(records []models.ClientRecord) []byte {
	var b strings.Builder
	for i, rec := range records {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join([]string{
			rec.Phone,
			rec.FullName(),
			rec.BirthDate,
			rec.Email,
			rec.Address,
			fmt.Sprintf("%s (%s)", rec.City, rec.PostalCode),
			rec.IBAN,
			rec.SWIFT,
		}, "|"))
	}
	return []byte(b.String())
}

func csvContent(records []models.ClientRecord, withBank bool) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	header := []string{
		"Telephone", "Nom", "Prenom", "Date_Naissance", "Email",
		"Adresse", "Ville", "Code_Postal", "IBAN", "SWIFT",
	}
	if withBank {
		header = append(header, "Banque")
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Phone,
			rec.LastName,
			rec.FirstName,
			rec.BirthDate,
			rec.Email,
			rec.Address,
			rec.City,
			rec.PostalCode,
			rec.IBAN,
			rec.SWIFT,
		}
		if withBank {
			row = append(row, rec.BankName)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
