package parser

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/insightdelivered/client-registry/internal/bank"
	"github.com/insightdelivered/client-registry/internal/models"
)

// SheetParser reads spreadsheet workbooks (.xlsx). Row 1 is a header
// row; each header is matched against a fixed keyword set to infer its
// semantic column, so source column order is irrelevant. Data rows start
// at row 2.
type SheetParser struct {
	Table *bank.RoutingTable
}

func (p *SheetParser) FormatName() string {
	return "spreadsheet"
}

// Semantic columns inferred from the header row.
const (
	colPhone      = "phone"
	colLastName   = "lastName"
	colFirstName  = "firstName"
	colBirthDate  = "birthDate"
	colEmail      = "email"
	colAddress    = "address"
	colCity       = "city"
	colPostalCode = "postalCode"
	colIBAN       = "iban"
	colSWIFT      = "swift"
)

func (p *SheetParser) Parse(data []byte) (*models.ParseResult, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer book.Close()

	sheet := book.GetSheetName(book.GetActiveSheetIndex())
	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	res := &models.ParseResult{}
	if len(rows) == 0 {
		return res, nil
	}

	columns := mapColumns(rows[0])
	now := time.Now()

	for _, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}

		f := rowFields{
			phone:      cell(row, columns, colPhone),
			lastName:   cell(row, columns, colLastName),
			firstName:  cell(row, columns, colFirstName),
			birthDate:  cell(row, columns, colBirthDate),
			email:      cell(row, columns, colEmail),
			address:    cell(row, columns, colAddress),
			city:       cell(row, columns, colCity),
			postalCode: cell(row, columns, colPostalCode),
			iban:       cell(row, columns, colIBAN),
			swift:      cell(row, columns, colSWIFT),
		}

		// Last and first name may share one column.
		if f.firstName == "" && strings.Contains(f.lastName, " ") {
			f.lastName, f.firstName = splitFullName(f.lastName)
		}

		rec, cls, ok := buildRecord(p.Table, f, now)
		if !ok {
			res.Skipped++
			continue
		}
		if cls.Identified {
			res.Identified++
		}
		res.Records = append(res.Records, rec)
	}

	return res, nil
}

// mapColumns infers each header cell's semantic column by substring
// matching on the folded header text. Unmatched headers are ignored;
// when two headers map to the same column the later one wins.
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int)
	for idx, raw := range header {
		h := foldHeader(raw)
		if h == "" {
			continue
		}
		switch {
		case strings.Contains(h, "tel") || strings.Contains(h, "phone"):
			columns[colPhone] = idx
		case strings.Contains(h, "nom") && !strings.Contains(h, "prenom"):
			columns[colLastName] = idx
		case strings.Contains(h, "prenom"):
			columns[colFirstName] = idx
		case strings.Contains(h, "naissance") || strings.Contains(h, "birth"):
			columns[colBirthDate] = idx
		case strings.Contains(h, "email") || strings.Contains(h, "mail"):
			columns[colEmail] = idx
		case strings.Contains(h, "adresse") || strings.Contains(h, "address"):
			columns[colAddress] = idx
		case strings.Contains(h, "ville") || strings.Contains(h, "city"):
			columns[colCity] = idx
		case strings.Contains(h, "code") && strings.Contains(h, "postal"):
			columns[colPostalCode] = idx
		case strings.Contains(h, "iban"):
			columns[colIBAN] = idx
		case strings.Contains(h, "swift") || strings.Contains(h, "bic"):
			columns[colSWIFT] = idx
		}
	}
	return columns
}

// foldHeader lowercases a header cell and strips diacritics, so
// "Téléphone" and "Prénom" match their plain keywords.
func foldHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// cell reads a semantic column from a data row; unmapped columns and
// out-of-range cells read as empty.
func cell(row []string, columns map[string]int, col string) string {
	idx, ok := columns[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
