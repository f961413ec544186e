package parser

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/client-registry/internal/bank"
)

// buildWorkbook writes rows into a fresh single-sheet workbook and
// returns its bytes.
func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	book := excelize.NewFile()
	defer book.Close()

	sheet := book.GetSheetName(book.GetActiveSheetIndex())
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("writing row %d: %v", i+1, err)
		}
	}

	buf, err := book.WriteToBuffer()
	if err != nil {
		t.Fatalf("writing workbook: %v", err)
	}
	return buf.Bytes()
}

func TestSheetParserHeaderInference(t *testing.T) {
	p := &SheetParser{Table: bank.NewRoutingTable()}

	// Accented, case-varied headers in arbitrary column order.
	data := buildWorkbook(t, [][]interface{}{
		{"Email", "Téléphone", "NOM", "Prénom", "Ville", "Code Postal", "IBAN", "SWIFT", "Date de naissance", "Adresse"},
		{"a@b.com", "+33669290606", "Soussi", "Islam", "Paris", "75001", "FR7630003000000000000000000", "AGRIFRPP839", "01/09/1976", "2 Avenue"},
	})

	res, err := p.Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}

	rec := res.Records[0]
	if rec.Phone != "0669290606" {
		t.Errorf("Phone = %q, want 0669290606", rec.Phone)
	}
	if rec.LastName != "Soussi" || rec.FirstName != "Islam" {
		t.Errorf("name = %q / %q", rec.LastName, rec.FirstName)
	}
	if rec.Email != "a@b.com" || rec.Address != "2 Avenue" {
		t.Errorf("contact = %q / %q", rec.Email, rec.Address)
	}
	if rec.City != "Paris" || rec.PostalCode != "75001" {
		t.Errorf("city = %q (%q)", rec.City, rec.PostalCode)
	}
	if rec.BankCode != "30003" {
		t.Errorf("BankCode = %q, want 30003", rec.BankCode)
	}
	if res.Identified != 1 {
		t.Errorf("Identified = %d, want 1", res.Identified)
	}
}

func TestSheetParserCombinedNameColumn(t *testing.T) {
	p := &SheetParser{Table: bank.NewRoutingTable()}

	data := buildWorkbook(t, [][]interface{}{
		{"Telephone", "Nom", "IBAN"},
		{"0669290606", "Soussi Islam", "FR7630003000000000000000000"},
	})

	res, err := p.Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := res.Records[0]
	if rec.LastName != "Soussi" || rec.FirstName != "Islam" {
		t.Errorf("name = %q / %q, want split on first space", rec.LastName, rec.FirstName)
	}
}

func TestSheetParserSkipsEmptyAndBadRows(t *testing.T) {
	p := &SheetParser{Table: bank.NewRoutingTable()}

	data := buildWorkbook(t, [][]interface{}{
		{"Telephone", "Nom"},
		{"", ""},
		{"not-a-phone", "Broken Row"},
		{"0669290606", "Valide Ligne"},
	})

	res, err := p.Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1 (all-empty rows are not counted)", res.Skipped)
	}
	if res.Records[0].Phone != "0669290606" {
		t.Errorf("Phone = %q", res.Records[0].Phone)
	}
}

func TestSheetParserShortRows(t *testing.T) {
	p := &SheetParser{Table: bank.NewRoutingTable()}

	// The IBAN column is mapped but absent from the data row; it must
	// read as empty instead of failing.
	data := buildWorkbook(t, [][]interface{}{
		{"Telephone", "Nom", "IBAN"},
		{"0669290606", "Soussi"},
	})

	res, err := p.Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := res.Records[0]
	if rec.IBAN != "" || rec.BankName != bank.NameNone {
		t.Errorf("IBAN = %q, BankName = %q; want empty / N/A", rec.IBAN, rec.BankName)
	}
}

func TestSheetParserEmptyWorkbook(t *testing.T) {
	p := &SheetParser{Table: bank.NewRoutingTable()}

	data := buildWorkbook(t, nil)
	res, err := p.Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Records) != 0 {
		t.Errorf("expected no records, got %d", len(res.Records))
	}
}

func TestSheetParserCorruptContainer(t *testing.T) {
	p := &SheetParser{Table: bank.NewRoutingTable()}

	if _, err := p.Parse([]byte("this is not a zip archive")); err == nil {
		t.Error("expected error for corrupt workbook")
	}
}

func TestMapColumns(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		col    string
		want   int
	}{
		{"accented phone header", []string{"Téléphone"}, colPhone, 0},
		{"english phone header", []string{"Phone number"}, colPhone, 0},
		{"nom does not claim prenom", []string{"Prénom", "Nom"}, colLastName, 1},
		{"postal needs both keywords", []string{"Code Postal"}, colPostalCode, 0},
		{"bic maps to swift", []string{"BIC"}, colSWIFT, 0},
		{"last duplicate wins", []string{"Tel", "Téléphone"}, colPhone, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			columns := mapColumns(tt.header)
			got, ok := columns[tt.col]
			if !ok {
				t.Fatalf("column %s not mapped from %v", tt.col, tt.header)
			}
			if got != tt.want {
				t.Errorf("column %s = index %d, want %d", tt.col, got, tt.want)
			}
		})
	}

	if columns := mapColumns([]string{"Mystery", ""}); len(columns) != 0 {
		t.Errorf("unmatched headers must be ignored, got %v", columns)
	}
}
