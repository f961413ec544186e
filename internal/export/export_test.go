package export

import (
	"strings"
	"testing"

	"github.com/insightdelivered/client-registry/internal/bank"
	"github.com/insightdelivered/client-registry/internal/parser"
	"github.com/insightdelivered/client-registry/internal/store"
)

func seededGenerator(t *testing.T) *Generator {
	t.Helper()
	table := bank.NewRoutingTable()
	s := store.New()

	p := &parser.PipeParser{Table: table}
	res, err := p.Parse([]byte(strings.Join([]string{
		"0669290606|Islam Soussi|01/09/1976|a@b.com|2 Avenue|Paris (75001)|FR7630003000000000000000000|AGRIFRPP839",
		"0612345678|Dupont Marie|02/03/1985|d@e.fr|1 Rue|Lyon (69001)|FR7630004000000000000000000|BNPAFRPP",
		"0698765432|Martin Luc|04/05/1990|m@l.fr|3 Bd|Paris (75002)|FR7630003000000000000000001|SOGEFRPP",
	}, "\n")))
	if err != nil {
		t.Fatalf("seeding: %v", err)
	}
	s.ReplaceAll(res.Records)
	return &Generator{Store: s, Table: table}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"txt", FormatText, false},
		{"CSV", FormatCSV, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.input, got, err)
		}
	}
}

func TestAllClientsText(t *testing.T) {
	g := seededGenerator(t)

	file, err := g.AllClients(FormatText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.MIMEType != "text/plain" {
		t.Errorf("MIMEType = %q", file.MIMEType)
	}
	if !strings.HasPrefix(file.Filename, "all_clients_") || !strings.HasSuffix(file.Filename, ".txt") {
		t.Errorf("Filename = %q", file.Filename)
	}

	lines := strings.Split(string(file.Content), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "0669290606|Islam Soussi|01/09/1976|a@b.com|2 Avenue|Paris (75001)|FR7630003000000000000000000|AGRIFRPP839" {
		t.Errorf("line 0 = %q", lines[0])
	}
}

// Re-ingesting the text export reconstructs phone, name and account
// identifier fields. Status and call metrics are not round-tripped:
// the text schema has no columns for them.
func TestTextExportRoundTrip(t *testing.T) {
	g := seededGenerator(t)
	before := g.Store.All()

	file, err := g.AllClients(FormatText)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	p := &parser.PipeParser{Table: bank.NewRoutingTable()}
	res, err := p.Parse(file.Content)
	if err != nil {
		t.Fatalf("re-ingest: %v", err)
	}
	if len(res.Records) != len(before) {
		t.Fatalf("re-ingested %d records, want %d", len(res.Records), len(before))
	}

	for i, rec := range res.Records {
		orig := before[i]
		if rec.Phone != orig.Phone {
			t.Errorf("[%d] Phone = %q, want %q", i, rec.Phone, orig.Phone)
		}
		if rec.LastName != orig.LastName || rec.FirstName != orig.FirstName {
			t.Errorf("[%d] name = %q/%q, want %q/%q", i, rec.LastName, rec.FirstName, orig.LastName, orig.FirstName)
		}
		if rec.IBAN != orig.IBAN {
			t.Errorf("[%d] IBAN = %q, want %q", i, rec.IBAN, orig.IBAN)
		}
		if rec.City != orig.City || rec.PostalCode != orig.PostalCode {
			t.Errorf("[%d] city = %q (%q), want %q (%q)", i, rec.City, rec.PostalCode, orig.City, orig.PostalCode)
		}
	}
}

func TestAllClientsCSV(t *testing.T) {
	g := seededGenerator(t)

	file, err := g.AllClients(FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.MIMEType != "text/csv" {
		t.Errorf("MIMEType = %q", file.MIMEType)
	}

	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "Telephone;Nom;Prenom;Date_Naissance;Email;Adresse;Ville;Code_Postal;IBAN;SWIFT;Banque" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Société Générale") {
		t.Errorf("row 1 missing bank column: %q", lines[1])
	}
}

func TestBankClients(t *testing.T) {
	g := seededGenerator(t)

	file, err := g.BankClients("30003", FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.Filename != "clients_Société_Générale_30003.csv" {
		t.Errorf("Filename = %q", file.Filename)
	}

	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	// Two of the three seeded clients are at 30003.
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	// The per-bank export has no bank column: the selection implies it.
	if strings.HasSuffix(lines[0], ";Banque") {
		t.Errorf("per-bank header must not carry the bank column: %q", lines[0])
	}
	for _, line := range lines[1:] {
		if strings.Contains(line, "0612345678") {
			t.Errorf("record from another bank leaked into the export: %q", line)
		}
	}
}

func TestBankClientsEmptyGroup(t *testing.T) {
	g := seededGenerator(t)

	if _, err := g.BankClients("99999", FormatText); err != ErrEmptyGroup {
		t.Errorf("err = %v, want ErrEmptyGroup", err)
	}
}

func TestExportDeterminism(t *testing.T) {
	g := seededGenerator(t)

	first, err := g.AllClients(FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := g.AllClients(FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first.Content) != string(second.Content) {
		t.Error("export content changed between identical calls")
	}
}

func TestPipeContentEmptyStore(t *testing.T) {
	g := &Generator{Store: store.New(), Table: bank.NewRoutingTable()}

	file, err := g.AllClients(FormatText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(file.Content) != 0 {
		t.Errorf("empty store produced content: %q", file.Content)
	}
}
