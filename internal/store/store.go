// Package store holds the in-memory client dataset: a primary map keyed
// by canonical phone number plus a grouping index keyed by sort-code
// prefix. Contents are replaced wholesale by each ingestion batch and do
// not survive a restart.
package store

import (
	"sync"
	"time"

	"github.com/insightdelivered/client-registry/internal/bank"
	"github.com/insightdelivered/client-registry/internal/models"
	"github.com/insightdelivered/client-registry/internal/phone"
)

// Stats is the aggregate view read by the statistics boundary.
type Stats struct {
	TotalClients int        `json:"totalClients"`
	Identified   int        `json:"identified"`
	BankGroups   int        `json:"bankGroups"`
	LastUpload   *time.Time `json:"lastUpload,omitempty"`
	Filename     string     `json:"filename,omitempty"`
}

// Group is one sort-code prefix bucket of the grouping index.
type Group struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// ClientStore is the process-wide dataset. A single lock serializes
// ingestion, lookup mutation and reads; a half-rebuilt index is never
// observable.
type ClientStore struct {
	mu        sync.RWMutex
	byPhone   map[string]*models.ClientRecord
	order     []string // canonical phones, primary insertion order
	byBank    map[string][]string
	bankOrder []string // prefixes, first-seen order

	lastUpload time.Time
	filename   string
	identified int
}

// New returns an empty store.
func New() *ClientStore {
	return &ClientStore{
		byPhone: make(map[string]*models.ClientRecord),
		byBank:  make(map[string][]string),
	}
}

// ReplaceAll swaps the entire dataset for the given records and rebuilds
// the grouping index. Later duplicates of the same phone overwrite
// earlier ones while keeping the earlier position. Returns the final
// record count.
func (s *ClientStore) ReplaceAll(records []models.ClientRecord) int {
	byPhone := make(map[string]*models.ClientRecord, len(records))
	order := make([]string, 0, len(records))

	for i := range records {
		rec := records[i]
		if _, seen := byPhone[rec.Phone]; !seen {
			order = append(order, rec.Phone)
		}
		byPhone[rec.Phone] = &rec
	}

	byBank := make(map[string][]string)
	var bankOrder []string
	for _, p := range order {
		code := byPhone[p].BankCode
		if _, seen := byBank[code]; !seen {
			bankOrder = append(bankOrder, code)
		}
		byBank[code] = append(byBank[code], p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byPhone = byPhone
	s.order = order
	s.byBank = byBank
	s.bankOrder = bankOrder
	return len(order)
}

// NoteUpload records metadata about the last successful ingestion.
func (s *ClientStore) NoteUpload(filename string, identified int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filename = filename
	s.identified = identified
	s.lastUpload = time.Now()
}

// Get looks up a raw phone string after normalization. On a hit it
// increments the record's call count, stamps the call time and returns a
// copy of the updated record. On a miss it returns a NotOnFile
// placeholder and leaves the store unchanged. Get never fails.
func (s *ClientStore) Get(rawPhone string) models.ClientRecord {
	if canonical, ok := phone.Normalize(rawPhone); ok {
		s.mu.Lock()
		if rec, found := s.byPhone[canonical]; found {
			rec.CallCount++
			now := time.Now()
			rec.LastCall = &now
			out := *rec
			s.mu.Unlock()
			return out
		}
		s.mu.Unlock()
	}
	return Placeholder(rawPhone)
}

// Peek returns a copy of the record for a canonical phone without
// touching call metrics.
func (s *ClientStore) Peek(canonical string) (models.ClientRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byPhone[canonical]
	if !ok {
		return models.ClientRecord{}, false
	}
	return *rec, true
}

// ByBank returns the phones filed under a sort-code prefix, in insertion
// order. Absent prefixes yield an empty slice.
func (s *ClientStore) ByBank(code string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	phones := s.byBank[code]
	out := make([]string, len(phones))
	copy(out, phones)
	return out
}

// All returns copies of every record in primary insertion order.
func (s *ClientStore) All() []models.ClientRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ClientRecord, 0, len(s.order))
	for _, p := range s.order {
		out = append(out, *s.byPhone[p])
	}
	return out
}

// Records returns copies of the records for the given canonical phones,
// skipping any that are not on file.
func (s *ClientStore) Records(phones []string) []models.ClientRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ClientRecord, 0, len(phones))
	for _, p := range phones {
		if rec, ok := s.byPhone[p]; ok {
			out = append(out, *rec)
		}
	}
	return out
}

// Groups returns the grouping index buckets in first-seen order.
func (s *ClientStore) Groups() []Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Group, 0, len(s.bankOrder))
	for _, code := range s.bankOrder {
		out = append(out, Group{Code: code, Count: len(s.byBank[code])})
	}
	return out
}

// Stats returns the aggregate counters without mutating state.
func (s *ClientStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{
		TotalClients: len(s.order),
		Identified:   s.identified,
		BankGroups:   len(s.byBank),
		Filename:     s.filename,
	}
	if !s.lastUpload.IsZero() {
		t := s.lastUpload
		st.LastUpload = &t
	}
	return st
}

// Clear resets the store to empty and returns the prior record count.
func (s *ClientStore) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	prior := len(s.order)
	s.byPhone = make(map[string]*models.ClientRecord)
	s.order = nil
	s.byBank = make(map[string][]string)
	s.bankOrder = nil
	s.filename = ""
	s.identified = 0
	s.lastUpload = time.Time{}
	return prior
}

// Placeholder synthesizes the NotOnFile record returned on lookup miss.
// It is never persisted.
func Placeholder(rawPhone string) models.ClientRecord {
	return models.ClientRecord{
		Phone:      rawPhone,
		LastName:   "UNKNOWN",
		FirstName:  "CLIENT",
		BirthDate:  "N/A",
		Email:      "N/A",
		Address:    "N/A",
		City:       "N/A",
		PostalCode: "N/A",
		IBAN:       "N/A",
		SWIFT:      "N/A",
		BankName:   bank.NameNone,
		BankCode:   bank.UnknownCode,
		Status:     models.StatusNotOnFile,
	}
}
