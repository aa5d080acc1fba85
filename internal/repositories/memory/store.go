// Package memory is an in-process record and alert store. It is safe for concurrent use and
// loses its data on restart; it backs local development and the engine's end-to-end tests.
package memory

import (
	"fmt"
	"sync"

	"github.com/SscSPs/freelancer_books/internal/core/domain"
	portsrepo "github.com/SscSPs/freelancer_books/internal/core/ports/repositories"
)

// Store holds expenses, incomes and missing-receipt alerts behind one lock, so every
// repository call is atomic like a single SQL statement.
type Store struct {
	mu      sync.RWMutex
	records map[domain.RecordVariant]map[string]*domain.FinancialRecord
	alerts  map[string]*domain.MissingReceiptAlert // keyed by expense id
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{
		records: make(map[domain.RecordVariant]map[string]*domain.FinancialRecord, len(domain.AllVariants)),
		alerts:  make(map[string]*domain.MissingReceiptAlert),
	}
	for _, v := range domain.AllVariants {
		s.records[v] = make(map[string]*domain.FinancialRecord)
	}
	return s
}

// NewRepositoryProvider wires both repositories onto one store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RecordRepo: &RecordRepository{store: store},
		AlertRepo:  &AlertRepository{store: store},
	}
}

// PutRecord inserts or replaces a record. It plays the part of the bookkeeping CRUD layer,
// which owns the business fields.
func (s *Store) PutRecord(rec domain.FinancialRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("record ID is required")
	}
	if !rec.Variant.IsValid() {
		return fmt.Errorf("unknown record variant %q", rec.Variant)
	}
	if err := rec.ValidateDuplicateLink(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.Variant][rec.ID] = copyRecord(&rec)
	return nil
}

// DeleteRecord hard-deletes a record; an expense's alert goes with it (ON DELETE CASCADE).
func (s *Store) DeleteRecord(variant domain.RecordVariant, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records[variant], id)
	if variant == domain.VariantExpense {
		delete(s.alerts, id)
	}
}

// AlertCount returns the number of stored alert rows, dismissed ones included.
func (s *Store) AlertCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.alerts)
}

func copyRecord(r *domain.FinancialRecord) *domain.FinancialRecord {
	c := *r
	if r.ReceiptPath != nil {
		p := *r.ReceiptPath
		c.ReceiptPath = &p
	}
	if r.DuplicateOfID != nil {
		id := *r.DuplicateOfID
		c.DuplicateOfID = &id
	}
	return &c
}

func copyAlert(a *domain.MissingReceiptAlert) *domain.MissingReceiptAlert {
	c := *a
	if a.DismissedAt != nil {
		t := *a.DismissedAt
		c.DismissedAt = &t
	}
	if a.DismissedBy != nil {
		by := *a.DismissedBy
		c.DismissedBy = &by
	}
	return &c
}
