package services

import (
	"context"
	"time"

	"github.com/SscSPs/freelancer_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DuplicateFinderSvc defines read-only duplicate detection
type DuplicateFinderSvc interface {
	// FindDuplicates ranks same-variant records that may duplicate a record with the given
	// amount, date and partner. excludeID is the anchor record and never appears in the result.
	FindDuplicates(ctx context.Context, variant domain.RecordVariant, amount decimal.Decimal, date time.Time, partner string, excludeID string) ([]domain.DuplicateCandidate, error)

	// CheckRecord loads a stored record and runs FindDuplicates with its own fields.
	CheckRecord(ctx context.Context, variant domain.RecordVariant, recordID string) ([]domain.DuplicateCandidate, error)

	// ListMarkedDuplicates lists flagged records, optionally restricted to one variant.
	ListMarkedDuplicates(ctx context.Context, variant *domain.RecordVariant) ([]domain.FinancialRecord, error)
}

// DuplicateMarkerSvc defines the human confirmation writes
type DuplicateMarkerSvc interface {
	// MarkAsDuplicate flags recordID as a duplicate of originalID.
	MarkAsDuplicate(ctx context.Context, variant domain.RecordVariant, recordID, originalID, userID string) (*domain.FinancialRecord, error)

	// UnmarkAsDuplicate clears the duplicate flag and link.
	UnmarkAsDuplicate(ctx context.Context, variant domain.RecordVariant, recordID, userID string) (*domain.FinancialRecord, error)
}

// DuplicateSvcFacade combines all duplicate-related service interfaces
type DuplicateSvcFacade interface {
	DuplicateFinderSvc
	DuplicateMarkerSvc
}
