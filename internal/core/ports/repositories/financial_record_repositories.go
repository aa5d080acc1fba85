package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/freelancer_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FinancialRecordReader defines read operations for expense and income data
type FinancialRecordReader interface {
	// FindRecordByID retrieves a record of the given variant, including soft-deleted ones.
	FindRecordByID(ctx context.Context, variant domain.RecordVariant, recordID string) (*domain.FinancialRecord, error)

	// FindDuplicateCandidates returns same-variant records with exactly this amount, dated
	// within [from, to], that are neither deleted nor flagged duplicate, excluding excludeID.
	FindDuplicateCandidates(ctx context.Context, variant domain.RecordVariant, amount decimal.Decimal, from, to time.Time, excludeID string) ([]domain.FinancialRecord, error)

	// ListMarkedDuplicates returns non-deleted records flagged as duplicates. A nil variant means both.
	ListMarkedDuplicates(ctx context.Context, variant *domain.RecordVariant) ([]domain.FinancialRecord, error)

	// ListExpensesMissingReceipt returns non-deleted, non-duplicate expenses without a receipt.
	ListExpensesMissingReceipt(ctx context.Context) ([]domain.FinancialRecord, error)

	// SumCountableAmounts totals gross amounts in [from, to] with the filter tax
	// aggregation must apply: is_deleted = false AND is_duplicate = false.
	SumCountableAmounts(ctx context.Context, variant domain.RecordVariant, from, to time.Time) (decimal.Decimal, error)
}

// FinancialRecordWriter defines the only writes the integrity engine makes to records
type FinancialRecordWriter interface {
	// SetDuplicateLink flags the record as a duplicate of originalID, or clears the flag when
	// originalID is nil. Returns a NotFoundError when the record does not exist.
	SetDuplicateLink(ctx context.Context, variant domain.RecordVariant, recordID string, originalID *string, updatedBy string, updatedAt time.Time) error
}

// FinancialRecordRepositoryFacade combines all record-related repository interfaces
type FinancialRecordRepositoryFacade interface {
	FinancialRecordReader
	FinancialRecordWriter
}
