package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/freelancer_books/internal/apperrors"
	"github.com/SscSPs/freelancer_books/internal/core/domain"
	portsrepo "github.com/SscSPs/freelancer_books/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// RecordRepository implements FinancialRecordRepositoryFacade over a Store.
type RecordRepository struct {
	store *Store
}

var _ portsrepo.FinancialRecordRepositoryFacade = (*RecordRepository)(nil)

func (r *RecordRepository) table(variant domain.RecordVariant) (map[string]*domain.FinancialRecord, error) {
	t, ok := r.store.records[variant]
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown record variant %q", variant))
	}
	return t, nil
}

func (r *RecordRepository) FindRecordByID(ctx context.Context, variant domain.RecordVariant, recordID string) (*domain.FinancialRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, err := r.table(variant)
	if err != nil {
		return nil, err
	}
	rec, ok := t[recordID]
	if !ok {
		return nil, apperrors.NewNotFoundError(string(variant), recordID)
	}
	return copyRecord(rec), nil
}

func (r *RecordRepository) FindDuplicateCandidates(ctx context.Context, variant domain.RecordVariant, amount decimal.Decimal, from, to time.Time, excludeID string) ([]domain.FinancialRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, err := r.table(variant)
	if err != nil {
		return nil, err
	}

	first, last := domain.CalendarDay(from), domain.CalendarDay(to)
	out := []domain.FinancialRecord{}
	for _, rec := range t {
		day := domain.CalendarDay(rec.Date)
		if rec.ID == excludeID || !rec.Countable() || !rec.Amount.Equal(amount) || day.Before(first) || day.After(last) {
			continue
		}
		out = append(out, *copyRecord(rec))
	}
	sortByDateAsc(out)
	return out, nil
}

func (r *RecordRepository) ListMarkedDuplicates(ctx context.Context, variant *domain.RecordVariant) ([]domain.FinancialRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	variants := domain.AllVariants
	if variant != nil {
		variants = []domain.RecordVariant{*variant}
	}

	out := []domain.FinancialRecord{}
	for _, v := range variants {
		t, err := r.table(v)
		if err != nil {
			return nil, err
		}
		for _, rec := range t {
			if rec.IsDuplicate && !rec.IsDeleted {
				out = append(out, *copyRecord(rec))
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *RecordRepository) ListExpensesMissingReceipt(ctx context.Context) ([]domain.FinancialRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := []domain.FinancialRecord{}
	for _, rec := range r.store.records[domain.VariantExpense] {
		if rec.NeedsReceipt() {
			out = append(out, *copyRecord(rec))
		}
	}
	sortByDateAsc(out)
	return out, nil
}

func (r *RecordRepository) SumCountableAmounts(ctx context.Context, variant domain.RecordVariant, from, to time.Time) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, err := r.table(variant)
	if err != nil {
		return decimal.Zero, err
	}

	first, last := domain.CalendarDay(from), domain.CalendarDay(to)
	inRange := make([]domain.FinancialRecord, 0, len(t))
	for _, rec := range t {
		day := domain.CalendarDay(rec.Date)
		if !day.Before(first) && !day.After(last) {
			inRange = append(inRange, *rec)
		}
	}
	return domain.SumCountable(inRange), nil
}

func (r *RecordRepository) SetDuplicateLink(ctx context.Context, variant domain.RecordVariant, recordID string, originalID *string, updatedBy string, updatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t, err := r.table(variant)
	if err != nil {
		return err
	}
	rec, ok := t[recordID]
	if !ok {
		return apperrors.NewNotFoundError(string(variant), recordID)
	}

	if originalID != nil {
		orig, ok := t[*originalID]
		if !ok {
			return apperrors.NewNotFoundError(string(variant), *originalID)
		}
		switch {
		case *originalID == recordID:
			return fmt.Errorf("%w: invalid duplicate link for %s %s", apperrors.ErrValidation, variant, recordID)
		case orig.IsDuplicate:
			return fmt.Errorf("%w: %s %s is itself a duplicate", apperrors.ErrValidation, variant, *originalID)
		case orig.IsDeleted:
			return fmt.Errorf("%w: %s %s is deleted", apperrors.ErrValidation, variant, *originalID)
		}
		for _, other := range t {
			if !other.IsDeleted && other.DuplicateOfID != nil && *other.DuplicateOfID == recordID {
				return fmt.Errorf("%w: %s %s is the original of other duplicates", apperrors.ErrValidation, variant, recordID)
			}
		}
		id := *originalID
		rec.IsDuplicate, rec.DuplicateOfID = true, &id
	} else {
		rec.IsDuplicate, rec.DuplicateOfID = false, nil
	}
	rec.LastUpdatedAt, rec.LastUpdatedBy = updatedAt, updatedBy
	return nil
}

func sortByDateAsc(rs []domain.FinancialRecord) {
	sort.SliceStable(rs, func(i, j int) bool {
		if !rs[i].Date.Equal(rs[j].Date) {
			return rs[i].Date.Before(rs[j].Date)
		}
		return rs[i].ID < rs[j].ID
	})
}
