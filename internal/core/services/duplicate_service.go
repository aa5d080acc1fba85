package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/freelancer_books/internal/apperrors"
	"github.com/SscSPs/freelancer_books/internal/core/domain"
	portsrepo "github.com/SscSPs/freelancer_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/freelancer_books/internal/core/ports/services"
	"github.com/SscSPs/freelancer_books/internal/core/similarity"
	"github.com/SscSPs/freelancer_books/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

// duplicateService implements the DuplicateSvcFacade interface
type duplicateService struct {
	BaseService
	recordRepo portsrepo.FinancialRecordRepositoryFacade
	metrics    *metrics.Metrics
}

// DuplicateServiceOption is a functional option for configuring the duplicate service
type DuplicateServiceOption func(*duplicateService)

// WithDuplicateMetrics adds metrics recording
func WithDuplicateMetrics(m *metrics.Metrics) DuplicateServiceOption {
	return func(s *duplicateService) {
		s.metrics = m
	}
}

// WithDuplicateClock overrides the clock used for audit timestamps
func WithDuplicateClock(clock Clock) DuplicateServiceOption {
	return func(s *duplicateService) {
		s.now = clock
	}
}

// NewDuplicateService creates a new duplicate service with the provided options
func NewDuplicateService(repo portsrepo.FinancialRecordRepositoryFacade, options ...DuplicateServiceOption) portssvc.DuplicateSvcFacade {
	svc := &duplicateService{recordRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DuplicateSvcFacade = (*duplicateService)(nil)

func (s *duplicateService) FindDuplicates(ctx context.Context, variant domain.RecordVariant, amount decimal.Decimal, date time.Time, partner string, excludeID string) ([]domain.DuplicateCandidate, error) {
	if !variant.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown record variant %q", variant))
	}

	day := domain.CalendarDay(date)
	from := day.AddDate(0, 0, -similarity.MaxDayDistance)
	to := day.AddDate(0, 0, similarity.MaxDayDistance+1).Add(-time.Nanosecond)

	records, err := s.recordRepo.FindDuplicateCandidates(ctx, variant, amount, from, to, excludeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load duplicate candidates",
			slog.String("variant", string(variant)),
			slog.String("exclude_id", excludeID))
		return nil, fmt.Errorf("failed to load duplicate candidates: %w", err)
	}

	candidates := make([]domain.DuplicateCandidate, 0, len(records))
	for _, rec := range records {
		// The store filters too; re-checking keeps the result honest for any backend.
		if rec.ID == excludeID || !rec.Countable() || rec.Variant != variant || !rec.Amount.Equal(amount) {
			continue
		}
		res, ok := similarity.Compare(date, partner, rec.Date, rec.Partner)
		if !ok {
			continue
		}
		candidates = append(candidates, domain.DuplicateCandidate{
			Record:            rec,
			SimilarityScore:   res.Score,
			DateSimilarity:    res.DateSimilarity,
			PartnerSimilarity: res.PartnerSimilarity,
			MatchedFields:     res.MatchedFields,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].SimilarityScore != candidates[j].SimilarityScore {
			return candidates[i].SimilarityScore > candidates[j].SimilarityScore
		}
		return candidates[i].Record.ID < candidates[j].Record.ID
	})

	s.metrics.ObserveCandidates(variant, len(candidates))
	s.LogDebug(ctx, "Duplicate lookup finished",
		slog.String("variant", string(variant)),
		slog.String("exclude_id", excludeID),
		slog.Int("candidates", len(candidates)))
	return candidates, nil
}

func (s *duplicateService) CheckRecord(ctx context.Context, variant domain.RecordVariant, recordID string) ([]domain.DuplicateCandidate, error) {
	record, err := s.recordRepo.FindRecordByID(ctx, variant, recordID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load record for duplicate check", slog.String("record_id", recordID))
		}
		return nil, err
	}
	if record.IsDeleted {
		return []domain.DuplicateCandidate{}, nil
	}
	return s.FindDuplicates(ctx, variant, record.Amount, record.Date, record.Partner, record.ID)
}

func (s *duplicateService) ListMarkedDuplicates(ctx context.Context, variant *domain.RecordVariant) ([]domain.FinancialRecord, error) {
	if variant != nil && !variant.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown record variant %q", *variant))
	}
	records, err := s.recordRepo.ListMarkedDuplicates(ctx, variant)
	if err != nil {
		s.LogError(ctx, err, "Failed to list marked duplicates")
		return nil, fmt.Errorf("failed to list marked duplicates: %w", err)
	}
	if records == nil {
		return []domain.FinancialRecord{}, nil
	}
	return records, nil
}

func (s *duplicateService) MarkAsDuplicate(ctx context.Context, variant domain.RecordVariant, recordID, originalID, userID string) (*domain.FinancialRecord, error) {
	if recordID == originalID {
		return nil, apperrors.NewValidationError("a record cannot be a duplicate of itself")
	}

	if _, err := s.recordRepo.FindRecordByID(ctx, variant, recordID); err != nil {
		return nil, err
	}

	original, err := s.recordRepo.FindRecordByID(ctx, variant, originalID)
	if err != nil {
		return nil, err
	}
	switch {
	case original.IsDuplicate:
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s %s is itself marked as a duplicate", variant, originalID))
	case original.IsDeleted:
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s %s is deleted", variant, originalID))
	}

	if err := s.recordRepo.SetDuplicateLink(ctx, variant, recordID, &originalID, userID, s.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to mark record as duplicate",
				slog.String("record_id", recordID),
				slog.String("original_id", originalID))
		}
		return nil, err
	}

	s.metrics.IncrementMark(variant, "mark")
	s.LogInfo(ctx, "Record marked as duplicate",
		slog.String("variant", string(variant)),
		slog.String("record_id", recordID),
		slog.String("original_id", originalID),
		slog.String("user_id", userID))
	return s.recordRepo.FindRecordByID(ctx, variant, recordID)
}

func (s *duplicateService) UnmarkAsDuplicate(ctx context.Context, variant domain.RecordVariant, recordID, userID string) (*domain.FinancialRecord, error) {
	if err := s.recordRepo.SetDuplicateLink(ctx, variant, recordID, nil, userID, s.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to unmark duplicate", slog.String("record_id", recordID))
		}
		return nil, err
	}

	s.metrics.IncrementMark(variant, "unmark")
	s.LogInfo(ctx, "Duplicate flag cleared",
		slog.String("variant", string(variant)),
		slog.String("record_id", recordID),
		slog.String("user_id", userID))
	return s.recordRepo.FindRecordByID(ctx, variant, recordID)
}
