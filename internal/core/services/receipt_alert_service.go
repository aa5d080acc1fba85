package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/freelancer_books/internal/apperrors"
	"github.com/SscSPs/freelancer_books/internal/core/domain"
	portsrepo "github.com/SscSPs/freelancer_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/freelancer_books/internal/core/ports/services"
	"github.com/SscSPs/freelancer_books/internal/platform/metrics"
	"github.com/google/uuid"
)

// Evaluation outcomes recorded in metrics.
const (
	outcomeCreated = "created"
	outcomeUpdated = "updated"
	outcomeRemoved = "removed"
	outcomeClean   = "clean"
)

// receiptAlertService implements the ReceiptAlertSvcFacade interface
type receiptAlertService struct {
	BaseService
	recordRepo portsrepo.FinancialRecordReader
	alertRepo  portsrepo.ReceiptAlertRepositoryFacade
	newID      func() string
	metrics    *metrics.Metrics
}

// ReceiptAlertServiceOption is a functional option for configuring the receipt alert service
type ReceiptAlertServiceOption func(*receiptAlertService)

// WithReceiptAlertClock overrides the clock used for ages and timestamps
func WithReceiptAlertClock(clock Clock) ReceiptAlertServiceOption {
	return func(s *receiptAlertService) {
		s.now = clock
	}
}

// WithAlertIDGenerator overrides how new alert IDs are generated
func WithAlertIDGenerator(gen func() string) ReceiptAlertServiceOption {
	return func(s *receiptAlertService) {
		s.newID = gen
	}
}

// WithReceiptAlertMetrics adds metrics recording
func WithReceiptAlertMetrics(m *metrics.Metrics) ReceiptAlertServiceOption {
	return func(s *receiptAlertService) {
		s.metrics = m
	}
}

// NewReceiptAlertService creates a new missing-receipt service with the provided options
func NewReceiptAlertService(recordRepo portsrepo.FinancialRecordReader, alertRepo portsrepo.ReceiptAlertRepositoryFacade, options ...ReceiptAlertServiceOption) portssvc.ReceiptAlertSvcFacade {
	svc := &receiptAlertService{
		recordRepo: recordRepo,
		alertRepo:  alertRepo,
		newID:      uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReceiptAlertSvcFacade = (*receiptAlertService)(nil)

func (s *receiptAlertService) CheckExpense(ctx context.Context, expenseID string) (*domain.MissingReceiptAlert, error) {
	expense, err := s.recordRepo.FindRecordByID(ctx, domain.VariantExpense, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load expense for receipt check", slog.String("expense_id", expenseID))
		}
		return nil, err
	}

	if !expense.NeedsReceipt() {
		removed, err := s.alertRepo.DeleteAlertByExpenseID(ctx, expenseID)
		if err != nil {
			s.LogError(ctx, err, "Failed to remove stale receipt alert", slog.String("expense_id", expenseID))
			return nil, fmt.Errorf("failed to remove receipt alert: %w", err)
		}
		if removed {
			s.metrics.IncrementEvaluation(outcomeRemoved)
		} else {
			s.metrics.IncrementEvaluation(outcomeClean)
		}
		return nil, nil
	}

	alert, outcome, err := s.upsertFor(ctx, *expense)
	if err != nil {
		return nil, err
	}
	if outcome == domain.AlertCreated {
		s.metrics.IncrementEvaluation(outcomeCreated)
	} else {
		s.metrics.IncrementEvaluation(outcomeUpdated)
	}
	return alert, nil
}

// upsertFor recomputes the alert from the expense alone and writes it in one statement.
func (s *receiptAlertService) upsertFor(ctx context.Context, expense domain.FinancialRecord) (*domain.MissingReceiptAlert, domain.UpsertOutcome, error) {
	now := s.Now()
	age := ExpenseAgeDays(expense.Date, now)

	alert := domain.MissingReceiptAlert{
		AlertID:   s.newID(),
		ExpenseID: expense.ID,
		CreatedAt: now,
		UpdatedAt: now,
		Severity:  ClassifySeverity(expense.Amount, age),
		Reason:    MissingReceiptReason(expense.Amount, expense.Partner, age),
	}

	outcome, err := s.alertRepo.UpsertAlert(ctx, alert)
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert receipt alert", slog.String("expense_id", expense.ID))
		return nil, 0, fmt.Errorf("failed to upsert receipt alert: %w", err)
	}

	stored, err := s.alertRepo.FindAlertByExpenseID(ctx, expense.ID)
	if err != nil {
		return nil, 0, err
	}

	s.LogDebug(ctx, "Receipt alert evaluated",
		slog.String("expense_id", expense.ID),
		slog.String("severity", string(stored.Severity)),
		slog.Int("age_days", age))
	return stored, outcome, nil
}

func (s *receiptAlertService) RemoveAlertForExpense(ctx context.Context, expenseID string) error {
	removed, err := s.alertRepo.DeleteAlertByExpenseID(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to remove receipt alert", slog.String("expense_id", expenseID))
		return fmt.Errorf("failed to remove receipt alert: %w", err)
	}
	if removed {
		s.metrics.IncrementEvaluation(outcomeRemoved)
		s.LogInfo(ctx, "Receipt alert removed", slog.String("expense_id", expenseID))
	}
	return nil
}

func (s *receiptAlertService) DailyScan(ctx context.Context) (*domain.ScanSummary, error) {
	summary := &domain.ScanSummary{StartedAt: s.Now()}

	expenses, err := s.recordRepo.ListExpensesMissingReceipt(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses for receipt scan")
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	for _, expense := range expenses {
		if !expense.NeedsReceipt() {
			continue
		}
		alert, outcome, err := s.upsertFor(ctx, expense)
		if err != nil {
			return nil, err
		}
		summary.Evaluated++
		if outcome == domain.AlertCreated {
			summary.Created++
		} else {
			summary.Updated++
		}
		if !alert.IsDismissed {
			summary.BySeverity.Add(alert.Severity, 1)
		}
	}

	purged, err := s.alertRepo.PurgeIneligibleAlerts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to purge ineligible receipt alerts")
		return nil, fmt.Errorf("failed to purge receipt alerts: %w", err)
	}
	summary.Purged = purged
	summary.FinishedAt = s.Now()

	s.metrics.ObserveScan(summary.FinishedAt.Sub(summary.StartedAt))
	s.metrics.SetActiveAlerts(summary.BySeverity)
	s.LogInfo(ctx, "Daily receipt scan finished",
		slog.Int("evaluated", summary.Evaluated),
		slog.Int("created", summary.Created),
		slog.Int("updated", summary.Updated),
		slog.Int("purged", summary.Purged),
		slog.Int("high", summary.BySeverity.High))
	return summary, nil
}

func (s *receiptAlertService) ActiveAlerts(ctx context.Context) ([]domain.ActiveAlert, error) {
	alerts, err := s.alertRepo.ListActiveAlerts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active receipt alerts")
		return nil, fmt.Errorf("failed to list active alerts: %w", err)
	}

	now := s.Now()
	for i := range alerts {
		alerts[i].DaysOutstanding = ExpenseAgeDays(alerts[i].ExpenseDate, now)
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.DaysOutstanding != b.DaysOutstanding {
			return a.DaysOutstanding > b.DaysOutstanding
		}
		return a.ExpenseID < b.ExpenseID
	})

	if alerts == nil {
		return []domain.ActiveAlert{}, nil
	}
	return alerts, nil
}

func (s *receiptAlertService) AlertStats(ctx context.Context) (*domain.AlertStats, error) {
	counts, err := s.alertRepo.CountActiveAlertsBySeverity(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count receipt alerts")
		return nil, fmt.Errorf("failed to count active alerts: %w", err)
	}

	stats := &domain.AlertStats{}
	for _, sev := range domain.AllSeverities {
		stats.Add(sev, counts[sev])
	}
	s.metrics.SetActiveAlerts(*stats)
	return stats, nil
}

func (s *receiptAlertService) DismissAlert(ctx context.Context, alertID, userID string) (*domain.MissingReceiptAlert, error) {
	now := s.Now()
	var actor *string
	if userID != "" {
		actor = &userID
	}
	if err := s.alertRepo.SetAlertDismissal(ctx, alertID, &now, actor); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to dismiss receipt alert", slog.String("alert_id", alertID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Receipt alert dismissed", slog.String("alert_id", alertID), slog.String("user_id", userID))
	return s.alertRepo.FindAlertByID(ctx, alertID)
}

func (s *receiptAlertService) RestoreAlert(ctx context.Context, alertID string) (*domain.MissingReceiptAlert, error) {
	if err := s.alertRepo.SetAlertDismissal(ctx, alertID, nil, nil); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to restore receipt alert", slog.String("alert_id", alertID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Receipt alert restored", slog.String("alert_id", alertID))
	return s.alertRepo.FindAlertByID(ctx, alertID)
}
