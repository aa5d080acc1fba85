package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/freelancer_books/internal/core/domain"
)

// ReceiptAlertReader defines read operations for missing-receipt alerts
type ReceiptAlertReader interface {
	// FindAlertByID retrieves an alert by its ID.
	FindAlertByID(ctx context.Context, alertID string) (*domain.MissingReceiptAlert, error)

	// FindAlertByExpenseID retrieves the alert owned by an expense.
	FindAlertByExpenseID(ctx context.Context, expenseID string) (*domain.MissingReceiptAlert, error)

	// ListActiveAlerts returns non-dismissed alerts of non-deleted expenses joined with the
	// expense amount, vendor and date. DaysOutstanding is left for the caller to fill.
	ListActiveAlerts(ctx context.Context) ([]domain.ActiveAlert, error)

	// CountActiveAlertsBySeverity counts non-dismissed alerts of non-deleted expenses.
	CountActiveAlertsBySeverity(ctx context.Context) (map[domain.Severity]int, error)
}

// ReceiptAlertWriter defines write operations for missing-receipt alerts
type ReceiptAlertWriter interface {
	// UpsertAlert inserts the alert or, when the expense already has one, updates its
	// severity, reason and updated_at in place. Dismissal state is never touched.
	UpsertAlert(ctx context.Context, alert domain.MissingReceiptAlert) (domain.UpsertOutcome, error)

	// DeleteAlertByExpenseID removes the expense's alert and reports whether one existed.
	DeleteAlertByExpenseID(ctx context.Context, expenseID string) (bool, error)

	// SetAlertDismissal dismisses (dismissedAt != nil) or restores (nil) an alert.
	SetAlertDismissal(ctx context.Context, alertID string, dismissedAt *time.Time, dismissedBy *string) error

	// PurgeIneligibleAlerts deletes alerts whose expense is deleted, duplicate or has a receipt.
	PurgeIneligibleAlerts(ctx context.Context) (int, error)
}

// ReceiptAlertRepositoryFacade combines all alert-related repository interfaces
type ReceiptAlertRepositoryFacade interface {
	ReceiptAlertReader
	ReceiptAlertWriter
}
