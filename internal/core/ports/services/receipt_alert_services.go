package services

import (
	"context"

	"github.com/SscSPs/freelancer_books/internal/core/domain"
)

// ReceiptEvaluatorSvc defines the automatic evaluation of missing receipts
type ReceiptEvaluatorSvc interface {
	// CheckExpense recomputes the alert for one expense. It returns the upserted alert, or nil
	// when the expense needs no alert (any stale alert is removed).
	CheckExpense(ctx context.Context, expenseID string) (*domain.MissingReceiptAlert, error)

	// RemoveAlertForExpense deletes the expense's alert, if any. Called after a receipt upload.
	RemoveAlertForExpense(ctx context.Context, expenseID string) error

	// DailyScan evaluates every eligible expense and purges alerts that no longer apply.
	DailyScan(ctx context.Context) (*domain.ScanSummary, error)
}

// ReceiptAlertReaderSvc defines alert queries for the presentation layer
type ReceiptAlertReaderSvc interface {
	// ActiveAlerts lists non-dismissed alerts enriched with expense data.
	ActiveAlerts(ctx context.Context) ([]domain.ActiveAlert, error)

	// AlertStats counts active alerts per severity.
	AlertStats(ctx context.Context) (*domain.AlertStats, error)
}

// ReceiptAlertDismissalSvc defines the human dismissal toggle
type ReceiptAlertDismissalSvc interface {
	DismissAlert(ctx context.Context, alertID, userID string) (*domain.MissingReceiptAlert, error)
	RestoreAlert(ctx context.Context, alertID string) (*domain.MissingReceiptAlert, error)
}

// ReceiptAlertSvcFacade combines all missing-receipt service interfaces
type ReceiptAlertSvcFacade interface {
	ReceiptEvaluatorSvc
	ReceiptAlertReaderSvc
	ReceiptAlertDismissalSvc
}
