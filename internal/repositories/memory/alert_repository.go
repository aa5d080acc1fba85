package memory

import (
	"context"
	"time"

	"github.com/SscSPs/freelancer_books/internal/apperrors"
	"github.com/SscSPs/freelancer_books/internal/core/domain"
	portsrepo "github.com/SscSPs/freelancer_books/internal/core/ports/repositories"
)

const alertEntity = "missing receipt alert"

// AlertRepository implements ReceiptAlertRepositoryFacade over a Store.
type AlertRepository struct {
	store *Store
}

var _ portsrepo.ReceiptAlertRepositoryFacade = (*AlertRepository)(nil)

func (r *AlertRepository) FindAlertByID(ctx context.Context, alertID string) (*domain.MissingReceiptAlert, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if a := r.byID(alertID); a != nil {
		return copyAlert(a), nil
	}
	return nil, apperrors.NewNotFoundError(alertEntity, alertID)
}

func (r *AlertRepository) FindAlertByExpenseID(ctx context.Context, expenseID string) (*domain.MissingReceiptAlert, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.alerts[expenseID]
	if !ok {
		return nil, apperrors.NewNotFoundError(alertEntity, expenseID)
	}
	return copyAlert(a), nil
}

func (r *AlertRepository) ListActiveAlerts(ctx context.Context) ([]domain.ActiveAlert, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := []domain.ActiveAlert{}
	for expenseID, a := range r.store.alerts {
		exp, ok := r.store.records[domain.VariantExpense][expenseID]
		if a.IsDismissed || !ok || exp.IsDeleted || exp.IsDuplicate {
			continue
		}
		out = append(out, domain.ActiveAlert{
			MissingReceiptAlert: *copyAlert(a),
			Amount:              exp.Amount,
			Vendor:              exp.Partner,
			ExpenseDate:         exp.Date,
		})
	}
	return out, nil
}

func (r *AlertRepository) CountActiveAlertsBySeverity(ctx context.Context) (map[domain.Severity]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[domain.Severity]int, len(domain.AllSeverities))
	for expenseID, a := range r.store.alerts {
		exp, ok := r.store.records[domain.VariantExpense][expenseID]
		if a.IsDismissed || !ok || exp.IsDeleted || exp.IsDuplicate {
			continue
		}
		counts[a.Severity]++
	}
	return counts, nil
}

func (r *AlertRepository) UpsertAlert(ctx context.Context, alert domain.MissingReceiptAlert) (domain.UpsertOutcome, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.records[domain.VariantExpense][alert.ExpenseID]; !ok {
		return 0, apperrors.NewNotFoundError(string(domain.VariantExpense), alert.ExpenseID)
	}

	if existing, ok := r.store.alerts[alert.ExpenseID]; ok {
		existing.Severity = alert.Severity
		existing.Reason = alert.Reason
		existing.UpdatedAt = alert.UpdatedAt
		return domain.AlertUpdated, nil
	}

	fresh := alert
	fresh.IsDismissed, fresh.DismissedAt, fresh.DismissedBy = false, nil, nil
	r.store.alerts[alert.ExpenseID] = &fresh
	return domain.AlertCreated, nil
}

func (r *AlertRepository) DeleteAlertByExpenseID(ctx context.Context, expenseID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	_, ok := r.store.alerts[expenseID]
	delete(r.store.alerts, expenseID)
	return ok, nil
}

func (r *AlertRepository) SetAlertDismissal(ctx context.Context, alertID string, dismissedAt *time.Time, dismissedBy *string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a := r.byID(alertID)
	if a == nil {
		return apperrors.NewNotFoundError(alertEntity, alertID)
	}
	a.IsDismissed = dismissedAt != nil
	a.DismissedAt, a.DismissedBy = nil, nil
	if dismissedAt != nil {
		t := *dismissedAt
		a.DismissedAt = &t
	}
	if dismissedBy != nil {
		by := *dismissedBy
		a.DismissedBy = &by
	}
	return nil
}

func (r *AlertRepository) PurgeIneligibleAlerts(ctx context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	purged := 0
	for expenseID := range r.store.alerts {
		exp, ok := r.store.records[domain.VariantExpense][expenseID]
		if ok && !exp.NeedsReceipt() {
			delete(r.store.alerts, expenseID)
			purged++
		}
	}
	return purged, nil
}

// byID scans for an alert by its own id. Callers hold the lock.
func (r *AlertRepository) byID(alertID string) *domain.MissingReceiptAlert {
	for _, a := range r.store.alerts {
		if a.AlertID == alertID {
			return a
		}
	}
	return nil
}
