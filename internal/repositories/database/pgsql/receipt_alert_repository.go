package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/freelancer_books/internal/apperrors"
	"github.com/SscSPs/freelancer_books/internal/core/domain"
	portsrepo "github.com/SscSPs/freelancer_books/internal/core/ports/repositories"
	"github.com/SscSPs/freelancer_books/internal/models"
	"github.com/SscSPs/freelancer_books/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const alertEntity = "missing receipt alert"

const alertColumns = `alert_id, expense_id, created_at, updated_at, severity, reason, is_dismissed, dismissed_at, dismissed_by`

// PgxReceiptAlertRepository stores missing-receipt alerts.
type PgxReceiptAlertRepository struct {
	BaseRepository
}

func newPgxReceiptAlertRepository(pool *pgxpool.Pool) *PgxReceiptAlertRepository {
	return &PgxReceiptAlertRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReceiptAlertRepositoryFacade = (*PgxReceiptAlertRepository)(nil)

func scanAlert(row pgx.Row, extra ...any) (models.MissingReceiptAlert, error) {
	var m models.MissingReceiptAlert
	dest := []any{
		&m.AlertID,
		&m.ExpenseID,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.Severity,
		&m.Reason,
		&m.IsDismissed,
		&m.DismissedAt,
		&m.DismissedBy,
	}
	err := row.Scan(append(dest, extra...)...)
	return m, err
}

func (r *PgxReceiptAlertRepository) findOne(ctx context.Context, where, id string) (*domain.MissingReceiptAlert, error) {
	query := fmt.Sprintf(`SELECT %s FROM missing_receipt_alerts WHERE %s = $1;`, alertColumns, where)
	m, err := scanAlert(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(alertEntity, id)
		}
		return nil, fmt.Errorf("failed to find alert by %s %s: %w", where, id, err)
	}
	alert := mapping.ToDomainReceiptAlert(m)
	return &alert, nil
}

// FindAlertByID retrieves an alert by its ID.
func (r *PgxReceiptAlertRepository) FindAlertByID(ctx context.Context, alertID string) (*domain.MissingReceiptAlert, error) {
	return r.findOne(ctx, "alert_id", alertID)
}

// FindAlertByExpenseID retrieves the alert owned by an expense.
func (r *PgxReceiptAlertRepository) FindAlertByExpenseID(ctx context.Context, expenseID string) (*domain.MissingReceiptAlert, error) {
	return r.findOne(ctx, "expense_id", expenseID)
}

// ListActiveAlerts joins non-dismissed alerts with their expense, skipping deleted and duplicate ones.
func (r *PgxReceiptAlertRepository) ListActiveAlerts(ctx context.Context) ([]domain.ActiveAlert, error) {
	query := `
		SELECT a.alert_id, a.expense_id, a.created_at, a.updated_at, a.severity, a.reason,
		       a.is_dismissed, a.dismissed_at, a.dismissed_by,
		       e.amount, e.vendor, e.date
		FROM missing_receipt_alerts a
		JOIN expenses e ON e.id = a.expense_id
		WHERE a.is_dismissed = false AND e.is_deleted = false AND e.is_duplicate = false
		ORDER BY e.date, a.expense_id;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active alerts: %w", err)
	}
	defer rows.Close()

	alerts := []domain.ActiveAlert{}
	for rows.Next() {
		var joined models.ActiveAlert
		m, err := scanAlert(rows, &joined.Amount, &joined.Vendor, &joined.ExpenseDate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan active alert: %w", err)
		}
		joined.MissingReceiptAlert = m
		alerts = append(alerts, mapping.ToDomainActiveAlert(joined))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating active alerts: %w", err)
	}
	return alerts, nil
}

// CountActiveAlertsBySeverity groups non-dismissed alerts of live, non-duplicate expenses by severity.
func (r *PgxReceiptAlertRepository) CountActiveAlertsBySeverity(ctx context.Context) (map[domain.Severity]int, error) {
	query := `
		SELECT a.severity, COUNT(*)
		FROM missing_receipt_alerts a
		JOIN expenses e ON e.id = a.expense_id
		WHERE a.is_dismissed = false AND e.is_deleted = false AND e.is_duplicate = false
		GROUP BY a.severity;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count active alerts: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Severity]int, len(domain.AllSeverities))
	for rows.Next() {
		var sev string
		var n int
		if err := rows.Scan(&sev, &n); err != nil {
			return nil, fmt.Errorf("failed to scan alert count: %w", err)
		}
		counts[domain.Severity(sev)] = n
	}
	return counts, rows.Err()
}

// UpsertAlert inserts or updates the expense's alert in a single statement. xmax is zero only
// for a freshly inserted row version.
func (r *PgxReceiptAlertRepository) UpsertAlert(ctx context.Context, alert domain.MissingReceiptAlert) (domain.UpsertOutcome, error) {
	m := mapping.ToModelReceiptAlert(alert)
	query := `
		INSERT INTO missing_receipt_alerts (alert_id, expense_id, created_at, updated_at, severity, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (expense_id) DO UPDATE
		SET severity = EXCLUDED.severity,
		    reason = EXCLUDED.reason,
		    updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0) AS inserted;`

	var inserted bool
	err := r.Pool.QueryRow(ctx, query, m.AlertID, m.ExpenseID, m.CreatedAt, m.UpdatedAt, m.Severity, m.Reason).Scan(&inserted)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return 0, apperrors.NewNotFoundError(string(domain.VariantExpense), m.ExpenseID)
		}
		return 0, fmt.Errorf("failed to upsert alert for expense %s: %w", m.ExpenseID, err)
	}
	if inserted {
		return domain.AlertCreated, nil
	}
	return domain.AlertUpdated, nil
}

// DeleteAlertByExpenseID removes the expense's alert and reports whether a row was deleted.
func (r *PgxReceiptAlertRepository) DeleteAlertByExpenseID(ctx context.Context, expenseID string) (bool, error) {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM missing_receipt_alerts WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return false, fmt.Errorf("failed to delete alert for expense %s: %w", expenseID, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// SetAlertDismissal dismisses the alert when dismissedAt is set and restores it otherwise.
func (r *PgxReceiptAlertRepository) SetAlertDismissal(ctx context.Context, alertID string, dismissedAt *time.Time, dismissedBy *string) error {
	query := `
		UPDATE missing_receipt_alerts
		SET is_dismissed = $2, dismissed_at = $3, dismissed_by = $4
		WHERE alert_id = $1;`

	cmdTag, err := r.Pool.Exec(ctx, query, alertID, dismissedAt != nil, dismissedAt, dismissedBy)
	if err != nil {
		return fmt.Errorf("failed to update dismissal of alert %s: %w", alertID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(alertEntity, alertID)
	}
	return nil
}

// PurgeIneligibleAlerts deletes alerts whose expense is deleted, a duplicate or has a receipt.
func (r *PgxReceiptAlertRepository) PurgeIneligibleAlerts(ctx context.Context) (int, error) {
	query := `
		DELETE FROM missing_receipt_alerts a
		USING expenses e
		WHERE e.id = a.expense_id
		  AND (e.is_deleted OR e.is_duplicate OR COALESCE(btrim(e.receipt_path), '') <> '');`

	cmdTag, err := r.Pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to purge ineligible alerts: %w", err)
	}
	return int(cmdTag.RowsAffected()), nil
}
