package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MissingReceiptAlert is a row of missing_receipt_alerts.
type MissingReceiptAlert struct {
	AlertID     string     `db:"alert_id"`
	ExpenseID   string     `db:"expense_id"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	Severity    string     `db:"severity"`
	Reason      string     `db:"reason"`
	IsDismissed bool       `db:"is_dismissed"`
	DismissedAt *time.Time `db:"dismissed_at"`
	DismissedBy *string    `db:"dismissed_by"`
}

// ActiveAlert is an alert row joined with its expense.
type ActiveAlert struct {
	MissingReceiptAlert
	Amount      decimal.Decimal `db:"amount"`
	Vendor      string          `db:"vendor"`
	ExpenseDate time.Time       `db:"expense_date"`
}
