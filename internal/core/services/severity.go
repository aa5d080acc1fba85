package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/freelancer_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Severity thresholds. The medium amount band is [SmallAmountLimit, LargeAmountLimit], both ends
// inclusive; age limits are inclusive from below.
var (
	SmallAmountLimit = decimal.NewFromInt(150)
	LargeAmountLimit = decimal.NewFromInt(1000)
)

const (
	MediumAgeDays = 30
	HighAgeDays   = 60
)

// ReceiptCurrency is the currency amounts are booked in.
const ReceiptCurrency = "EUR"

// ClassifySeverity maps the gross amount and age of a receipt-less expense to a severity tier.
// Negative ages (future-dated expenses) count as zero.
func ClassifySeverity(amount decimal.Decimal, ageDays int) domain.Severity {
	ageDays = max(ageDays, 0)
	switch {
	case ageDays >= HighAgeDays, amount.GreaterThan(LargeAmountLimit):
		return domain.SeverityHigh
	case amount.GreaterThanOrEqual(SmallAmountLimit), ageDays >= MediumAgeDays:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

// ExpenseAgeDays returns how many calendar days lie between the expense date and now, never
// less than zero.
func ExpenseAgeDays(expenseDate, now time.Time) int {
	days := int(domain.CalendarDay(now).Sub(domain.CalendarDay(expenseDate)).Hours() / 24)
	return max(days, 0)
}

// MissingReceiptReason renders the human-readable reason stored on an alert.
func MissingReceiptReason(amount decimal.Decimal, vendor string, ageDays int) string {
	vendor = strings.TrimSpace(vendor)
	if vendor == "" {
		vendor = "unknown vendor"
	}
	unit := "days"
	if ageDays == 1 {
		unit = "day"
	}
	return fmt.Sprintf("Receipt missing for expense of %s %s at %s (%d %s old)",
		amount.StringFixed(2), ReceiptCurrency, vendor, ageDays, unit)
}
