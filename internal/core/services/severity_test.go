package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/freelancer_books/internal/core/domain"
	"github.com/SscSPs/freelancer_books/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		age    int
		want   domain.Severity
	}{
		{"small and fresh", "49.99", 5, domain.SeverityLow},
		{"exactly 150 is not small", "150", 5, domain.SeverityMedium},
		{"just below 150", "149.99", 5, domain.SeverityLow},
		{"exactly 1000 stays medium", "1000", 5, domain.SeverityMedium},
		{"just above 1000", "1000.01", 5, domain.SeverityHigh},
		{"small at 29 days", "20", 29, domain.SeverityLow},
		{"small at 30 days", "20", 30, domain.SeverityMedium},
		{"small at 59 days", "20", 59, domain.SeverityMedium},
		{"small at 60 days", "20", 60, domain.SeverityHigh},
		{"medium at 60 days", "500", 60, domain.SeverityHigh},
		{"future dated", "20", -4, domain.SeverityLow},
		{"zero amount", "0", 0, domain.SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.ClassifySeverity(decimal.RequireFromString(tt.amount), tt.age)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifySeverity_NeverDecreasesWithAge(t *testing.T) {
	for _, amount := range []string{"10", "150", "151", "999", "1000", "5000"} {
		prev := 0
		for age := 0; age <= 90; age++ {
			rank := services.ClassifySeverity(decimal.RequireFromString(amount), age).Rank()
			assert.GreaterOrEqual(t, rank, prev, "amount %s age %d", amount, age)
			prev = rank
		}
	}
}

func TestExpenseAgeDays(t *testing.T) {
	now := time.Date(2024, 6, 18, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, services.ExpenseAgeDays(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 0, services.ExpenseAgeDays(time.Date(2024, 6, 18, 23, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 0, services.ExpenseAgeDays(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), now))
}

func TestMissingReceiptReason(t *testing.T) {
	reason := services.MissingReceiptReason(decimal.RequireFromString("1234.56"), "AWS EMEA", 3)
	assert.Equal(t, "Receipt missing for expense of 1234.56 EUR at AWS EMEA (3 days old)", reason)

	assert.Equal(t,
		"Receipt missing for expense of 12.00 EUR at unknown vendor (1 day old)",
		services.MissingReceiptReason(decimal.NewFromInt(12), "  ", 1))
}
