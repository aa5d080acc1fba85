package dto_test

import (
	"testing"
	"time"

	"github.com/SscSPs/freelancer_books/internal/core/domain"
	"github.com/SscSPs/freelancer_books/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, dto.RegisterValidators(v))
	return v
}

func TestFindDuplicatesQuery_Validation(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(dto.FindDuplicatesQuery{Amount: "49.99", Date: "2024-06-15", Partner: "Telekom"}))
	assert.NoError(t, v.Struct(dto.FindDuplicatesQuery{Amount: "100", Date: "2024-06-15"}))
	assert.Error(t, v.Struct(dto.FindDuplicatesQuery{Amount: "49.999", Date: "2024-06-15"}))
	assert.Error(t, v.Struct(dto.FindDuplicatesQuery{Amount: "abc", Date: "2024-06-15"}))
	assert.Error(t, v.Struct(dto.FindDuplicatesQuery{Amount: "10", Date: "15.06.2024"}))
	assert.Error(t, v.Struct(dto.FindDuplicatesQuery{Date: "2024-06-15"}))
}

func TestListDuplicatesQuery_Validation(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(dto.ListDuplicatesQuery{}))
	assert.NoError(t, v.Struct(dto.ListDuplicatesQuery{Variant: "expenses"}))
	assert.Error(t, v.Struct(dto.ListDuplicatesQuery{Variant: "assets"}))
}

func TestToRecordResponse_Formats(t *testing.T) {
	rec := domain.FinancialRecord{
		ID:      "exp-1",
		Variant: domain.VariantExpense,
		Date:    time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		Partner: "AWS EMEA",
		Amount:  decimal.RequireFromString("1234.5"),
		AuditFields: domain.AuditFields{
			LastUpdatedAt: time.Date(2024, 6, 18, 11, 0, 0, 0, time.FixedZone("CEST", 2*60*60)),
		},
	}

	resp := dto.ToRecordResponse(&rec)

	assert.Equal(t, "2024-06-15", resp.Date)
	assert.Equal(t, "1234.50", resp.Amount)
	assert.Equal(t, "2024-06-18T09:00:00Z", resp.LastUpdatedAt)
	assert.False(t, resp.HasReceipt)
}

func TestToAlertResponse_DismissedAt(t *testing.T) {
	at := time.Date(2024, 6, 18, 9, 0, 0, 0, time.UTC)
	by := "user-1"

	resp := dto.ToAlertResponse(&domain.MissingReceiptAlert{AlertID: "a", Severity: domain.SeverityHigh, IsDismissed: true, DismissedAt: &at, DismissedBy: &by})

	require.NotNil(t, resp.DismissedAt)
	assert.Equal(t, "2024-06-18T09:00:00Z", *resp.DismissedAt)
	assert.Equal(t, "high", resp.Severity)
}
