package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/freelancer_books/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.RecordVariant
		wantErr bool
	}{
		{in: "expense", want: domain.VariantExpense},
		{in: "Expenses", want: domain.VariantExpense},
		{in: " income ", want: domain.VariantIncome},
		{in: "incomes", want: domain.VariantIncome},
		{in: "asset", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseRecordVariant(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFinancialRecord_HasReceipt(t *testing.T) {
	blank := "   "
	path := "receipts/2024/06/telekom.pdf"

	assert.False(t, domain.FinancialRecord{}.HasReceipt())
	assert.False(t, domain.FinancialRecord{ReceiptPath: &blank}.HasReceipt())
	assert.True(t, domain.FinancialRecord{ReceiptPath: &path}.HasReceipt())
}

func TestFinancialRecord_NeedsReceipt(t *testing.T) {
	path := "r.pdf"
	tests := []struct {
		name   string
		record domain.FinancialRecord
		want   bool
	}{
		{"plain expense", domain.FinancialRecord{Variant: domain.VariantExpense}, true},
		{"expense with receipt", domain.FinancialRecord{Variant: domain.VariantExpense, ReceiptPath: &path}, false},
		{"deleted expense", domain.FinancialRecord{Variant: domain.VariantExpense, IsDeleted: true}, false},
		{"duplicate expense", domain.FinancialRecord{Variant: domain.VariantExpense, IsDuplicate: true}, false},
		{"income", domain.FinancialRecord{Variant: domain.VariantIncome}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.NeedsReceipt())
		})
	}
}

func TestFinancialRecord_ValidateDuplicateLink(t *testing.T) {
	other := "exp-2"
	self := "exp-1"

	assert.NoError(t, domain.FinancialRecord{ID: "exp-1"}.ValidateDuplicateLink())
	assert.NoError(t, domain.FinancialRecord{ID: "exp-1", IsDuplicate: true, DuplicateOfID: &other}.ValidateDuplicateLink())
	assert.Error(t, domain.FinancialRecord{ID: "exp-1", IsDuplicate: true}.ValidateDuplicateLink())
	assert.Error(t, domain.FinancialRecord{ID: "exp-1", DuplicateOfID: &other}.ValidateDuplicateLink())
	assert.Error(t, domain.FinancialRecord{ID: "exp-1", IsDuplicate: true, DuplicateOfID: &self}.ValidateDuplicateLink())
}

func TestSumCountable_ExcludesDuplicates(t *testing.T) {
	original := "exp-1"
	year := []domain.FinancialRecord{
		{ID: "exp-1", Variant: domain.VariantExpense, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(300)},
		{ID: "exp-2", Variant: domain.VariantExpense, Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(500), IsDuplicate: true, DuplicateOfID: &original},
		{ID: "exp-3", Variant: domain.VariantExpense, Date: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(70), IsDeleted: true},
	}

	total := domain.SumCountable(year)

	assert.True(t, decimal.NewFromInt(300).Equal(total), "got %s", total)
}

func TestCalendarDay(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	late := time.Date(2024, 6, 15, 23, 30, 0, 0, berlin)

	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), domain.CalendarDay(late))
}
