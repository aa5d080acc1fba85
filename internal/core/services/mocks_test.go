package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/freelancer_books/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockRecordRepository is a mock type for the FinancialRecordRepositoryFacade interface
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) FindRecordByID(ctx context.Context, variant domain.RecordVariant, recordID string) (*domain.FinancialRecord, error) {
	args := m.Called(ctx, variant, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialRecord), args.Error(1)
}

func (m *MockRecordRepository) FindDuplicateCandidates(ctx context.Context, variant domain.RecordVariant, amount decimal.Decimal, from, to time.Time, excludeID string) ([]domain.FinancialRecord, error) {
	args := m.Called(ctx, variant, amount, from, to, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialRecord), args.Error(1)
}

func (m *MockRecordRepository) ListMarkedDuplicates(ctx context.Context, variant *domain.RecordVariant) ([]domain.FinancialRecord, error) {
	args := m.Called(ctx, variant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialRecord), args.Error(1)
}

func (m *MockRecordRepository) ListExpensesMissingReceipt(ctx context.Context) ([]domain.FinancialRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialRecord), args.Error(1)
}

func (m *MockRecordRepository) SumCountableAmounts(ctx context.Context, variant domain.RecordVariant, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, variant, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRecordRepository) SetDuplicateLink(ctx context.Context, variant domain.RecordVariant, recordID string, originalID *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, variant, recordID, originalID, updatedBy, updatedAt)
	return args.Error(0)
}

// MockAlertRepository is a mock type for the ReceiptAlertRepositoryFacade interface
type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) FindAlertByID(ctx context.Context, alertID string) (*domain.MissingReceiptAlert, error) {
	args := m.Called(ctx, alertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MissingReceiptAlert), args.Error(1)
}

func (m *MockAlertRepository) FindAlertByExpenseID(ctx context.Context, expenseID string) (*domain.MissingReceiptAlert, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MissingReceiptAlert), args.Error(1)
}

func (m *MockAlertRepository) ListActiveAlerts(ctx context.Context) ([]domain.ActiveAlert, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActiveAlert), args.Error(1)
}

func (m *MockAlertRepository) CountActiveAlertsBySeverity(ctx context.Context) (map[domain.Severity]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Severity]int), args.Error(1)
}

func (m *MockAlertRepository) UpsertAlert(ctx context.Context, alert domain.MissingReceiptAlert) (domain.UpsertOutcome, error) {
	args := m.Called(ctx, alert)
	return args.Get(0).(domain.UpsertOutcome), args.Error(1)
}

func (m *MockAlertRepository) DeleteAlertByExpenseID(ctx context.Context, expenseID string) (bool, error) {
	args := m.Called(ctx, expenseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAlertRepository) SetAlertDismissal(ctx context.Context, alertID string, dismissedAt *time.Time, dismissedBy *string) error {
	args := m.Called(ctx, alertID, dismissedAt, dismissedBy)
	return args.Error(0)
}

func (m *MockAlertRepository) PurgeIneligibleAlerts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
