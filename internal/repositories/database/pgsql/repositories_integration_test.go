//go:build integration

package pgsql_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/freelancer_books/internal/apperrors"
	"github.com/SscSPs/freelancer_books/internal/core/domain"
	portsrepo "github.com/SscSPs/freelancer_books/internal/core/ports/repositories"
	"github.com/SscSPs/freelancer_books/internal/core/services"
	"github.com/SscSPs/freelancer_books/internal/repositories/database/pgsql"
	"github.com/SscSPs/freelancer_books/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

type RepositoryIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider
}

func (s *RepositoryIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("books"),
		tcpostgres.WithUsername("books"),
		tcpostgres.WithPassword("books"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err, "failed to start postgres container")
	s.container = container

	url, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.Require().NoError(database.RunMigrations(url, "../../../../migrations", slog.Default()))

	s.pool, err = database.NewPgxPool(s.ctx, url, true)
	s.Require().NoError(err)
	s.repos = pgsql.NewRepositoryProvider(s.pool)
}

func (s *RepositoryIntegrationSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
	if err := testcontainers.TerminateContainer(s.container); err != nil {
		s.T().Logf("failed to terminate postgres container: %v", err)
	}
}

func (s *RepositoryIntegrationSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE missing_receipt_alerts, expenses, incomes CASCADE;`)
	s.Require().NoError(err)
}

func (s *RepositoryIntegrationSuite) insertExpense(id, vendor, amount string, date time.Time, receipt *string) {
	_, err := s.pool.Exec(s.ctx,
		`INSERT INTO expenses (id, date, vendor, amount, receipt_path) VALUES ($1, $2, $3, $4, $5);`,
		id, date, vendor, decimal.RequireFromString(amount), receipt)
	s.Require().NoError(err)
}

func (s *RepositoryIntegrationSuite) TestTelekomScenario() {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	s.insertExpense("exp-1", "Telekom", "49.99", day, nil)
	s.insertExpense("exp-2", "Deutsche Telekom GmbH", "49.99", day, nil)
	s.insertExpense("exp-3", "Deutsche Telekom GmbH", "49.98", day, nil)

	svc := services.NewDuplicateService(s.repos.RecordRepo)
	got, err := svc.CheckRecord(s.ctx, domain.VariantExpense, "exp-1")

	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("exp-2", got[0].Record.ID)
	s.GreaterOrEqual(got[0].SimilarityScore, 0.6)
}

func (s *RepositoryIntegrationSuite) TestMarkUnmarkAndSum() {
	year := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s.insertExpense("exp-1", "Hetzner", "300", year, nil)
	s.insertExpense("exp-2", "Hetzner", "500", year.AddDate(0, 0, 1), nil)

	svc := services.NewDuplicateService(s.repos.RecordRepo)
	marked, err := svc.MarkAsDuplicate(s.ctx, domain.VariantExpense, "exp-2", "exp-1", "user-1")
	s.Require().NoError(err)
	s.True(marked.IsDuplicate)

	total, err := s.repos.RecordRepo.SumCountableAmounts(s.ctx, domain.VariantExpense,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(300).Equal(total), "got %s", total)

	cleared, err := svc.UnmarkAsDuplicate(s.ctx, domain.VariantExpense, "exp-2", "user-1")
	s.Require().NoError(err)
	s.False(cleared.IsDuplicate)
	s.Nil(cleared.DuplicateOfID)

	_, err = svc.UnmarkAsDuplicate(s.ctx, domain.VariantIncome, "exp-2", "user-1")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RepositoryIntegrationSuite) TestUpsertIsIdempotentAndKeepsDismissal() {
	now := time.Date(2024, 6, 18, 9, 0, 0, 0, time.UTC)
	s.insertExpense("exp-1", "AWS EMEA", "1234.56", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), nil)

	svc := services.NewReceiptAlertService(s.repos.RecordRepo, s.repos.AlertRepo,
		services.WithReceiptAlertClock(func() time.Time { return now }))

	first, err := svc.CheckExpense(s.ctx, "exp-1")
	s.Require().NoError(err)
	_, err = svc.DismissAlert(s.ctx, first.AlertID, "user-1")
	s.Require().NoError(err)

	second, err := svc.CheckExpense(s.ctx, "exp-1")
	s.Require().NoError(err)
	s.Equal(first.AlertID, second.AlertID)
	s.True(second.IsDismissed)
	s.Equal(domain.SeverityHigh, second.Severity)

	var rows int
	s.Require().NoError(s.pool.QueryRow(s.ctx, `SELECT COUNT(*) FROM missing_receipt_alerts;`).Scan(&rows))
	s.Equal(1, rows)
}

func (s *RepositoryIntegrationSuite) TestReceiptAttachedThenScanRemovesAlert() {
	now := time.Date(2024, 6, 18, 9, 0, 0, 0, time.UTC)
	s.insertExpense("exp-1", "Bahn", "20", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), nil)

	svc := services.NewReceiptAlertService(s.repos.RecordRepo, s.repos.AlertRepo,
		services.WithReceiptAlertClock(func() time.Time { return now }))

	summary, err := svc.DailyScan(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, summary.Created)

	_, err = s.pool.Exec(s.ctx, `UPDATE expenses SET receipt_path = 'r/exp-1.pdf' WHERE id = 'exp-1';`)
	s.Require().NoError(err)

	summary, err = svc.DailyScan(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, summary.Evaluated)
	s.Equal(1, summary.Purged)

	_, err = s.repos.AlertRepo.FindAlertByExpenseID(s.ctx, "exp-1")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RepositoryIntegrationSuite) TestSetDuplicateLinkRejectsBadOriginals() {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	s.insertExpense("exp-1", "Hetzner", "30", day, nil)
	s.insertExpense("exp-2", "Hetzner", "30", day, nil)
	s.insertExpense("exp-3", "Hetzner", "30", day, nil)
	repo := s.repos.RecordRepo
	orig := "exp-1"
	dup := "exp-2"
	ghost := "exp-404"

	s.Require().NoError(repo.SetDuplicateLink(s.ctx, domain.VariantExpense, "exp-2", &orig, "user-1", day))

	err := repo.SetDuplicateLink(s.ctx, domain.VariantExpense, "exp-3", &dup, "user-1", day)
	s.ErrorIs(err, apperrors.ErrValidation)

	err = repo.SetDuplicateLink(s.ctx, domain.VariantExpense, "exp-3", &ghost, "user-1", day)
	s.ErrorIs(err, apperrors.ErrNotFound)

	err = repo.SetDuplicateLink(s.ctx, domain.VariantExpense, "exp-404", &orig, "user-1", day)
	s.ErrorIs(err, apperrors.ErrNotFound)

	third := "exp-3"
	err = repo.SetDuplicateLink(s.ctx, domain.VariantExpense, "exp-1", &third, "user-1", day)
	s.ErrorIs(err, apperrors.ErrValidation, "exp-1 is the original of exp-2")

	rec, err := repo.FindRecordByID(s.ctx, domain.VariantExpense, "exp-3")
	s.Require().NoError(err)
	s.False(rec.IsDuplicate)
	rec, err = repo.FindRecordByID(s.ctx, domain.VariantExpense, "exp-1")
	s.Require().NoError(err)
	s.False(rec.IsDuplicate)

	s.Require().NoError(repo.SetDuplicateLink(s.ctx, domain.VariantExpense, "exp-2", nil, "user-1", day))
	s.NoError(repo.SetDuplicateLink(s.ctx, domain.VariantExpense, "exp-1", &third, "user-1", day))
}

func (s *RepositoryIntegrationSuite) TestActiveAlertsSkipDuplicateExpenses() {
	now := time.Date(2024, 6, 18, 9, 0, 0, 0, time.UTC)
	s.insertExpense("exp-1", "Bahn", "80", time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC), nil)
	s.insertExpense("exp-2", "Bahn", "80", time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC), nil)

	container := services.NewServiceContainer(s.repos, services.ContainerOptions{Clock: func() time.Time { return now }})
	_, err := container.ReceiptAlerts.DailyScan(s.ctx)
	s.Require().NoError(err)

	_, err = container.Duplicates.MarkAsDuplicate(s.ctx, domain.VariantExpense, "exp-2", "exp-1", "user-1")
	s.Require().NoError(err)

	active, err := container.ReceiptAlerts.ActiveAlerts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal("exp-1", active[0].ExpenseID)

	stats, err := container.ReceiptAlerts.AlertStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, stats.Total)
}

func TestRepositoryIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RepositoryIntegrationSuite))
}
