package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/freelancer_books/internal/apperrors"
	"github.com/SscSPs/freelancer_books/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes the repositories translate.
const (
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// recordTable describes how a record variant is stored. Identifiers come from this fixed map
// only, never from input.
type recordTable struct {
	name       string
	partnerCol string
	receiptCol string
}

var recordTables = map[domain.RecordVariant]recordTable{
	domain.VariantExpense: {name: "expenses", partnerCol: "vendor", receiptCol: "receipt_path"},
	domain.VariantIncome:  {name: "incomes", partnerCol: "description", receiptCol: "NULL::text"},
}

func tableFor(variant domain.RecordVariant) (recordTable, error) {
	t, ok := recordTables[variant]
	if !ok {
		return recordTable{}, apperrors.NewValidationError(fmt.Sprintf("unknown record variant %q", variant))
	}
	return t, nil
}

// selectColumns lists the record columns in the order scanRecord expects.
func (t recordTable) selectColumns() string {
	return fmt.Sprintf(`id, date, %s AS partner, description, amount, net_amount, vat_amount, %s AS receipt_path,
		is_deleted, is_duplicate, duplicate_of_id, created_at, created_by, last_updated_at, last_updated_by`,
		t.partnerCol, t.receiptCol)
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
