package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/freelancer_books/internal/apperrors"
	"github.com/SscSPs/freelancer_books/internal/core/domain"
	portsrepo "github.com/SscSPs/freelancer_books/internal/core/ports/repositories"
	"github.com/SscSPs/freelancer_books/internal/models"
	"github.com/SscSPs/freelancer_books/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxFinancialRecordRepository reads expenses and incomes and writes their duplicate flags.
type PgxFinancialRecordRepository struct {
	BaseRepository
}

func newPgxFinancialRecordRepository(pool *pgxpool.Pool) *PgxFinancialRecordRepository {
	return &PgxFinancialRecordRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FinancialRecordRepositoryFacade = (*PgxFinancialRecordRepository)(nil)

func scanRecord(row pgx.Row) (models.FinancialRecord, error) {
	var m models.FinancialRecord
	err := row.Scan(
		&m.ID,
		&m.Date,
		&m.Partner,
		&m.Description,
		&m.Amount,
		&m.NetAmount,
		&m.VatAmount,
		&m.ReceiptPath,
		&m.IsDeleted,
		&m.IsDuplicate,
		&m.DuplicateOfID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxFinancialRecordRepository) queryRecords(ctx context.Context, variant domain.RecordVariant, query string, args ...any) ([]domain.FinancialRecord, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s records: %w", variant, err)
	}
	defer rows.Close()

	var ms []models.FinancialRecord
	for rows.Next() {
		m, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s record: %w", variant, err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s records: %w", variant, err)
	}
	return mapping.ToDomainFinancialRecordSlice(ms, variant), nil
}

// FindRecordByID retrieves a record by id, including soft-deleted ones.
func (r *PgxFinancialRecordRepository) FindRecordByID(ctx context.Context, variant domain.RecordVariant, recordID string) (*domain.FinancialRecord, error) {
	t, err := tableFor(variant)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1;`, t.selectColumns(), t.name)
	m, err := scanRecord(r.Pool.QueryRow(ctx, query, recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(string(variant), recordID)
		}
		return nil, fmt.Errorf("failed to find %s %s: %w", variant, recordID, err)
	}

	rec := mapping.ToDomainFinancialRecord(m, variant)
	return &rec, nil
}

// FindDuplicateCandidates returns countable same-amount records dated within [from, to].
func (r *PgxFinancialRecordRepository) FindDuplicateCandidates(ctx context.Context, variant domain.RecordVariant, amount decimal.Decimal, from, to time.Time, excludeID string) ([]domain.FinancialRecord, error) {
	t, err := tableFor(variant)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE amount = $1
		  AND date BETWEEN $2 AND $3
		  AND is_deleted = false
		  AND is_duplicate = false
		  AND id <> $4
		ORDER BY date, id;`, t.selectColumns(), t.name)

	return r.queryRecords(ctx, variant, query, amount, domain.CalendarDay(from), domain.CalendarDay(to), excludeID)
}

// ListMarkedDuplicates returns flagged, non-deleted records ordered by date desc then id.
func (r *PgxFinancialRecordRepository) ListMarkedDuplicates(ctx context.Context, variant *domain.RecordVariant) ([]domain.FinancialRecord, error) {
	variants := domain.AllVariants
	if variant != nil {
		variants = []domain.RecordVariant{*variant}
	}

	result := []domain.FinancialRecord{}
	for _, v := range variants {
		t, err := tableFor(v)
		if err != nil {
			return nil, err
		}
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE is_duplicate = true AND is_deleted = false;`, t.selectColumns(), t.name)
		records, err := r.queryRecords(ctx, v, query)
		if err != nil {
			return nil, err
		}
		result = append(result, records...)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// ListExpensesMissingReceipt returns countable expenses with no (or a blank) receipt path.
func (r *PgxFinancialRecordRepository) ListExpensesMissingReceipt(ctx context.Context) ([]domain.FinancialRecord, error) {
	t := recordTables[domain.VariantExpense]
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE is_deleted = false
		  AND is_duplicate = false
		  AND COALESCE(btrim(receipt_path), '') = ''
		ORDER BY date, id;`, t.selectColumns(), t.name)

	return r.queryRecords(ctx, domain.VariantExpense, query)
}

// SumCountableAmounts totals gross amounts with the filter every tax aggregation must apply.
func (r *PgxFinancialRecordRepository) SumCountableAmounts(ctx context.Context, variant domain.RecordVariant, from, to time.Time) (decimal.Decimal, error) {
	t, err := tableFor(variant)
	if err != nil {
		return decimal.Zero, err
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(amount), 0) FROM %s
		WHERE date BETWEEN $1 AND $2
		  AND is_deleted = false
		  AND is_duplicate = false;`, t.name)

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, domain.CalendarDay(from), domain.CalendarDay(to)).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s amounts: %w", variant, err)
	}
	return total, nil
}

// SetDuplicateLink writes is_duplicate and duplicate_of_id together. When linking, both rows are
// locked in id order and re-checked in the same transaction so concurrent marks cannot build a
// chain from either end.
func (r *PgxFinancialRecordRepository) SetDuplicateLink(ctx context.Context, variant domain.RecordVariant, recordID string, originalID *string, updatedBy string, updatedAt time.Time) error {
	t, err := tableFor(variant)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if originalID != nil {
		if err := r.checkLinkable(ctx, tx, t, variant, recordID, *originalID); err != nil {
			return err
		}
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET is_duplicate = $2, duplicate_of_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE id = $1;`, t.name)

	cmdTag, err := tx.Exec(ctx, query, recordID, originalID != nil, originalID, updatedAt, updatedBy)
	if err != nil {
		switch pgErrorCode(err) {
		case pgForeignKeyViolation:
			return apperrors.NewNotFoundError(string(variant), *originalID)
		case pgCheckViolation:
			return fmt.Errorf("%w: invalid duplicate link for %s %s", apperrors.ErrValidation, variant, recordID)
		}
		return fmt.Errorf("failed to update duplicate link of %s %s: %w", variant, recordID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(string(variant), recordID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit duplicate link of %s %s: %w", variant, recordID, err)
	}
	return nil
}

type linkState struct {
	isDuplicate bool
	isDeleted   bool
}

// checkLinkable locks the record and its would-be original and rejects links that would create
// a chain: the original must be a live non-duplicate and no live record may point at recordID.
func (r *PgxFinancialRecordRepository) checkLinkable(ctx context.Context, tx pgx.Tx, t recordTable, variant domain.RecordVariant, recordID, originalID string) error {
	lockQuery := fmt.Sprintf(`
		SELECT id, is_duplicate, is_deleted
		FROM %s
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE;`, t.name)

	rows, err := tx.Query(ctx, lockQuery, []string{recordID, originalID})
	if err != nil {
		return fmt.Errorf("failed to lock %s rows for duplicate link: %w", variant, err)
	}
	states := make(map[string]linkState, 2)
	for rows.Next() {
		var id string
		var st linkState
		if err := rows.Scan(&id, &st.isDuplicate, &st.isDeleted); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan %s row for duplicate link: %w", variant, err)
		}
		states[id] = st
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to lock %s rows for duplicate link: %w", variant, err)
	}

	if _, ok := states[recordID]; !ok {
		return apperrors.NewNotFoundError(string(variant), recordID)
	}
	orig, ok := states[originalID]
	switch {
	case !ok:
		return apperrors.NewNotFoundError(string(variant), originalID)
	case orig.isDuplicate:
		return fmt.Errorf("%w: %s %s is itself a duplicate", apperrors.ErrValidation, variant, originalID)
	case orig.isDeleted:
		return fmt.Errorf("%w: %s %s is deleted", apperrors.ErrValidation, variant, originalID)
	}

	var referenced bool
	refQuery := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE duplicate_of_id = $1 AND is_deleted = false
		);`, t.name)
	if err := tx.QueryRow(ctx, refQuery, recordID).Scan(&referenced); err != nil {
		return fmt.Errorf("failed to check references to %s %s: %w", variant, recordID, err)
	}
	if referenced {
		return fmt.Errorf("%w: %s %s is the original of other duplicates", apperrors.ErrValidation, variant, recordID)
	}
	return nil
}
