package pgsql

import (
	portsrepo "github.com/SscSPs/freelancer_books/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RecordRepo: newPgxFinancialRecordRepository(dbPool),
		AlertRepo:  newPgxReceiptAlertRepository(dbPool),
	}
}
