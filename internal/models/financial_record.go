package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialRecord is a row of the expenses or incomes table, read through a common column set.
// Partner is the vendor column for expenses and the description column for incomes.
type FinancialRecord struct {
	ID            string          `db:"id"`
	Date          time.Time       `db:"date"`
	Partner       string          `db:"partner"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	NetAmount     decimal.Decimal `db:"net_amount"`
	VatAmount     decimal.Decimal `db:"vat_amount"`
	ReceiptPath   *string         `db:"receipt_path"` // always NULL for incomes
	IsDeleted     bool            `db:"is_deleted"`
	IsDuplicate   bool            `db:"is_duplicate"`
	DuplicateOfID *string         `db:"duplicate_of_id"`
	AuditFields
}
