package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RecordVariant distinguishes the two kinds of financial record.
type RecordVariant string

const (
	VariantExpense RecordVariant = "expense"
	VariantIncome  RecordVariant = "income"
)

// AllVariants lists every record variant in a stable order.
var AllVariants = []RecordVariant{VariantExpense, VariantIncome}

// IsValid reports whether v is a known variant.
func (v RecordVariant) IsValid() bool {
	return v == VariantExpense || v == VariantIncome
}

// ParseRecordVariant converts user input ("expense", "Income", "expenses") into a RecordVariant.
func ParseRecordVariant(s string) (RecordVariant, error) {
	v := RecordVariant(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s"))
	if !v.IsValid() {
		return "", fmt.Errorf("unknown record variant %q", s)
	}
	return v, nil
}

// FinancialRecord is an expense or an income entry. Business fields are read-only for the
// integrity engine; it only writes IsDuplicate/DuplicateOfID.
type FinancialRecord struct {
	ID          string          `json:"id"`
	Variant     RecordVariant   `json:"variant"`
	Date        time.Time       `json:"date"`
	Partner     string          `json:"partner"` // vendor for expenses, description for income
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // gross
	NetAmount   decimal.Decimal `json:"netAmount"`
	VatAmount   decimal.Decimal `json:"vatAmount"`
	ReceiptPath *string         `json:"receiptPath,omitempty"` // expenses only

	IsDeleted     bool    `json:"isDeleted"`
	IsDuplicate   bool    `json:"isDuplicate"`
	DuplicateOfID *string `json:"duplicateOfID,omitempty"` // same variant, never self
	AuditFields
}

// HasReceipt reports whether a non-blank receipt path is attached.
func (r FinancialRecord) HasReceipt() bool {
	return r.ReceiptPath != nil && strings.TrimSpace(*r.ReceiptPath) != ""
}

// Countable reports whether the record participates in tax aggregation.
func (r FinancialRecord) Countable() bool {
	return !r.IsDeleted && !r.IsDuplicate
}

// NeedsReceipt reports whether the record is an expense that should carry a receipt but doesn't.
func (r FinancialRecord) NeedsReceipt() bool {
	return r.Variant == VariantExpense && r.Countable() && !r.HasReceipt()
}

// ValidateDuplicateLink checks that the flag and the link are set together and never point at self.
func (r FinancialRecord) ValidateDuplicateLink() error {
	switch {
	case r.IsDuplicate && r.DuplicateOfID == nil:
		return fmt.Errorf("record %s is flagged duplicate without an original", r.ID)
	case !r.IsDuplicate && r.DuplicateOfID != nil:
		return fmt.Errorf("record %s links to %s but is not flagged duplicate", r.ID, *r.DuplicateOfID)
	case r.DuplicateOfID != nil && *r.DuplicateOfID == r.ID:
		return fmt.Errorf("record %s cannot be a duplicate of itself", r.ID)
	}
	return nil
}

// SumCountable totals the gross amount of records that are neither deleted nor duplicates.
// Aggregations for VAT and profit/loss must apply the same filter.
func SumCountable(records []FinancialRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		if r.Countable() {
			total = total.Add(r.Amount)
		}
	}
	return total
}
