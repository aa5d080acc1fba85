package mapping

import (
	"github.com/SscSPs/freelancer_books/internal/core/domain"
	"github.com/SscSPs/freelancer_books/internal/models"
)

// ToModelFinancialRecord converts a domain FinancialRecord to a model FinancialRecord
func ToModelFinancialRecord(d domain.FinancialRecord) models.FinancialRecord {
	return models.FinancialRecord{
		ID:            d.ID,
		Date:          d.Date,
		Partner:       d.Partner,
		Description:   d.Description,
		Amount:        d.Amount,
		NetAmount:     d.NetAmount,
		VatAmount:     d.VatAmount,
		ReceiptPath:   d.ReceiptPath,
		IsDeleted:     d.IsDeleted,
		IsDuplicate:   d.IsDuplicate,
		DuplicateOfID: d.DuplicateOfID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFinancialRecord converts a model FinancialRecord of the given variant to a domain FinancialRecord
func ToDomainFinancialRecord(m models.FinancialRecord, variant domain.RecordVariant) domain.FinancialRecord {
	return domain.FinancialRecord{
		ID:            m.ID,
		Variant:       variant,
		Date:          m.Date,
		Partner:       m.Partner,
		Description:   m.Description,
		Amount:        m.Amount,
		NetAmount:     m.NetAmount,
		VatAmount:     m.VatAmount,
		ReceiptPath:   m.ReceiptPath,
		IsDeleted:     m.IsDeleted,
		IsDuplicate:   m.IsDuplicate,
		DuplicateOfID: m.DuplicateOfID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFinancialRecordSlice converts a slice of model records to domain records
func ToDomainFinancialRecordSlice(ms []models.FinancialRecord, variant domain.RecordVariant) []domain.FinancialRecord {
	ds := make([]domain.FinancialRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFinancialRecord(m, variant)
	}
	return ds
}
