package mapping

import (
	"github.com/SscSPs/freelancer_books/internal/core/domain"
	"github.com/SscSPs/freelancer_books/internal/models"
)

// ToModelReceiptAlert converts a domain MissingReceiptAlert to a model MissingReceiptAlert
func ToModelReceiptAlert(d domain.MissingReceiptAlert) models.MissingReceiptAlert {
	return models.MissingReceiptAlert{
		AlertID:     d.AlertID,
		ExpenseID:   d.ExpenseID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		Severity:    string(d.Severity),
		Reason:      d.Reason,
		IsDismissed: d.IsDismissed,
		DismissedAt: d.DismissedAt,
		DismissedBy: d.DismissedBy,
	}
}

// ToDomainReceiptAlert converts a model MissingReceiptAlert to a domain MissingReceiptAlert
func ToDomainReceiptAlert(m models.MissingReceiptAlert) domain.MissingReceiptAlert {
	return domain.MissingReceiptAlert{
		AlertID:     m.AlertID,
		ExpenseID:   m.ExpenseID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Severity:    domain.Severity(m.Severity),
		Reason:      m.Reason,
		IsDismissed: m.IsDismissed,
		DismissedAt: m.DismissedAt,
		DismissedBy: m.DismissedBy,
	}
}

// ToDomainActiveAlert converts a joined alert row to a domain ActiveAlert
func ToDomainActiveAlert(m models.ActiveAlert) domain.ActiveAlert {
	return domain.ActiveAlert{
		MissingReceiptAlert: ToDomainReceiptAlert(m.MissingReceiptAlert),
		Amount:              m.Amount,
		Vendor:              m.Vendor,
		ExpenseDate:         m.ExpenseDate,
	}
}
