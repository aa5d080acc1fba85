package dto

import (
	"github.com/SscSPs/freelancer_books/internal/core/domain"
)

// AlertResponse mirrors domain.MissingReceiptAlert with ISO formatted timestamps.
type AlertResponse struct {
	AlertID     string  `json:"alertID"`
	ExpenseID   string  `json:"expenseID"`
	Severity    string  `json:"severity"`
	Reason      string  `json:"reason"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	IsDismissed bool    `json:"isDismissed"`
	DismissedAt *string `json:"dismissedAt"`
	DismissedBy *string `json:"dismissedBy"`
}

// ActiveAlertResponse is an alert enriched with its expense.
type ActiveAlertResponse struct {
	AlertResponse
	Amount          string `json:"amount"`
	Vendor          string `json:"vendor"`
	ExpenseDate     string `json:"expenseDate"`
	DaysOutstanding int    `json:"daysOutstanding"`
}

// ListActiveAlertsResponse wraps the active alert list.
type ListActiveAlertsResponse struct {
	Alerts []ActiveAlertResponse `json:"alerts"`
}

// CheckExpenseResponse reports the alert after a single-expense evaluation; Alert is null when
// the expense needs none.
type CheckExpenseResponse struct {
	ExpenseID string         `json:"expenseID"`
	Alert     *AlertResponse `json:"alert"`
}

// AlertStatsResponse counts active alerts per severity.
type AlertStatsResponse struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
	Total  int `json:"total"`
}

// ScanSummaryResponse reports a daily scan run.
type ScanSummaryResponse struct {
	StartedAt  string             `json:"startedAt"`
	FinishedAt string             `json:"finishedAt"`
	Evaluated  int                `json:"evaluated"`
	Created    int                `json:"created"`
	Updated    int                `json:"updated"`
	Purged     int                `json:"purged"`
	BySeverity AlertStatsResponse `json:"bySeverity"`
}

// ToAlertResponse converts a domain.MissingReceiptAlert to AlertResponse DTO
func ToAlertResponse(a *domain.MissingReceiptAlert) AlertResponse {
	resp := AlertResponse{
		AlertID:     a.AlertID,
		ExpenseID:   a.ExpenseID,
		Severity:    string(a.Severity),
		Reason:      a.Reason,
		CreatedAt:   formatTimestamp(a.CreatedAt),
		UpdatedAt:   formatTimestamp(a.UpdatedAt),
		IsDismissed: a.IsDismissed,
		DismissedBy: a.DismissedBy,
	}
	if a.DismissedAt != nil {
		ts := formatTimestamp(*a.DismissedAt)
		resp.DismissedAt = &ts
	}
	return resp
}

// ToListActiveAlertsResponse converts enriched alerts
func ToListActiveAlertsResponse(alerts []domain.ActiveAlert) ListActiveAlertsResponse {
	out := make([]ActiveAlertResponse, len(alerts))
	for i := range alerts {
		a := &alerts[i]
		out[i] = ActiveAlertResponse{
			AlertResponse:   ToAlertResponse(&a.MissingReceiptAlert),
			Amount:          a.Amount.StringFixed(2),
			Vendor:          a.Vendor,
			ExpenseDate:     a.ExpenseDate.Format(DateLayout),
			DaysOutstanding: a.DaysOutstanding,
		}
	}
	return ListActiveAlertsResponse{Alerts: out}
}

// ToAlertStatsResponse converts domain.AlertStats
func ToAlertStatsResponse(s domain.AlertStats) AlertStatsResponse {
	return AlertStatsResponse{Low: s.Low, Medium: s.Medium, High: s.High, Total: s.Total}
}

// ToScanSummaryResponse converts domain.ScanSummary
func ToScanSummaryResponse(s *domain.ScanSummary) ScanSummaryResponse {
	return ScanSummaryResponse{
		StartedAt:  formatTimestamp(s.StartedAt),
		FinishedAt: formatTimestamp(s.FinishedAt),
		Evaluated:  s.Evaluated,
		Created:    s.Created,
		Updated:    s.Updated,
		Purged:     s.Purged,
		BySeverity: ToAlertStatsResponse(s.BySeverity),
	}
}
