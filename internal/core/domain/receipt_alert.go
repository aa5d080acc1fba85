package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Severity is the ordinal risk tier of a missing-receipt alert.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// AllSeverities lists severities from most to least urgent.
var AllSeverities = []Severity{SeverityHigh, SeverityMedium, SeverityLow}

// Rank orders severities: low < medium < high. Unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	}
	return 0
}

// ParseSeverity converts a stored or user-provided value into a Severity.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if sev.Rank() == 0 {
		return "", fmt.Errorf("unknown severity %q", s)
	}
	return sev, nil
}

// MissingReceiptAlert flags an expense without a receipt. There is at most one per expense.
type MissingReceiptAlert struct {
	AlertID     string     `json:"alertID"`
	ExpenseID   string     `json:"expenseID"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Severity    Severity   `json:"severity"`
	Reason      string     `json:"reason"`
	IsDismissed bool       `json:"isDismissed"`
	DismissedAt *time.Time `json:"dismissedAt,omitempty"`
	DismissedBy *string    `json:"dismissedBy,omitempty"`
}

// ActiveAlert is a non-dismissed alert joined with the owning expense.
type ActiveAlert struct {
	MissingReceiptAlert
	Amount          decimal.Decimal `json:"amount"`
	Vendor          string          `json:"vendor"`
	ExpenseDate     time.Time       `json:"expenseDate"`
	DaysOutstanding int             `json:"daysOutstanding"`
}

// AlertStats counts active alerts by severity.
type AlertStats struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
	Total  int `json:"total"`
}

// Add increments the counter for sev and the total.
func (s *AlertStats) Add(sev Severity, n int) {
	switch sev {
	case SeverityLow:
		s.Low += n
	case SeverityMedium:
		s.Medium += n
	case SeverityHigh:
		s.High += n
	default:
		return
	}
	s.Total += n
}

// UpsertOutcome tells whether an alert upsert inserted a new row or updated an existing one.
type UpsertOutcome int

const (
	AlertCreated UpsertOutcome = iota + 1
	AlertUpdated
)

// ScanSummary reports what a daily scan did.
type ScanSummary struct {
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt time.Time  `json:"finishedAt"`
	Evaluated  int        `json:"evaluated"`
	Created    int        `json:"created"`
	Updated    int        `json:"updated"`
	Purged     int        `json:"purged"`
	BySeverity AlertStats `json:"bySeverity"`
}
