package domain_test

import (
	"testing"

	"github.com/SscSPs/freelancer_books/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSeverity_Rank(t *testing.T) {
	assert.Less(t, domain.SeverityLow.Rank(), domain.SeverityMedium.Rank())
	assert.Less(t, domain.SeverityMedium.Rank(), domain.SeverityHigh.Rank())
	assert.Zero(t, domain.Severity("critical").Rank())
}

func TestParseSeverity(t *testing.T) {
	sev, err := domain.ParseSeverity(" HIGH ")
	assert.NoError(t, err)
	assert.Equal(t, domain.SeverityHigh, sev)

	_, err = domain.ParseSeverity("urgent")
	assert.Error(t, err)
}

func TestAlertStats_Add(t *testing.T) {
	var stats domain.AlertStats
	stats.Add(domain.SeverityLow, 2)
	stats.Add(domain.SeverityHigh, 1)
	stats.Add(domain.Severity("bogus"), 5)

	assert.Equal(t, domain.AlertStats{Low: 2, High: 1, Total: 3}, stats)
}
