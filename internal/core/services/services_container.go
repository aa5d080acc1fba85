package services

import (
	portsrepo "github.com/SscSPs/freelancer_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/freelancer_books/internal/core/ports/services"
	"github.com/SscSPs/freelancer_books/internal/platform/metrics"
)

// ContainerOptions carries the optional collaborators shared by all services.
type ContainerOptions struct {
	Metrics *metrics.Metrics
	Clock   Clock
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, opts ContainerOptions) *portssvc.ServiceContainer {
	dupOpts := []DuplicateServiceOption{WithDuplicateMetrics(opts.Metrics)}
	alertOpts := []ReceiptAlertServiceOption{WithReceiptAlertMetrics(opts.Metrics)}
	if opts.Clock != nil {
		dupOpts = append(dupOpts, WithDuplicateClock(opts.Clock))
		alertOpts = append(alertOpts, WithReceiptAlertClock(opts.Clock))
	}

	return &portssvc.ServiceContainer{
		Duplicates:    NewDuplicateService(repos.RecordRepo, dupOpts...),
		ReceiptAlerts: NewReceiptAlertService(repos.RecordRepo, repos.AlertRepo, alertOpts...),
	}
}
