package services

// ServiceContainer holds instances of all the application services.
// It is used by the handlers and by the scan job.
type ServiceContainer struct {
	Duplicates    DuplicateSvcFacade
	ReceiptAlerts ReceiptAlertSvcFacade
}
