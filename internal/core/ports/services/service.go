package services

// ServiceContainer carries the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Account   AccountService
	Journal   JournalService
	Reporting ReportingService
	Payment   PaymentService
	Sales     SalesService
}
