package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service layer.
type RepositoryProvider struct {
	AccountRepo AccountRepository
	JournalRepo JournalRepository
	SalesRepo   SalesRepository
	ExpenseRepo ExpenseRepository
	PaymentRepo PaymentRepository
}
