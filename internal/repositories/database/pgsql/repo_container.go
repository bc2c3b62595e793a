package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories to one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(dbPool),
		JournalRepo: newPgxJournalRepository(dbPool),
		SalesRepo:   newPgxSalesRepository(dbPool),
		ExpenseRepo: newPgxExpenseRepository(dbPool),
		PaymentRepo: newPgxPaymentRepository(dbPool),
	}
}
