package repositories

import (
	"context"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
)

// SalesRepository defines persistence operations for raw sale records.
type SalesRepository interface {
	SaveSale(ctx context.Context, sale domain.Sale) error
	ListSales(ctx context.Context) ([]domain.Sale, error)
}

// ExpenseRepository defines persistence operations for raw expense records.
type ExpenseRepository interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
}
