package services

import (
	"context"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/dto"
)

// SalesService defines operations on raw sale and expense records, the
// unreconciled source of truth behind the profit and loss report.
type SalesService interface {
	RecordSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, error)
	ListSales(ctx context.Context) ([]domain.Sale, error)
	RecordExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
}
