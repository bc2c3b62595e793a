package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/apperrors"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	portsrepo "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/repositories"
	portssvc "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/services"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/dto"
)

// salesService records raw sale and expense data for the P&L report.
type salesService struct {
	BaseService
	salesRepo   portsrepo.SalesRepository
	expenseRepo portsrepo.ExpenseRepository
}

// NewSalesService creates a new SalesService.
func NewSalesService(salesRepo portsrepo.SalesRepository, expenseRepo portsrepo.ExpenseRepository) portssvc.SalesService {
	return &salesService{salesRepo: salesRepo, expenseRepo: expenseRepo}
}

var _ portssvc.SalesService = (*salesService)(nil)

// RecordSale persists a new raw sale record.
func (s *salesService) RecordSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: sale amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	sale := domain.Sale{
		SaleID:      uuid.NewString(),
		SaleDate:    req.Date,
		Amount:      req.Amount,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.salesRepo.SaveSale(ctx, sale); err != nil {
		s.LogError(ctx, err, "Failed to save sale", slog.String("sale_id", sale.SaleID))
		return nil, err
	}
	s.LogInfo(ctx, "Sale recorded", slog.String("sale_id", sale.SaleID), slog.String("amount", sale.Amount.String()))
	return &sale, nil
}

// ListSales returns all raw sale records.
func (s *salesService) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.salesRepo.ListSales(ctx)
}

// RecordExpense persists a new raw expense record.
func (s *salesService) RecordExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		ExpenseDate: req.Date,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("expense_id", expense.ExpenseID))
		return nil, err
	}
	s.LogInfo(ctx, "Expense recorded", slog.String("expense_id", expense.ExpenseID), slog.String("category", expense.Category))
	return &expense, nil
}

// ListExpenses returns all raw expense records.
func (s *salesService) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	return s.expenseRepo.ListExpenses(ctx)
}
