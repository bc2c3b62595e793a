package dto

import (
	"time"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest defines the data needed to record a raw sale.
type CreateSaleRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// CreateExpenseRequest defines the data needed to record a raw expense.
type CreateExpenseRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category"` // Empty falls into "Other Expenses"
	Description string          `json:"description"`
}

// SaleResponse defines the data returned for a sale record.
type SaleResponse struct {
	SaleID      string          `json:"saleID"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ExpenseResponse defines the data returned for an expense record.
type ExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// ToSaleResponse converts a domain.Sale to its DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		SaleID:      s.SaleID,
		Date:        s.SaleDate,
		Amount:      s.Amount,
		Description: s.Description,
	}
}

// ToExpenseResponse converts a domain.Expense to its DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		Date:        e.ExpenseDate,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
	}
}

// ToListSaleResponse converts a slice of sales to DTOs.
func ToListSaleResponse(sales []domain.Sale) []SaleResponse {
	res := make([]SaleResponse, len(sales))
	for i, s := range sales {
		res[i] = ToSaleResponse(&s)
	}
	return res
}

// ToListExpenseResponse converts a slice of expenses to DTOs.
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		res[i] = ToExpenseResponse(&e)
	}
	return res
}
