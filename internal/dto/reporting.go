package dto

import (
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountBalanceResponse represents a single account's derived balance.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Net       decimal.Decimal `json:"net"`
}

// ToAccountBalanceResponse converts a domain balance to its DTO.
func ToAccountBalanceResponse(balance *domain.AccountBalance) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID: balance.AccountID,
		Debit:     balance.Debit,
		Credit:    balance.Credit,
		Net:       balance.Net,
	}
}

// TrialBalanceRowResponse represents a row in the trial balance report.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response.
type TrialBalanceResponse struct {
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	IsBalanced bool `json:"isBalanced"`
}

// ToTrialBalanceResponse converts a domain trial balance report to its DTO.
func ToTrialBalanceResponse(report *domain.TrialBalanceReport) TrialBalanceResponse {
	response := TrialBalanceResponse{
		Rows:       make([]TrialBalanceRowResponse, len(report.Rows)),
		IsBalanced: report.IsBalanced,
	}
	for i, row := range report.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
	}
	response.Totals.Debit = report.TotalDebit
	response.Totals.Credit = report.TotalCredit
	return response
}

// AccountAmountResponse represents an account with its amount in a report.
type AccountAmountResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// BalanceSheetResponse represents the balance sheet report response.
type BalanceSheetResponse struct {
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
	} `json:"summary"`
	IsBalanced bool `json:"isBalanced"`
}

func toAccountAmountResponses(amounts []domain.AccountAmount) []AccountAmountResponse {
	res := make([]AccountAmountResponse, len(amounts))
	for i, amount := range amounts {
		res[i] = AccountAmountResponse{
			AccountID: amount.AccountID,
			Code:      amount.Code,
			Name:      amount.Name,
			Amount:    amount.NetAmount,
		}
	}
	return res
}

// ToBalanceSheetResponse converts a domain balance sheet report to its DTO.
func ToBalanceSheetResponse(report *domain.BalanceSheetReport) BalanceSheetResponse {
	response := BalanceSheetResponse{
		Assets:      toAccountAmountResponses(report.Assets),
		Liabilities: toAccountAmountResponses(report.Liabilities),
		Equity:      toAccountAmountResponses(report.Equity),
		IsBalanced:  report.IsBalanced,
	}
	response.Summary.TotalAssets = report.TotalAssets
	response.Summary.TotalLiabilities = report.TotalLiabilities
	response.Summary.TotalEquity = report.TotalEquity
	return response
}

// ProfitAndLossResponse represents the profit and loss report response.
type ProfitAndLossResponse struct {
	Period            string                     `json:"period"`
	TotalRevenue      decimal.Decimal            `json:"totalRevenue"`
	ExpenseCategories map[string]decimal.Decimal `json:"expenseCategories"`
	TotalExpenses     decimal.Decimal            `json:"totalExpenses"`
	NetIncome         decimal.Decimal            `json:"netIncome"`
	ProfitMargin      decimal.Decimal            `json:"profitMargin"`
}

// ToProfitAndLossResponse converts a domain P&L report to its DTO.
func ToProfitAndLossResponse(report *domain.ProfitAndLossReport, period domain.ReportPeriod) ProfitAndLossResponse {
	return ProfitAndLossResponse{
		Period:            string(period),
		TotalRevenue:      report.TotalRevenue,
		ExpenseCategories: report.ExpenseCategories,
		TotalExpenses:     report.TotalExpenses,
		NetIncome:         report.NetIncome,
		ProfitMargin:      report.ProfitMargin,
	}
}
