package domain

import (
	"github.com/shopspring/decimal"
)

// AccountBalance holds the per-account debit/credit totals derived from the
// full journal history, never persisted.
type AccountBalance struct {
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`  // Sum of all debit postings
	Credit    decimal.Decimal `json:"credit"` // Sum of all credit postings
	Net       decimal.Decimal `json:"net"`    // Normal-balance side net, floored at zero
}

// TrialBalanceRow represents a single row in a trial balance report.
// Exactly one of Debit/Credit carries the account's net balance.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport is a trial balance with column totals and the
// balance-check result.
type TrialBalanceReport struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// BalanceSheetReport groups positive-balance accounts into the three
// balance sheet buckets. Revenue and expense accounts are omitted; the
// system performs no closing-entry step.
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	IsBalanced       bool            `json:"isBalanced"`
}

// ReportPeriod selects the date range for the profit and loss report,
// evaluated against the wall clock at call time.
type ReportPeriod string

const (
	PeriodAll   ReportPeriod = "all"
	PeriodMonth ReportPeriod = "month"
	PeriodYear  ReportPeriod = "year"
)

// IsValid reports whether p is a known report period.
func (p ReportPeriod) IsValid() bool {
	switch p {
	case PeriodAll, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// ProfitAndLossReport aggregates raw sale and expense records. It does not
// read the journal, so its revenue need not match any REVENUE account balance.
type ProfitAndLossReport struct {
	TotalRevenue      decimal.Decimal            `json:"totalRevenue"`
	ExpenseCategories map[string]decimal.Decimal `json:"expenseCategories"`
	TotalExpenses     decimal.Decimal            `json:"totalExpenses"`
	NetIncome         decimal.Decimal            `json:"netIncome"`
	ProfitMargin      decimal.Decimal            `json:"profitMargin"` // Percentage; zero when revenue is zero
}
