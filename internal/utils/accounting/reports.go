package accounting

import (
	"fmt"
	"sort"
	"time"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BuildTrialBalance computes every account's net balance and lays it out in
// one-sided debit/credit columns. Accounts with a zero balance are omitted.
// Rows are sorted by account code ascending for deterministic output.
//
// If every stored entry balanced at creation time the column totals must
// match; an imbalance here is a consistency audit failure, surfaced through
// IsBalanced rather than an error.
func BuildTrialBalance(accounts []domain.Account, entries []domain.JournalEntry) (*domain.TrialBalanceReport, error) {
	report := &domain.TrialBalanceReport{
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, acc := range accounts {
		balance, err := ComputeBalance(acc.AccountID, acc.AccountType, entries)
		if err != nil {
			return nil, err
		}
		if balance.Net.IsZero() {
			continue
		}

		row := domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			AccountName: acc.Name,
			AccountType: acc.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		switch acc.AccountType {
		case domain.Asset, domain.ExpenseType:
			row.Debit = balance.Net
		default:
			row.Credit = balance.Net
		}

		report.Rows = append(report.Rows, row)
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].Code < report.Rows[j].Code
	})

	report.IsBalanced = withinTolerance(report.TotalDebit, report.TotalCredit)
	return report, nil
}

// BuildBalanceSheet groups accounts into the asset, liability and equity
// buckets and checks the accounting equation. Revenue and expense accounts
// are excluded; the system performs no closing-entry step.
func BuildBalanceSheet(accounts []domain.Account, entries []domain.JournalEntry) (*domain.BalanceSheetReport, error) {
	report := &domain.BalanceSheetReport{
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}

	for _, acc := range accounts {
		balance, err := ComputeBalance(acc.AccountID, acc.AccountType, entries)
		if err != nil {
			return nil, err
		}
		if !balance.Net.IsPositive() {
			continue
		}

		amount := domain.AccountAmount{
			AccountID: acc.AccountID,
			Code:      acc.Code,
			Name:      acc.Name,
			NetAmount: balance.Net,
		}
		switch acc.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, amount)
			report.TotalAssets = report.TotalAssets.Add(balance.Net)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, amount)
			report.TotalLiabilities = report.TotalLiabilities.Add(balance.Net)
		case domain.Equity:
			report.Equity = append(report.Equity, amount)
			report.TotalEquity = report.TotalEquity.Add(balance.Net)
		}
	}

	sortAccountAmounts(report.Assets)
	sortAccountAmounts(report.Liabilities)
	sortAccountAmounts(report.Equity)

	report.IsBalanced = withinTolerance(report.TotalAssets, report.TotalLiabilities.Add(report.TotalEquity))
	return report, nil
}

func sortAccountAmounts(amounts []domain.AccountAmount) {
	sort.Slice(amounts, func(i, j int) bool {
		return amounts[i].Code < amounts[j].Code
	})
}

// BuildProfitAndLoss aggregates raw sale and expense records for the given
// period, evaluated against now. It deliberately does not read the journal;
// sales are not necessarily posted as journal entries in this system, so
// this report need not reconcile with any REVENUE account balance.
func BuildProfitAndLoss(sales []domain.Sale, expenses []domain.Expense, period domain.ReportPeriod, now time.Time) (*domain.ProfitAndLossReport, error) {
	periodStart, err := periodStartTime(period, now)
	if err != nil {
		return nil, err
	}

	totalRevenue := decimal.Zero
	for _, sale := range sales {
		if sale.SaleDate.Before(periodStart) {
			continue
		}
		totalRevenue = totalRevenue.Add(sale.Amount)
	}

	categories := make(map[string]decimal.Decimal)
	totalExpenses := decimal.Zero
	for _, expense := range expenses {
		if expense.ExpenseDate.Before(periodStart) {
			continue
		}
		category := expense.Category
		if category == "" {
			category = domain.DefaultExpenseCategory
		}
		categories[category] = categories[category].Add(expense.Amount)
		totalExpenses = totalExpenses.Add(expense.Amount)
	}

	netIncome := totalRevenue.Sub(totalExpenses)
	profitMargin := decimal.Zero
	if totalRevenue.IsPositive() {
		profitMargin = netIncome.Div(totalRevenue).Mul(decimal.NewFromInt(100))
	}

	return &domain.ProfitAndLossReport{
		TotalRevenue:      totalRevenue,
		ExpenseCategories: categories,
		TotalExpenses:     totalExpenses,
		NetIncome:         netIncome,
		ProfitMargin:      profitMargin,
	}, nil
}

// periodStartTime returns the inclusive lower bound for the report period.
func periodStartTime(period domain.ReportPeriod, now time.Time) (time.Time, error) {
	switch period {
	case domain.PeriodAll:
		return time.Time{}, nil
	case domain.PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	case domain.PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), nil
	default:
		return time.Time{}, fmt.Errorf("unknown report period '%s'", period)
	}
}
