// Package csvexport renders assembled reports as CSV. This is a
// presentation concern; the ledger engine itself never touches CSV.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
)

// sortedCategories returns expense category names in a stable order.
func sortedCategories(report *domain.ProfitAndLossReport) []string {
	names := make([]string, 0, len(report.ExpenseCategories))
	for name := range report.ExpenseCategories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteTrialBalance writes a trial balance report, one row per account plus
// a totals row.
func WriteTrialBalance(w io.Writer, report *domain.TrialBalanceReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"code", "account", "type", "debit", "credit"}); err != nil {
		return fmt.Errorf("writing trial balance header: %w", err)
	}
	for _, row := range report.Rows {
		record := []string{
			row.Code,
			row.AccountName,
			string(row.AccountType),
			row.Debit.StringFixed(2),
			row.Credit.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing trial balance row: %w", err)
		}
	}
	totals := []string{"", "TOTAL", "", report.TotalDebit.StringFixed(2), report.TotalCredit.StringFixed(2)}
	if err := cw.Write(totals); err != nil {
		return fmt.Errorf("writing trial balance totals: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// WriteBalanceSheet writes the three balance sheet sections with their totals.
func WriteBalanceSheet(w io.Writer, report *domain.BalanceSheetReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"section", "code", "account", "amount"}); err != nil {
		return fmt.Errorf("writing balance sheet header: %w", err)
	}

	sections := []struct {
		name     string
		accounts []domain.AccountAmount
		total    string
	}{
		{"Assets", report.Assets, report.TotalAssets.StringFixed(2)},
		{"Liabilities", report.Liabilities, report.TotalLiabilities.StringFixed(2)},
		{"Equity", report.Equity, report.TotalEquity.StringFixed(2)},
	}
	for _, section := range sections {
		for _, acc := range section.accounts {
			if err := cw.Write([]string{section.name, acc.Code, acc.Name, acc.NetAmount.StringFixed(2)}); err != nil {
				return fmt.Errorf("writing balance sheet row: %w", err)
			}
		}
		if err := cw.Write([]string{section.name, "", "TOTAL", section.total}); err != nil {
			return fmt.Errorf("writing balance sheet total: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteProfitAndLoss writes the P&L summary with one row per expense category.
func WriteProfitAndLoss(w io.Writer, report *domain.ProfitAndLossReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"item", "amount"}); err != nil {
		return fmt.Errorf("writing profit and loss header: %w", err)
	}
	if err := cw.Write([]string{"Total Revenue", report.TotalRevenue.StringFixed(2)}); err != nil {
		return fmt.Errorf("writing revenue row: %w", err)
	}
	for _, category := range sortedCategories(report) {
		amount := report.ExpenseCategories[category]
		if err := cw.Write([]string{category, amount.StringFixed(2)}); err != nil {
			return fmt.Errorf("writing expense category row: %w", err)
		}
	}
	rows := [][]string{
		{"Total Expenses", report.TotalExpenses.StringFixed(2)},
		{"Net Income", report.NetIncome.StringFixed(2)},
		{"Profit Margin %", report.ProfitMargin.StringFixed(2)},
	}
	for _, record := range rows {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing profit and loss summary: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
