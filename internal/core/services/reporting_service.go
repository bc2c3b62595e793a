package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	portsrepo "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/repositories"
	portssvc "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/services"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/utils/accounting"
)

// reportingService assembles financial reports from full snapshots of the
// account registry, the journal, and the raw sales/expense records.
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
	journalRepo portsrepo.JournalRepository
	salesRepo   portsrepo.SalesRepository
	expenseRepo portsrepo.ExpenseRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	accountRepo portsrepo.AccountRepository,
	journalRepo portsrepo.JournalRepository,
	salesRepo portsrepo.SalesRepository,
	expenseRepo portsrepo.ExpenseRepository,
) portssvc.ReportingService {
	return &reportingService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		salesRepo:   salesRepo,
		expenseRepo: expenseRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// AccountBalance derives a single account's balance from the full journal
// history.
func (s *reportingService) AccountBalance(ctx context.Context, accountID string) (*domain.AccountBalance, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries, err := s.journalRepo.ListEntries(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve journal entries for balance computation")
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	balance, err := accounting.ComputeBalance(account.AccountID, account.AccountType, entries)
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// TrialBalance generates the trial balance over the full journal history.
func (s *reportingService) TrialBalance(ctx context.Context) (*domain.TrialBalanceReport, error) {
	accounts, entries, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	report, err := accounting.BuildTrialBalance(accounts, entries)
	if err != nil {
		s.LogError(ctx, err, "Failed to build trial balance")
		return nil, err
	}

	if !report.IsBalanced {
		// Every stored entry balanced at creation time, so an imbalance here
		// means a calculator bug or an entry that slipped past the check.
		// Surface loudly but keep serving the report.
		s.LogWarn(ctx, "TRIAL BALANCE OUT OF BALANCE",
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()))
	}

	s.LogInfo(ctx, "Trial balance generated", slog.Int("row_count", len(report.Rows)))
	return report, nil
}

// BalanceSheet generates the balance sheet over the full journal history.
func (s *reportingService) BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error) {
	accounts, entries, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	report, err := accounting.BuildBalanceSheet(accounts, entries)
	if err != nil {
		s.LogError(ctx, err, "Failed to build balance sheet")
		return nil, err
	}

	if !report.IsBalanced {
		s.LogWarn(ctx, "BALANCE SHEET VIOLATES ACCOUNTING EQUATION",
			slog.String("total_assets", report.TotalAssets.String()),
			slog.String("total_liabilities", report.TotalLiabilities.String()),
			slog.String("total_equity", report.TotalEquity.String()))
	}

	s.LogInfo(ctx, "Balance sheet generated",
		slog.Int("asset_accounts", len(report.Assets)),
		slog.Int("liability_accounts", len(report.Liabilities)),
		slog.Int("equity_accounts", len(report.Equity)))
	return report, nil
}

// ProfitAndLoss aggregates raw sales and expenses for the given period.
// The period boundary is evaluated against the wall clock at call time.
func (s *reportingService) ProfitAndLoss(ctx context.Context, period domain.ReportPeriod) (*domain.ProfitAndLossReport, error) {
	sales, err := s.salesRepo.ListSales(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve sales for profit and loss")
		return nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}
	expenses, err := s.expenseRepo.ListExpenses(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve expenses for profit and loss")
		return nil, fmt.Errorf("failed to retrieve expenses: %w", err)
	}

	report, err := accounting.BuildProfitAndLoss(sales, expenses, period, time.Now())
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Profit and loss generated",
		slog.String("period", string(period)),
		slog.String("net_income", report.NetIncome.String()))
	return report, nil
}

// snapshot fetches the full chart of accounts and journal history.
func (s *reportingService) snapshot(ctx context.Context) ([]domain.Account, []domain.JournalEntry, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve accounts for report")
		return nil, nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}
	entries, err := s.journalRepo.ListEntries(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve journal entries for report")
		return nil, nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}
	return accounts, entries, nil
}
