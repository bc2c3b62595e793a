package services

import (
	"context"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
)

// ReportingService defines operations for generating financial reports.
// All reports are recomputed from the full journal history on every call;
// there is no running-balance cache at this scale.
type ReportingService interface {
	// AccountBalance derives a single account's balance from the journal.
	AccountBalance(ctx context.Context, accountID string) (*domain.AccountBalance, error)

	// TrialBalance generates the trial balance and its balance check.
	TrialBalance(ctx context.Context) (*domain.TrialBalanceReport, error)

	// BalanceSheet generates the balance sheet and the accounting-equation check.
	BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error)

	// ProfitAndLoss aggregates raw sales and expenses for the given period.
	ProfitAndLoss(ctx context.Context, period domain.ReportPeriod) (*domain.ProfitAndLossReport, error)
}
