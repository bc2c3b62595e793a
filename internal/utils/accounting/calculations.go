package accounting

import (
	"fmt"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance absorbs rounding drift when checking report invariants.
// Individual journal entries must still balance exactly at creation time.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// ComputeBalance derives the debit/credit totals for a single account by
// scanning every line of every journal entry. The result depends only on the
// inputs; entry order does not matter.
//
// Both sides are accumulated regardless of account type. The type only
// determines which side is reported as the net balance:
// ASSET/EXPENSE net = debit - credit, LIABILITY/EQUITY/REVENUE net = credit - debit,
// floored at zero either way.
func ComputeBalance(accountID string, accountType domain.AccountType, entries []domain.JournalEntry) (domain.AccountBalance, error) {
	debitTotal := decimal.Zero
	creditTotal := decimal.Zero

	for _, entry := range entries {
		for _, line := range entry.Lines {
			if line.AccountID != accountID {
				continue
			}
			debitTotal = debitTotal.Add(line.Debit)
			creditTotal = creditTotal.Add(line.Credit)
		}
	}

	var net decimal.Decimal
	switch accountType {
	case domain.Asset, domain.ExpenseType:
		net = debitTotal.Sub(creditTotal)
	case domain.Liability, domain.Equity, domain.Revenue:
		net = creditTotal.Sub(debitTotal)
	default:
		return domain.AccountBalance{}, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, accountID)
	}
	if net.IsNegative() {
		net = decimal.Zero
	}

	return domain.AccountBalance{
		AccountID: accountID,
		Debit:     debitTotal,
		Credit:    creditTotal,
		Net:       net,
	}, nil
}

// ValidateEntryBalance checks the creation-time invariant of a journal entry:
// every line amount is non-negative and the debit column total equals the
// credit column total exactly. Entries that fail are rejected before any
// state change.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal entry must have at least two lines")
	}

	debitTotal := decimal.Zero
	creditTotal := decimal.Zero

	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("line %d: debit and credit amounts must not be negative", i)
		}
		debitTotal = debitTotal.Add(line.Debit)
		creditTotal = creditTotal.Add(line.Credit)
	}

	if !debitTotal.Equal(creditTotal) {
		return fmt.Errorf("journal entry does not balance: debit total is %s and credit total is %s",
			debitTotal.String(), creditTotal.String())
	}

	return nil
}

// withinTolerance reports whether |a - b| < BalanceTolerance.
func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(BalanceTolerance)
}
