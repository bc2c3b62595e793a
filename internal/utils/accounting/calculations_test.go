package accounting_test

import (
	"testing"
	"time"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func entry(id string, lines ...domain.JournalLine) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:   id,
		EntryDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Lines:     lines,
	}
}

func debitLine(accountID string, amount int64) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Debit: dec(amount), Credit: decimal.Zero}
}

func creditLine(accountID string, amount int64) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Debit: decimal.Zero, Credit: dec(amount)}
}

func TestComputeBalance_AssetNetsToDebitSide(t *testing.T) {
	entries := []domain.JournalEntry{
		entry("e1", debitLine("cash", 10000), creditLine("capital", 10000)),
		entry("e2", debitLine("capital", 2000), creditLine("cash", 2000)),
	}

	balance, err := accounting.ComputeBalance("cash", domain.Asset, entries)
	require.NoError(t, err)

	assert.True(t, balance.Debit.Equal(dec(10000)), "debit total should be 10000, got %s", balance.Debit)
	assert.True(t, balance.Credit.Equal(dec(2000)), "credit total should be 2000, got %s", balance.Credit)
	assert.True(t, balance.Net.Equal(dec(8000)), "net should be 8000, got %s", balance.Net)
}

func TestComputeBalance_EquityNetsToCreditSide(t *testing.T) {
	entries := []domain.JournalEntry{
		entry("e1", debitLine("cash", 10000), creditLine("capital", 10000)),
		entry("e2", debitLine("capital", 2000), creditLine("cash", 2000)),
	}

	balance, err := accounting.ComputeBalance("capital", domain.Equity, entries)
	require.NoError(t, err)
	assert.True(t, balance.Net.Equal(dec(8000)))
}

func TestComputeBalance_NoMatchingLinesIsZero(t *testing.T) {
	entries := []domain.JournalEntry{
		entry("e1", debitLine("cash", 500), creditLine("capital", 500)),
	}

	balance, err := accounting.ComputeBalance("inventory", domain.Asset, entries)
	require.NoError(t, err)
	assert.True(t, balance.Debit.IsZero())
	assert.True(t, balance.Credit.IsZero())
	assert.True(t, balance.Net.IsZero())
}

func TestComputeBalance_NegativeNetFloorsAtZero(t *testing.T) {
	// An asset driven below zero reports a zero net balance.
	entries := []domain.JournalEntry{
		entry("e1", debitLine("capital", 300), creditLine("cash", 300)),
	}

	balance, err := accounting.ComputeBalance("cash", domain.Asset, entries)
	require.NoError(t, err)
	assert.True(t, balance.Net.IsZero())
	assert.True(t, balance.Credit.Equal(dec(300)))
}

func TestComputeBalance_UnknownAccountTypeIsRejected(t *testing.T) {
	_, err := accounting.ComputeBalance("cash", domain.AccountType("SUSPENSE"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account type")
}

func TestComputeBalance_Deterministic(t *testing.T) {
	entries := []domain.JournalEntry{
		entry("e1", debitLine("cash", 10000), creditLine("capital", 10000)),
		entry("e2", debitLine("capital", 2000), creditLine("cash", 2000)),
		entry("e3", debitLine("cash", 750), creditLine("sales", 750)),
	}
	reversed := []domain.JournalEntry{entries[2], entries[1], entries[0]}

	first, err := accounting.ComputeBalance("cash", domain.Asset, entries)
	require.NoError(t, err)
	second, err := accounting.ComputeBalance("cash", domain.Asset, entries)
	require.NoError(t, err)
	reordered, err := accounting.ComputeBalance("cash", domain.Asset, reversed)
	require.NoError(t, err)

	assert.True(t, first.Net.Equal(second.Net), "repeated calls must agree")
	assert.True(t, first.Net.Equal(reordered.Net), "entry order must not matter")
	assert.True(t, first.Debit.Equal(reordered.Debit))
	assert.True(t, first.Credit.Equal(reordered.Credit))
}

func TestValidateEntryBalance_AcceptsBalancedLines(t *testing.T) {
	lines := []domain.JournalLine{debitLine("cash", 500), creditLine("sales", 500)}
	assert.NoError(t, accounting.ValidateEntryBalance(lines))
}

func TestValidateEntryBalance_RejectsUnbalancedLines(t *testing.T) {
	lines := []domain.JournalLine{debitLine("cash", 500), creditLine("sales", 400)}
	err := accounting.ValidateEntryBalance(lines)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not balance")
}

func TestValidateEntryBalance_RejectsSingleLine(t *testing.T) {
	err := accounting.ValidateEntryBalance([]domain.JournalLine{debitLine("cash", 100)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least two lines")
}

func TestValidateEntryBalance_RejectsNegativeAmounts(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "cash", Debit: dec(-100), Credit: decimal.Zero},
		{AccountID: "sales", Debit: decimal.Zero, Credit: dec(-100)},
	}
	err := accounting.ValidateEntryBalance(lines)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestValidateEntryBalance_BothSidesSummedIndependently(t *testing.T) {
	// A line may carry both a debit and a credit; the columns are summed
	// independently rather than per line.
	lines := []domain.JournalLine{
		{AccountID: "cash", Debit: dec(300), Credit: dec(100)},
		{AccountID: "sales", Debit: decimal.Zero, Credit: dec(200)},
	}
	assert.NoError(t, accounting.ValidateEntryBalance(lines))
}
