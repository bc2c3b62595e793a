package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine is a single posting within a journal entry, affecting one account.
// Exactly one of Debit/Credit is expected to be nonzero, but both sides are
// summed independently wherever lines are aggregated.
type JournalLine struct {
	AccountID string          `json:"accountID"` // FK -> Account.accountID (Not Null)
	Debit     decimal.Decimal `json:"debit"`     // Non-negative
	Credit    decimal.Decimal `json:"credit"`    // Non-negative
}

// JournalEntry represents a single, balanced financial event composed of
// multiple lines. Entries are immutable once stored.
type JournalEntry struct {
	EntryID     string        `json:"entryID"`     // Primary Key (UUID)
	EntryDate   time.Time     `json:"entryDate"`   // Date the event occurred
	Reference   string        `json:"reference"`   // Generated if absent, e.g. "JE-20260901-a1b2c3"
	Description string        `json:"description"` // Nullable user description
	Lines       []JournalLine `json:"lines"`
	AuditFields
}

// DebitTotal sums the debit side of all lines.
func (e JournalEntry) DebitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// CreditTotal sums the credit side of all lines.
func (e JournalEntry) CreditTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}
	return total
}
