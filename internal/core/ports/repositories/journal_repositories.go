package repositories

import (
	"context"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
)

// JournalRepository defines persistence operations for the append-only
// journal. Entries are immutable; there is no update or delete.
type JournalRepository interface {
	// SaveEntry inserts a new journal entry with its lines atomically.
	// Callers must have validated the balance invariant first.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// FindEntryByID retrieves a single entry with its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries returns the entire journal history with lines. Balance
	// derivation always scans the full history, so there is no pagination.
	ListEntries(ctx context.Context) ([]domain.JournalEntry, error)
}
