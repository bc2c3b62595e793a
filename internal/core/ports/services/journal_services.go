package services

import (
	"context"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/dto"
)

// JournalService defines operations on the append-only journal.
type JournalService interface {
	// CreateEntry validates the double-entry invariant and persists a new
	// journal entry. Unbalanced entries are rejected before any state change.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context) ([]domain.JournalEntry, error)
}
