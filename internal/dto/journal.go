package dto

import (
	"time"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is a single posting in a journal entry request.
// Exactly one of debit/credit is conventionally nonzero; both sides are
// accepted and summed independently.
type JournalLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateJournalEntryRequest defines the data needed to create a journal entry.
type CreateJournalEntryRequest struct {
	Date        time.Time            `json:"date" binding:"required"`
	Reference   string               `json:"reference"` // Generated if absent
	Description string               `json:"description" binding:"required"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse mirrors a stored journal line.
type JournalLineResponse struct {
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	Date        time.Time             `json:"date"`
	Reference   string                `json:"reference"`
	Description string                `json:"description"`
	Lines       []JournalLineResponse `json:"lines"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   string                `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(entry.Lines))
	for i, line := range entry.Lines {
		lines[i] = JournalLineResponse{
			AccountID: line.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
		}
	}
	return JournalEntryResponse{
		EntryID:     entry.EntryID,
		Date:        entry.EntryDate,
		Reference:   entry.Reference,
		Description: entry.Description,
		Lines:       lines,
		CreatedAt:   entry.CreatedAt,
		CreatedBy:   entry.CreatedBy,
	}
}

// ToListJournalEntryResponse converts a slice of entries to DTOs.
func ToListJournalEntryResponse(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i, entry := range entries {
		res[i] = ToJournalEntryResponse(&entry)
	}
	return res
}
