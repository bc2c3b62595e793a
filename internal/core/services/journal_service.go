package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/apperrors"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	portsrepo "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/repositories"
	portssvc "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/services"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/dto"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/utils/accounting"
)

var (
	ErrEntryUnbalanced    = errors.New("journal entry does not balance")
	ErrEntryMinLines      = errors.New("journal entry must have at least two lines")
	ErrEntryMinAccounts   = errors.New("journal entry must affect at least two different accounts")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrDescriptionMissing = errors.New("journal entry description is required")
)

// journalService provides append-only journal operations.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository) portssvc.JournalService {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalService = (*journalService)(nil)

// CreateEntry creates a new journal entry after validating the double-entry
// invariant. Unbalanced entries are rejected and nothing is stored.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if len(req.Lines) < 2 {
		return nil, ErrEntryMinLines
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionMissing
	}

	accountSet := make(map[string]bool)
	for _, line := range req.Lines {
		accountSet[line.AccountID] = true
	}
	if len(accountSet) < 2 {
		return nil, ErrEntryMinAccounts
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(accountSet))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalLine{
			AccountID: lineReq.AccountID,
			Debit:     lineReq.Debit,
			Credit:    lineReq.Credit,
		}
	}
	for id := range accountSet {
		accountIDs = append(accountIDs, id)
	}

	// Balance check before touching the store.
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEntryUnbalanced, err.Error())
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for journal entry creation")
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s", ErrAccountInactive, id)
		}
	}

	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		reference = generateReference(req.Date, entryID)
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   req.Date,
		Reference:   reference,
		Description: req.Description,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entryID),
		slog.String("reference", reference),
		slog.Int("line_count", len(lines)))
	return &entry, nil
}

// GetEntryByID retrieves a journal entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	return entry, nil
}

// ListEntries returns the entire journal history.
func (s *journalService) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.ListEntries(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, err
	}
	return entries, nil
}

// generateReference builds the default reference for entries created
// without one, e.g. "JE-20260901-1a2b3c4d".
func generateReference(date time.Time, entryID string) string {
	short := entryID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("JE-%s-%s", date.Format("20060102"), short)
}
