package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/apperrors"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	portsrepo "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/repositories"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for the journal.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

// SaveEntry inserts an entry and its lines in one transaction so a partial
// entry can never appear in the journal.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op after commit

	entryQuery := `
		INSERT INTO journal_entries (entry_id, entry_date, reference, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.EntryDate,
		entry.Reference,
		entry.Description,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal entry %s already exists", apperrors.ErrDuplicate, entry.EntryID)
		}
		return fmt.Errorf("failed to save journal entry %s: %w", entry.EntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_lines (entry_id, line_number, account_id, debit, credit)
		VALUES ($1, $2, $3, $4, $5);
	`
	for i, line := range entry.Lines {
		if _, err := tx.Exec(ctx, lineQuery, entry.EntryID, i, line.AccountID, line.Debit, line.Credit); err != nil {
			return fmt.Errorf("failed to save journal line %d of entry %s: %w", i, entry.EntryID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a single entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entryQuery := `
		SELECT entry_id, entry_date, reference, description, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE entry_id = $1;
	`
	var entry domain.JournalEntry
	err := r.Pool.QueryRow(ctx, entryQuery, entryID).Scan(
		&entry.EntryID,
		&entry.EntryDate,
		&entry.Reference,
		&entry.Description,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lineQuery := `
		SELECT account_id, debit, credit
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, lineQuery, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of entry %s: %w", entryID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.JournalLine
		if err := rows.Scan(&line.AccountID, &line.Debit, &line.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		entry.Lines = append(entry.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal lines: %w", err)
	}
	return &entry, nil
}

// ListEntries returns the journal history with lines, oldest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	entryQuery := `
		SELECT entry_id, entry_date, reference, description, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		ORDER BY entry_date, entry_id;
	`
	rows, err := r.Pool.Query(ctx, entryQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	index := make(map[string]int)
	for rows.Next() {
		var entry domain.JournalEntry
		err := rows.Scan(
			&entry.EntryID,
			&entry.EntryDate,
			&entry.Reference,
			&entry.Description,
			&entry.CreatedAt,
			&entry.CreatedBy,
			&entry.LastUpdatedAt,
			&entry.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		index[entry.EntryID] = len(entries)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entries: %w", err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	lineQuery := `
		SELECT entry_id, account_id, debit, credit
		FROM journal_lines
		ORDER BY entry_id, line_number;
	`
	lineRows, err := r.Pool.Query(ctx, lineQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var entryID string
		var line domain.JournalLine
		if err := lineRows.Scan(&entryID, &line.AccountID, &line.Debit, &line.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		if i, ok := index[entryID]; ok {
			entries[i].Lines = append(entries[i].Lines, line)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal lines: %w", err)
	}
	return entries, nil
}
