package repositories

import (
	"context"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
)

// AccountRepository defines persistence operations for the chart of accounts.
type AccountRepository interface {
	// SaveAccount inserts a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// FindAccountByID retrieves an account by its ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs
	// are simply absent from the result.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts returns the full chart of accounts. The scale this system
	// targets does not need pagination.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// UpdateAccount persists changes to name, description or active flag.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account from the registry. Historical journal
	// lines referencing it are left in place.
	DeleteAccount(ctx context.Context, accountID string) error
}
