package services

import (
	"context"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/dto"
)

// AccountService defines operations on the chart of accounts.
type AccountService interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
}
