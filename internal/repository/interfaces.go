package repository

import (
	"context"

	"bank_ledger/internal/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type AccountRepository interface {
	Save(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByOwner(ctx context.Context, owner string) ([]*domain.Account, error)
	GetAll(ctx context.Context) ([]*domain.Account, error)
}

type TransferRepository interface {
	Save(ctx context.Context, transfer *domain.Transfer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transfer, error)
	GetByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*domain.Transfer, error)
	GetByStatus(ctx context.Context, status domain.TransferStatus) ([]*domain.Transfer, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TransferStatus) error
}

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate entry")
)
