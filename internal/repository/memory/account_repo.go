package memory

import (
	"context"
	"sync"

	"bank_ledger/internal/domain"
	"bank_ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type AccountRepository struct {
	mu         sync.RWMutex
	accounts   map[uuid.UUID]*domain.Account
	order      []uuid.UUID
	ownerIndex map[string][]uuid.UUID
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts:   make(map[uuid.UUID]*domain.Account),
		ownerIndex: make(map[string][]uuid.UUID),
	}
}

func (r *AccountRepository) Save(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.ID()]; exists {
		return errors.Wrapf(repository.ErrDuplicate, "account %s", account.ID())
	}

	r.accounts[account.ID()] = account
	r.order = append(r.order, account.ID())
	r.ownerIndex[account.Owner()] = append(r.ownerIndex[account.Owner()], account.ID())

	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.accounts[id]
	if !exists {
		return nil, errors.Wrapf(repository.ErrNotFound, "account %s", id)
	}
	return account, nil
}

func (r *AccountRepository) GetByOwner(ctx context.Context, owner string) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accountIDs, exists := r.ownerIndex[owner]
	if !exists {
		return nil, errors.Wrapf(repository.ErrNotFound, "owner %q", owner)
	}

	result := make([]*domain.Account, 0, len(accountIDs))
	for _, id := range accountIDs {
		result = append(result, r.accounts[id])
	}

	return result, nil
}

func (r *AccountRepository) GetAll(ctx context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Account, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.accounts[id])
	}

	return result, nil
}
