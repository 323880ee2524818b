package memory

import (
	"context"
	"sync"
	"time"

	"bank_ledger/internal/domain"
	"bank_ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// TransferRepository is an append-only in-memory transfer journal.
type TransferRepository struct {
	mu        sync.RWMutex
	transfers map[uuid.UUID]*domain.Transfer
	order     []uuid.UUID
	index     map[uuid.UUID][]uuid.UUID
}

func NewTransferRepository() *TransferRepository {
	return &TransferRepository{
		transfers: make(map[uuid.UUID]*domain.Transfer),
		index:     make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *TransferRepository) Save(ctx context.Context, transfer *domain.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transfers[transfer.ID]; exists {
		return errors.Wrapf(repository.ErrDuplicate, "transfer %s", transfer.ID)
	}

	transfer.UpdatedAt = time.Now()
	r.transfers[transfer.ID] = transfer
	r.order = append(r.order, transfer.ID)

	r.index[transfer.OriginID] = append(r.index[transfer.OriginID], transfer.ID)
	if transfer.DestinationID != transfer.OriginID {
		r.index[transfer.DestinationID] = append(r.index[transfer.DestinationID], transfer.ID)
	}

	return nil
}

func (r *TransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transfer, exists := r.transfers[id]
	if !exists {
		return nil, errors.Wrapf(repository.ErrNotFound, "transfer %s", id)
	}
	return transfer, nil
}

// GetByAccountID pages through an account's transfers, newest first.
func (r *TransferRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transferIDs, exists := r.index[accountID]
	if !exists {
		return nil, errors.Wrapf(repository.ErrNotFound, "account %s", accountID)
	}

	if offset < 0 {
		offset = 0
	}
	if offset >= len(transferIDs) {
		return []*domain.Transfer{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(transferIDs) {
		end = len(transferIDs)
	}

	result := make([]*domain.Transfer, 0, end-offset)
	for i := offset; i < end; i++ {
		result = append(result, r.transfers[transferIDs[len(transferIDs)-1-i]])
	}

	return result, nil
}

func (r *TransferRepository) GetByStatus(ctx context.Context, status domain.TransferStatus) ([]*domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Transfer
	for _, id := range r.order {
		if transfer := r.transfers[id]; transfer.Status == status {
			result = append(result, transfer)
		}
	}

	return result, nil
}

func (r *TransferRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TransferStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	transfer, exists := r.transfers[id]
	if !exists {
		return errors.Wrapf(repository.ErrNotFound, "transfer %s", id)
	}

	transfer.Status = status
	transfer.UpdatedAt = time.Now()

	return nil
}
