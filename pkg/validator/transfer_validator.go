package validator

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAccount    = errors.New("invalid account")
	ErrSameAccount       = errors.New("cannot transfer to same account")
	ErrDuplicateTransfer = errors.New("duplicate transfer")
)

// TransferRequest is what a caller asks the processor to move. RequestID is
// the caller's idempotency key; an empty RequestID is never deduplicated.
type TransferRequest struct {
	RequestID     string
	OriginID      uuid.UUID
	DestinationID uuid.UUID
	Amount        decimal.Decimal
}

// TransferValidator checks the shape of a request. It leaves the amount
// alone: the accounts accept any decimal.
type TransferValidator struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewTransferValidator() *TransferValidator {
	return &TransferValidator{
		seen: make(map[string]struct{}),
	}
}

func (v *TransferValidator) ValidateTransfer(req TransferRequest) error {
	if req.OriginID == uuid.Nil || req.DestinationID == uuid.Nil {
		return errors.Wrapf(ErrInvalidAccount, "origin %s, destination %s", req.OriginID, req.DestinationID)
	}
	if req.OriginID == req.DestinationID {
		return errors.Wrapf(ErrSameAccount, "account %s", req.OriginID)
	}

	if req.RequestID == "" {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.seen[req.RequestID]; ok {
		return errors.Wrapf(ErrDuplicateTransfer, "request %s", req.RequestID)
	}
	v.seen[req.RequestID] = struct{}{}

	return nil
}
