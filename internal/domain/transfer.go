package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferCompleted TransferStatus = "completed"
	TransferFailed    TransferStatus = "failed"
)

// Transfer is the journal entry for one movement of money between two
// accounts.
type Transfer struct {
	ID            uuid.UUID       `json:"id"`
	OriginID      uuid.UUID       `json:"origin_id"`
	DestinationID uuid.UUID       `json:"destination_id"`
	Amount        decimal.Decimal `json:"amount"`
	Status        TransferStatus  `json:"status"`
	FailureReason string          `json:"failure_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Signature     string          `json:"signature,omitempty"`
}

func NewTransfer(originID, destinationID uuid.UUID, amount decimal.Decimal) *Transfer {
	now := time.Now()
	return &Transfer{
		ID:            uuid.New(),
		OriginID:      originID,
		DestinationID: destinationID,
		Amount:        amount,
		Status:        TransferPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (t *Transfer) Complete() {
	t.Status = TransferCompleted
	t.UpdatedAt = time.Now()
}

func (t *Transfer) Fail(reason string) {
	t.Status = TransferFailed
	t.FailureReason = reason
	t.UpdatedAt = time.Now()
}

// Involves reports whether the account is either side of the transfer.
func (t *Transfer) Involves(accountID uuid.UUID) bool {
	return t.OriginID == accountID || t.DestinationID == accountID
}
