package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"bank_ledger/internal/domain"

	"github.com/pkg/errors"
)

var ErrInvalidSignature = errors.New("invalid signature")

// Signer produces HMAC-SHA256 receipts for completed transfers.
type Signer struct {
	secretKey []byte
	logger    *slog.Logger
}

func NewSigner(secretKey string, logger *slog.Logger) *Signer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Signer{
		secretKey: []byte(secretKey),
		logger:    logger,
	}
}

func (s *Signer) Sign(data []byte) string {
	mac := hmac.New(sha256.New, s.secretKey)
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *Signer) Verify(data []byte, signature string) error {
	expectedSignature := s.Sign(data)

	if !hmac.Equal([]byte(expectedSignature), []byte(signature)) {
		s.logger.Warn("Signature verification failed",
			slog.String("expected", expectedSignature),
			slog.String("received", signature))
		return ErrInvalidSignature
	}

	return nil
}

func (s *Signer) SignTransfer(transfer *domain.Transfer) string {
	return s.Sign(transferPayload(transfer))
}

func (s *Signer) VerifyTransfer(transfer *domain.Transfer) error {
	if err := s.Verify(transferPayload(transfer), transfer.Signature); err != nil {
		return errors.WithMessagef(err, "transfer %s", transfer.ID)
	}
	return nil
}

// transferPayload is id:origin:destination:amount:created-at-unix-nanos.
func transferPayload(transfer *domain.Transfer) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s:%s:%d",
		transfer.ID,
		transfer.OriginID,
		transfer.DestinationID,
		transfer.Amount.String(),
		transfer.CreatedAt.UnixNano()))
}
