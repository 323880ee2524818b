package processor

import (
	"context"
	"log/slog"
	"time"

	"bank_ledger/internal/domain"
	"bank_ledger/internal/repository"
	"bank_ledger/pkg/crypto"
	"bank_ledger/pkg/metrics"
	"bank_ledger/pkg/validator"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	reasonValidation        = "validation"
	reasonNotFound          = "not_found"
	reasonInsufficientFunds = "insufficient_funds"
	reasonInternal          = "internal"
)

type TransferRequest = validator.TransferRequest

// TransferProcessor runs transfers for one bank and keeps a journal of
// every attempt that got past validation.
type TransferProcessor struct {
	bank         *domain.Bank
	accountRepo  repository.AccountRepository
	transferRepo repository.TransferRepository
	validator    *validator.TransferValidator
	signer       *crypto.Signer
	metrics      *metrics.MetricsCollector
	logger       *slog.Logger
}

func NewTransferProcessor(
	bank *domain.Bank,
	accountRepo repository.AccountRepository,
	transferRepo repository.TransferRepository,
	signer *crypto.Signer,
	metricsCollector *metrics.MetricsCollector,
	logger *slog.Logger,
) *TransferProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	if metricsCollector == nil {
		metricsCollector = metrics.NewMetricsCollector(logger)
	}

	return &TransferProcessor{
		bank:         bank,
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		validator:    validator.NewTransferValidator(),
		signer:       signer,
		metrics:      metricsCollector,
		logger:       logger,
	}
}

func (p *TransferProcessor) Bank() *domain.Bank {
	return p.bank
}

// OpenAccount creates an account, registers it with the bank and stores it.
func (p *TransferProcessor) OpenAccount(ctx context.Context, owner string, balance decimal.Decimal) (*domain.Account, error) {
	account := domain.NewAccount(owner, balance)

	if err := p.accountRepo.Save(ctx, account); err != nil {
		return nil, errors.WithMessage(err, "failed to save account")
	}
	p.bank.AddAccount(account)
	p.metrics.UpdateAccountBalance(account)

	p.logger.InfoContext(ctx, "Account opened",
		slog.String("account_id", account.ID().String()),
		slog.String("owner", owner),
		slog.String("balance", balance.String()),
		slog.String("bank", p.bank.Name()))
	return account, nil
}

func (p *TransferProcessor) ProcessTransfer(ctx context.Context, req TransferRequest) (*domain.Transfer, error) {
	startTime := time.Now()

	transfer, reason, err := p.processTransfer(ctx, req)
	p.metrics.RecordTransfer(time.Since(startTime), reason)

	if err != nil {
		p.logger.ErrorContext(ctx, "Transfer failed",
			slog.String("origin_account", req.OriginID.String()),
			slog.String("destination_account", req.DestinationID.String()),
			slog.String("amount", req.Amount.String()),
			slog.String("reason", reason),
			slog.String("error", err.Error()))
		return transfer, err
	}

	p.logger.InfoContext(ctx, "Transfer completed successfully",
		slog.String("transfer_id", transfer.ID.String()),
		slog.Duration("duration", time.Since(startTime)))
	return transfer, nil
}

func (p *TransferProcessor) processTransfer(ctx context.Context, req TransferRequest) (*domain.Transfer, string, error) {
	if err := p.validator.ValidateTransfer(req); err != nil {
		return nil, reasonValidation, errors.WithMessage(err, "validation failed")
	}

	origin, err := p.accountRepo.GetByID(ctx, req.OriginID)
	if err != nil {
		return nil, reasonNotFound, errors.WithMessage(err, "failed to get origin account")
	}
	destination, err := p.accountRepo.GetByID(ctx, req.DestinationID)
	if err != nil {
		return nil, reasonNotFound, errors.WithMessage(err, "failed to get destination account")
	}

	p.logger.InfoContext(ctx, "Processing transfer",
		slog.String("origin_account", origin.ID().String()),
		slog.String("destination_account", destination.ID().String()),
		slog.String("amount", req.Amount.String()))

	transfer := domain.NewTransfer(origin.ID(), destination.ID(), req.Amount)
	if err := p.transferRepo.Save(ctx, transfer); err != nil {
		return nil, reasonInternal, errors.WithMessage(err, "failed to journal transfer")
	}

	if err := p.bank.Transfer(origin, destination, req.Amount); err != nil {
		transfer.Fail(err.Error())
		if updateErr := p.transferRepo.UpdateStatus(ctx, transfer.ID, transfer.Status); updateErr != nil {
			p.logger.ErrorContext(ctx, "Failed to mark transfer as failed",
				slog.String("transfer_id", transfer.ID.String()),
				slog.String("error", updateErr.Error()))
		}
		return transfer, failureReason(err), errors.Wrapf(err, "transfer %s", transfer.ID)
	}

	transfer.Complete()
	transfer.Signature = p.signer.SignTransfer(transfer)
	if err := p.transferRepo.UpdateStatus(ctx, transfer.ID, transfer.Status); err != nil {
		return transfer, reasonInternal, errors.WithMessage(err, "failed to mark transfer as completed")
	}

	p.metrics.UpdateAccountBalance(origin)
	p.metrics.UpdateAccountBalance(destination)
	return transfer, "", nil
}

func (p *TransferProcessor) GetTransfer(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	return p.transferRepo.GetByID(ctx, id)
}

// History lists an account's journaled transfers, newest first. An account
// with no transfers has an empty history.
func (p *TransferProcessor) History(ctx context.Context, accountID uuid.UUID) ([]*domain.Transfer, error) {
	if _, err := p.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	transfers, err := p.transferRepo.GetByAccountID(ctx, accountID, 0, 0)
	if errors.Is(err, repository.ErrNotFound) {
		return []*domain.Transfer{}, nil
	}
	return transfers, err
}

// VerifyReceipt checks the signature of a completed transfer.
func (p *TransferProcessor) VerifyReceipt(ctx context.Context, id uuid.UUID) error {
	transfer, err := p.transferRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if transfer.Status != domain.TransferCompleted {
		return errors.Errorf("transfer %s is %s", id, transfer.Status)
	}
	return p.signer.VerifyTransfer(transfer)
}

func failureReason(err error) string {
	if errors.Is(err, domain.ErrInsufficientFunds) {
		return reasonInsufficientFunds
	}
	return reasonInternal
}
