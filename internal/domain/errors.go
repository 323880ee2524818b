package domain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// insufficientFundsMessage is matched verbatim by callers.
const insufficientFundsMessage = "Insufficient funds"

// ErrInsufficientFunds matches every *InsufficientFundsError under errors.Is.
var ErrInsufficientFunds = errors.New(insufficientFundsMessage)

// InsufficientFundsError is returned by Debit when the amount exceeds the
// available balance.
type InsufficientFundsError struct {
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return insufficientFundsMessage
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
