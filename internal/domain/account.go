package domain

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is an owner with a decimal balance. Accounts are compared by
// identity: two accounts with the same owner and balance are different
// accounts. Always pass *Account around.
type Account struct {
	mu      sync.RWMutex
	id      uuid.UUID
	owner   string
	balance decimal.Decimal
	bank    *Bank
}

// NewAccount does not reject a negative opening balance.
func NewAccount(owner string, balance decimal.Decimal) *Account {
	return &Account{
		id:      uuid.New(),
		owner:   owner,
		balance: balance,
	}
}

func (a *Account) ID() uuid.UUID {
	return a.id
}

func (a *Account) Owner() string {
	return a.owner
}

func (a *Account) Balance() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balance
}

func (a *Account) Bank() *Bank {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.bank
}

func (a *Account) SetBank(b *Bank) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.bank = b
}

// Debit subtracts amount from the balance. When amount is greater than the
// balance it returns an *InsufficientFundsError and the balance is left as is.
func (a *Account) Debit(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if amount.GreaterThan(a.balance) {
		return &InsufficientFundsError{Requested: amount, Available: a.balance}
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

// Credit adds amount to the balance. It never fails.
func (a *Account) Credit(amount decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Add(amount)
}

// Equal reports whether a and other are the same account.
func (a *Account) Equal(other *Account) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.id == other.id
}

func (a *Account) String() string {
	return fmt.Sprintf("%s (%s): %s", a.owner, a.id, a.Balance().String())
}
