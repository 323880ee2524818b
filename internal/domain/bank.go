package domain

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Bank is a named, insertion-ordered collection of accounts.
type Bank struct {
	mu       sync.RWMutex
	name     string
	accounts []*Account
}

func NewBank() *Bank {
	return &Bank{}
}

func (b *Bank) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.name
}

func (b *Bank) SetName(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.name = name
}

// AddAccount registers the account and points its back-reference at b.
// Registering the same account twice lists it twice.
func (b *Bank) AddAccount(a *Account) {
	b.mu.Lock()
	b.accounts = append(b.accounts, a)
	b.mu.Unlock()

	a.SetBank(b)
}

// Accounts returns the registered accounts in registration order. The slice
// is a copy; the accounts are not.
func (b *Bank) Accounts() []*Account {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*Account, len(b.accounts))
	copy(out, b.accounts)
	return out
}

// FindAccount returns the first registered account held by owner.
func (b *Bank) FindAccount(owner string) (*Account, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, a := range b.accounts {
		if a.Owner() == owner {
			return a, true
		}
	}
	return nil, false
}

func (b *Bank) AccountsByOwner(owner string) []*Account {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var result []*Account
	for _, a := range b.accounts {
		if a.Owner() == owner {
			result = append(result, a)
		}
	}
	return result
}

func (b *Bank) TotalBalance() decimal.Decimal {
	b.mu.RLock()
	defer b.mu.RUnlock()

	total := decimal.Zero
	for _, a := range b.accounts {
		total = total.Add(a.Balance())
	}
	return total
}

// Transfer debits origin and then credits destination. Neither account has
// to be registered with b. If the debit fails nothing is credited.
func (b *Bank) Transfer(origin, destination *Account, amount decimal.Decimal) error {
	if err := origin.Debit(amount); err != nil {
		return err
	}
	destination.Credit(amount)
	return nil
}
