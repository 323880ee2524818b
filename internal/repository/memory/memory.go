package memory

import (
	"bank_ledger/internal/repository"
)

var (
	_ repository.TransferRepository = (*TransferRepository)(nil)
	_ repository.AccountRepository  = (*AccountRepository)(nil)
)
