package interfaces

import (
	"context"

	"github.com/sheikh-saqib/bank-ledger/internal/models"
)

// LedgerStore holds the append-only transaction log.
// Reads return transactions in the order they were saved.
type LedgerStore interface {
	SaveTransaction(ctx context.Context, tx models.Transaction) error
	GetTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransactionsByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error)
}
