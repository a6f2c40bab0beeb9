package memory

import (
	"context"
	"sync"

	interfaces "github.com/sheikh-saqib/bank-ledger/internal/interfaces"
	"github.com/sheikh-saqib/bank-ledger/internal/models"
)

// MemoryLedgerStore is an in-memory implementation of interfaces.LedgerStore.
// It keeps the transaction log in a slice and is safe for concurrent use.
type MemoryLedgerStore struct {
	mu           sync.Mutex
	transactions []models.Transaction
}

func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		transactions: make([]models.Transaction, 0),
	}
}

// SaveTransaction appends tx to the log. Always succeeds in memory.
func (m *MemoryLedgerStore) SaveTransaction(ctx context.Context, tx models.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.transactions = append(m.transactions, tx)
	return nil
}

// GetTransactions returns a copy of the whole log so callers can't modify it.
func (m *MemoryLedgerStore) GetTransactions(ctx context.Context) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.Transaction, len(m.transactions))
	copy(copied, m.transactions)
	return copied, nil
}

func (m *MemoryLedgerStore) GetTransactionsByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]models.Transaction, 0)
	for _, tx := range m.transactions {
		if tx.Involves(accountNumber) {
			result = append(result, tx)
		}
	}
	return result, nil
}

// Compile-time check: ensure MemoryLedgerStore implements LedgerStore interface
var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
