package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind says which ledger event a Transaction records
type TransactionKind string

const (
	TransactionDeposit  TransactionKind = "deposit"
	TransactionWithdraw TransactionKind = "withdraw"
	TransactionTransfer TransactionKind = "transfer"
)

// Transaction represents one recorded ledger event.
// ToAccount is only set for transfers.
type Transaction struct {
	ID          string          `json:"id"`
	Kind        TransactionKind `json:"kind"`
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Involves reports whether accountNumber is the source or destination of tx.
func (tx Transaction) Involves(accountNumber string) bool {
	return tx.FromAccount == accountNumber || (tx.ToAccount != "" && tx.ToAccount == accountNumber)
}
