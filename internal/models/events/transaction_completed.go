package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/bank-ledger/internal/models"
)

const TransactionCompletedTopic = "transaction_completed"

type TransactionCompleted struct {
	TransactionID string                 `json:"transaction_id"`
	Kind          models.TransactionKind `json:"kind"`
	FromAccount   string                 `json:"from_account"`
	ToAccount     string                 `json:"to_account,omitempty"`
	Amount        decimal.Decimal        `json:"amount"`
	OccurredAt    time.Time              `json:"occurred_at"`
}

func NewTransactionCompleted(tx models.Transaction) TransactionCompleted {
	return TransactionCompleted{
		TransactionID: tx.ID,
		Kind:          tx.Kind,
		FromAccount:   tx.FromAccount,
		ToAccount:     tx.ToAccount,
		Amount:        tx.Amount,
		OccurredAt:    tx.CreatedAt,
	}
}
