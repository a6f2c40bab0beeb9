package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	interfaces "github.com/sheikh-saqib/bank-ledger/internal/interfaces"
	"github.com/sheikh-saqib/bank-ledger/internal/models"
)

// ErrDuplicateTransaction is returned when a transaction id is saved twice.
var ErrDuplicateTransaction = errors.New("transaction already recorded")

const uniqueViolation = "23505"

const schema = `CREATE TABLE IF NOT EXISTS transactions (
	seq          BIGSERIAL PRIMARY KEY,
	id           TEXT NOT NULL UNIQUE,
	kind         TEXT NOT NULL,
	amount       NUMERIC NOT NULL,
	from_account TEXT NOT NULL,
	to_account   TEXT,
	created_at   TIMESTAMPTZ NOT NULL
)`

type PostgresLedgerStore struct {
	db *sql.DB
}

func NewPostgresLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{
		db: db,
	}
}

// Migrate creates the transactions table if it does not exist yet.
func (p *PostgresLedgerStore) Migrate(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, schema)
	return err
}

func (p *PostgresLedgerStore) SaveTransaction(ctx context.Context, tx models.Transaction) error {
	const query = `INSERT INTO transactions (id, kind, amount, from_account, to_account, created_at)
	VALUES ($1,$2,$3,$4,$5,$6)`

	to := sql.NullString{String: tx.ToAccount, Valid: tx.ToAccount != ""}
	_, err := p.db.ExecContext(ctx, query, tx.ID, string(tx.Kind), tx.Amount, tx.FromAccount, to, tx.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicateTransaction, tx.ID)
	}
	return err
}

func (p *PostgresLedgerStore) GetTransactions(ctx context.Context) ([]models.Transaction, error) {
	const query = `SELECT id, kind, amount, from_account, to_account, created_at
	FROM transactions ORDER BY seq`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (p *PostgresLedgerStore) GetTransactionsByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	const query = `SELECT id, kind, amount, from_account, to_account, created_at
	FROM transactions WHERE from_account = $1 OR to_account = $1 ORDER BY seq`

	rows, err := p.db.QueryContext(ctx, query, accountNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0)

	for rows.Next() {
		var (
			tx   models.Transaction
			kind string
			to   sql.NullString
		)
		err := rows.Scan(
			&tx.ID,
			&kind,
			&tx.Amount,
			&tx.FromAccount,
			&to,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		tx.Kind = models.TransactionKind(kind)
		tx.ToAccount = to.String
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}

var _ interfaces.LedgerStore = (*PostgresLedgerStore)(nil)
