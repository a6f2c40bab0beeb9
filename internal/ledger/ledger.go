// Package ledger implements the bank: a set of accounts keyed by account
// number plus the append-only log of transactions that changed them.
package ledger

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/bank-ledger/internal/account"
	interfaces "github.com/sheikh-saqib/bank-ledger/internal/interfaces"
	"github.com/sheikh-saqib/bank-ledger/internal/models"
	"github.com/sheikh-saqib/bank-ledger/internal/models/events"
)

// Bank owns the accounts and orchestrates every balance change.
//
// Each account number has its own mutex, kept in muMap only while in use.
// Operations hold the lock of every account they touch for the whole
// mutate-then-record step, so a balance never disagrees with the log. accountsMu only guards the map and
// is always acquired after the account locks.
type Bank struct {
	name      string
	store     interfaces.LedgerStore
	publisher interfaces.EventPublisher
	topic     string
	logger    *slog.Logger
	now       func() time.Time

	accountsMu sync.RWMutex
	accounts   map[string]account.Account

	mapMu sync.Mutex
	muMap map[string]*accountLock
}

// accountLock is dropped from muMap once no goroutine holds or waits on it.
type accountLock struct {
	sync.Mutex
	refs int
}

type Option func(*Bank)

// WithPublisher sends a TransactionCompleted event to topic for every
// recorded transaction. An empty topic keeps the default.
func WithPublisher(p interfaces.EventPublisher, topic string) Option {
	return func(b *Bank) {
		b.publisher = p
		if topic != "" {
			b.topic = topic
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Bank) { b.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(b *Bank) { b.now = now }
}

func NewBank(name string, store interfaces.LedgerStore, opts ...Option) *Bank {
	b := &Bank{
		name:     name,
		store:    store,
		topic:    events.TransactionCompletedTopic,
		logger:   slog.Default(),
		now:      time.Now,
		accounts: make(map[string]account.Account),
		muMap:    make(map[string]*accountLock),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With(slog.String("bank", name))
	return b
}

func (b *Bank) Name() string { return b.name }

func (b *Bank) getAccountLock(accountNumber string) *accountLock {
	b.mapMu.Lock()
	defer b.mapMu.Unlock()

	l, exists := b.muMap[accountNumber]
	if !exists {
		l = &accountLock{}
		b.muMap[accountNumber] = l
	}
	l.refs++
	return l
}

func (b *Bank) releaseAccountLock(accountNumber string, l *accountLock) {
	b.mapMu.Lock()
	defer b.mapMu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(b.muMap, accountNumber)
	}
}

// lockAccounts locks the given account numbers in sorted order to avoid
// deadlocks and returns the matching unlock function.
func (b *Bank) lockAccounts(numbers ...string) func() {
	numbers = slices.Clone(numbers)
	slices.Sort(numbers)
	numbers = slices.Compact(numbers)

	locks := make([]*accountLock, len(numbers))
	for i, n := range numbers {
		locks[i] = b.getAccountLock(n)
		locks[i].Lock()
	}
	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
			b.releaseAccountLock(numbers[i], locks[i])
		}
	}
}

// lookup must be called with the account lock held.
func (b *Bank) lookup(accountNumber string) (account.Account, error) {
	b.accountsMu.RLock()
	defer b.accountsMu.RUnlock()

	acc, ok := b.accounts[accountNumber]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, accountNumber)
	}
	return acc, nil
}

func (b *Bank) accountNumbers() []string {
	b.accountsMu.RLock()
	defer b.accountsMu.RUnlock()

	numbers := make([]string, 0, len(b.accounts))
	for n := range b.accounts {
		numbers = append(numbers, n)
	}
	slices.Sort(numbers)
	return numbers
}

// AddAccount registers acc under its own account number.
func (b *Bank) AddAccount(acc account.Account) error {
	if acc == nil {
		return fmt.Errorf("%w: account required", account.ErrInvalidArgument)
	}
	number := acc.Number()

	unlock := b.lockAccounts(number)
	defer unlock()

	b.accountsMu.Lock()
	defer b.accountsMu.Unlock()

	if _, exists := b.accounts[number]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateAccount, number)
	}
	b.accounts[number] = acc
	b.logger.Debug("account added", slog.String("account", number), slog.String("type", acc.Type().String()))
	return nil
}

// RemoveAccount drops the account from the bank. Logged transactions that
// reference it are kept.
func (b *Bank) RemoveAccount(accountNumber string) error {
	unlock := b.lockAccounts(accountNumber)
	defer unlock()

	b.accountsMu.Lock()
	defer b.accountsMu.Unlock()

	if _, exists := b.accounts[accountNumber]; !exists {
		return fmt.Errorf("%w: %q", ErrNotFound, accountNumber)
	}
	delete(b.accounts, accountNumber)
	b.logger.Debug("account removed", slog.String("account", accountNumber))
	return nil
}

// Info returns a snapshot of one account.
func (b *Bank) Info(accountNumber string) (models.AccountInfo, error) {
	unlock := b.lockAccounts(accountNumber)
	defer unlock()

	acc, err := b.lookup(accountNumber)
	if err != nil {
		return models.AccountInfo{}, err
	}
	return acc.Info(), nil
}

func (b *Bank) Balance(accountNumber string) (decimal.Decimal, error) {
	info, err := b.Info(accountNumber)
	if err != nil {
		return decimal.Zero, err
	}
	return info.Balance, nil
}

// Deposit credits amount to the account and records a deposit.
func (b *Bank) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (models.Transaction, error) {
	return b.applySingle(ctx, accountNumber, models.TransactionDeposit, func(acc account.Account) (decimal.Decimal, error) {
		return amount, acc.Deposit(amount)
	})
}

// Withdraw debits amount from the account and records a withdrawal. The
// account's own policy decides between ErrInsufficientFunds and
// ErrMinimumBalance.
func (b *Bank) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (models.Transaction, error) {
	return b.applySingle(ctx, accountNumber, models.TransactionWithdraw, func(acc account.Account) (decimal.Decimal, error) {
		return amount, acc.Withdraw(amount)
	})
}

// AddInterest accrues interest on a savings account and records it as a
// deposit. Nothing is recorded when the interest comes out as zero.
func (b *Bank) AddInterest(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	tx, err := b.applySingle(ctx, accountNumber, models.TransactionDeposit, func(acc account.Account) (decimal.Decimal, error) {
		savings, ok := acc.(*account.Savings)
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: account %q does not accrue interest", account.ErrInvalidArgument, accountNumber)
		}
		return savings.AddInterest(), nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return tx.Amount, nil
}

// applySingle runs op against one account under its lock and records the
// resulting transaction. op returns the amount to record; a zero amount
// records nothing. If the log append fails the balance is put back.
func (b *Bank) applySingle(
	ctx context.Context,
	accountNumber string,
	kind models.TransactionKind,
	op func(acc account.Account) (decimal.Decimal, error),
) (models.Transaction, error) {
	tx, err := func() (models.Transaction, error) {
		unlock := b.lockAccounts(accountNumber)
		defer unlock()

		acc, err := b.lookup(accountNumber)
		if err != nil {
			return models.Transaction{}, err
		}

		prev := acc.Balance()
		amount, err := op(acc)
		if err != nil {
			return models.Transaction{}, err
		}
		if amount.IsZero() {
			return models.Transaction{}, nil
		}

		tx := b.newTransaction(kind, accountNumber, "", amount)
		if err := b.store.SaveTransaction(ctx, tx); err != nil {
			account.Restore(acc, prev)
			return models.Transaction{}, fmt.Errorf("record %s for %q: %w", kind, accountNumber, err)
		}
		return tx, nil
	}()
	if err != nil {
		b.logger.Debug("operation rejected",
			slog.String("kind", string(kind)),
			slog.String("account", accountNumber),
			slog.String("error", err.Error()),
		)
		return models.Transaction{}, err
	}

	if tx.ID != "" {
		b.publish(ctx, tx)
	}
	return tx, nil
}

// Transfer moves amount from one account to another as a single logged
// transaction. Either both balances change and the transfer is recorded, or
// nothing changes.
func (b *Bank) Transfer(ctx context.Context, fromNumber, toNumber string, amount decimal.Decimal) (models.Transaction, error) {
	if !amount.IsPositive() {
		return models.Transaction{}, fmt.Errorf("%w: amount %s must be positive", account.ErrInvalidArgument, amount)
	}
	if fromNumber == toNumber {
		return models.Transaction{}, fmt.Errorf("%w: can't transfer %q to itself", account.ErrInvalidArgument, fromNumber)
	}

	tx, err := func() (models.Transaction, error) {
		unlock := b.lockAccounts(fromNumber, toNumber)
		defer unlock()

		from, err := b.lookup(fromNumber)
		if err != nil {
			return models.Transaction{}, err
		}
		to, err := b.lookup(toNumber)
		if err != nil {
			return models.Transaction{}, err
		}

		if from.Balance().Sub(amount).IsNegative() {
			return models.Transaction{}, fmt.Errorf("%w: balance %s, requested %s", account.ErrInsufficientFunds, from.Balance(), amount)
		}

		fromPrev, toPrev := from.Balance(), to.Balance()
		if err := from.Withdraw(amount); err != nil {
			return models.Transaction{}, err
		}
		if err := to.Deposit(amount); err != nil {
			account.Restore(from, fromPrev)
			return models.Transaction{}, err
		}

		tx := b.newTransaction(models.TransactionTransfer, fromNumber, toNumber, amount)
		if err := b.store.SaveTransaction(ctx, tx); err != nil {
			account.Restore(from, fromPrev)
			account.Restore(to, toPrev)
			return models.Transaction{}, fmt.Errorf("record transfer %q -> %q: %w", fromNumber, toNumber, err)
		}
		return tx, nil
	}()
	if err != nil {
		b.logger.Debug("transfer rejected",
			slog.String("from", fromNumber),
			slog.String("to", toNumber),
			slog.String("error", err.Error()),
		)
		return models.Transaction{}, err
	}

	b.publish(ctx, tx)
	return tx, nil
}

// TotalBalance sums every account's balance. All account locks are held
// while summing so an in-flight transfer is never counted half done.
func (b *Bank) TotalBalance() decimal.Decimal {
	numbers := b.accountNumbers()
	unlock := b.lockAccounts(numbers...)
	defer unlock()

	b.accountsMu.RLock()
	defer b.accountsMu.RUnlock()

	total := decimal.Zero
	for _, n := range numbers {
		if acc, ok := b.accounts[n]; ok {
			total = total.Add(acc.Balance())
		}
	}
	return total
}

// AccountsByHolder lazily yields snapshots of the accounts whose holder is
// exactly holder, ordered by account number.
//
// The account numbers are read when iteration starts. Each account is looked
// up again right before it is yielded, so accounts removed mid-iteration are
// skipped and balances are current at the time of the yield. Accounts added
// after iteration started are not seen. Ranging again starts over.
func (b *Bank) AccountsByHolder(holder string) iter.Seq[models.AccountInfo] {
	return func(yield func(models.AccountInfo) bool) {
		for _, n := range b.accountNumbers() {
			info, err := b.Info(n)
			if err != nil || info.Holder != holder {
				continue
			}
			if !yield(info) {
				return
			}
		}
	}
}

// Accounts returns snapshots of every account ordered by account number.
func (b *Bank) Accounts() []models.AccountInfo {
	out := make([]models.AccountInfo, 0)
	for _, n := range b.accountNumbers() {
		if info, err := b.Info(n); err == nil {
			out = append(out, info)
		}
	}
	return out
}

// TransactionHistory returns the whole log in recording order.
func (b *Bank) TransactionHistory(ctx context.Context) ([]models.Transaction, error) {
	return b.store.GetTransactions(ctx)
}

// AccountTransactions returns the logged transactions where accountNumber is
// the source or the destination, in recording order. The account does not
// need to still exist.
func (b *Bank) AccountTransactions(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	return b.store.GetTransactionsByAccount(ctx, accountNumber)
}

func (b *Bank) newTransaction(kind models.TransactionKind, from, to string, amount decimal.Decimal) models.Transaction {
	return models.Transaction{
		ID:          uuid.NewString(),
		Kind:        kind,
		FromAccount: from,
		ToAccount:   to,
		Amount:      amount,
		CreatedAt:   b.now(),
	}
}

// publish failures are logged, never returned.
func (b *Bank) publish(ctx context.Context, tx models.Transaction) {
	b.logger.Info("transaction recorded",
		slog.String("id", tx.ID),
		slog.String("kind", string(tx.Kind)),
		slog.String("from", tx.FromAccount),
		slog.String("to", tx.ToAccount),
		slog.String("amount", tx.Amount.String()),
	)
	if b.publisher == nil {
		return
	}
	if err := b.publisher.Publish(ctx, b.topic, events.NewTransactionCompleted(tx)); err != nil {
		b.logger.Error("publish transaction event", slog.String("id", tx.ID), slog.String("error", err.Error()))
	}
}
