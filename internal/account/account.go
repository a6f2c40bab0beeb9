// Package account holds the account variants the ledger operates on.
//
// Account is a closed set: the base account and the savings account. Both
// share deposit semantics and differ in their withdrawal policy. None of the
// types here are safe for concurrent use; the ledger serializes access.
package account

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/bank-ledger/internal/models"
)

type Account interface {
	Number() string
	Holder() string
	Type() models.AccountType
	Balance() decimal.Decimal
	Deposit(amount decimal.Decimal) error
	Withdraw(amount decimal.Decimal) error
	Info() models.AccountInfo

	restore(balance decimal.Decimal)
}

// Restore puts a previously observed balance back on acc.
// The ledger uses it to undo a mutation whose log append failed.
func Restore(acc Account, balance decimal.Decimal) {
	acc.restore(balance)
}

// Basic is the plain account: it may be drawn down to zero.
type Basic struct {
	number      string
	holder      string
	accountType models.AccountType
	balance     decimal.Decimal
}

// NewAccount opens an account of the given type with an initial balance.
func NewAccount(number, holder string, accountType models.AccountType, initialBalance decimal.Decimal) (*Basic, error) {
	if strings.TrimSpace(number) == "" {
		return nil, fmt.Errorf("%w: account number required", ErrInvalidArgument)
	}
	if strings.TrimSpace(holder) == "" {
		return nil, fmt.Errorf("%w: account holder required", ErrInvalidArgument)
	}
	if !accountType.Valid() {
		return nil, fmt.Errorf("%w: account type required", ErrInvalidArgument)
	}
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance %s can't be negative", ErrInvalidArgument, initialBalance)
	}

	return &Basic{
		number:      number,
		holder:      holder,
		accountType: accountType,
		balance:     initialBalance,
	}, nil
}

func (a *Basic) Number() string { return a.number }

func (a *Basic) Holder() string { return a.holder }

func (a *Basic) Type() models.AccountType { return a.accountType }

func (a *Basic) Balance() decimal.Decimal { return a.balance }

func (a *Basic) Deposit(amount decimal.Decimal) error {
	if err := checkPositive(amount); err != nil {
		return err
	}
	a.balance = a.balance.Add(amount)
	return nil
}

func (a *Basic) Withdraw(amount decimal.Decimal) error {
	if err := checkPositive(amount); err != nil {
		return err
	}
	if amount.GreaterThan(a.balance) {
		return fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, a.balance, amount)
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

func (a *Basic) Info() models.AccountInfo {
	return models.AccountInfo{
		AccountNumber: a.number,
		Holder:        a.holder,
		Type:          a.accountType,
		Balance:       a.balance,
	}
}

func (a *Basic) restore(balance decimal.Decimal) {
	a.balance = balance
}

func checkPositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount %s must be positive", ErrInvalidArgument, amount)
	}
	return nil
}

var _ Account = (*Basic)(nil)
