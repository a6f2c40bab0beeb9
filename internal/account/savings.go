package account

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/bank-ledger/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Savings is an account with an interest rate (percent) and a balance floor
// that withdrawals must respect.
type Savings struct {
	Basic
	interestRate decimal.Decimal
	minBalance   decimal.Decimal
}

// NewSavingsAccount opens a savings account. The initial balance may sit
// below minBalance; only withdrawals are held to the floor.
func NewSavingsAccount(number, holder string, initialBalance, interestRate, minBalance decimal.Decimal) (*Savings, error) {
	base, err := NewAccount(number, holder, models.AccountTypeSavings, initialBalance)
	if err != nil {
		return nil, err
	}
	if interestRate.IsNegative() {
		return nil, fmt.Errorf("%w: interest rate %s can't be negative", ErrInvalidArgument, interestRate)
	}
	if minBalance.IsNegative() {
		return nil, fmt.Errorf("%w: minimum balance %s can't be negative", ErrInvalidArgument, minBalance)
	}

	return &Savings{
		Basic:        *base,
		interestRate: interestRate,
		minBalance:   minBalance,
	}, nil
}

func (s *Savings) InterestRate() decimal.Decimal { return s.interestRate }

func (s *Savings) MinBalance() decimal.Decimal { return s.minBalance }

// Withdraw refuses any amount that would leave the balance below the floor.
func (s *Savings) Withdraw(amount decimal.Decimal) error {
	if err := checkPositive(amount); err != nil {
		return err
	}
	if s.balance.Sub(amount).LessThan(s.minBalance) {
		return fmt.Errorf("%w: balance %s, min balance %s, requested %s",
			ErrMinimumBalance, s.balance, s.minBalance, amount)
	}
	return s.Basic.Withdraw(amount)
}

// AddInterest credits balance * rate / 100 and returns the credited amount.
// Repeated calls compound. A zero interest is a no-op.
func (s *Savings) AddInterest() decimal.Decimal {
	interest := s.balance.Mul(s.interestRate).Div(hundred)
	if !interest.IsPositive() {
		return decimal.Zero
	}
	s.balance = s.balance.Add(interest)
	return interest
}

func (s *Savings) Info() models.AccountInfo {
	info := s.Basic.Info()
	info.InterestRate = decimal.NewNullDecimal(s.interestRate)
	info.MinBalance = decimal.NewNullDecimal(s.minBalance)
	return info
}

var _ Account = (*Savings)(nil)
