package account_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/bank-ledger/internal/account"
	"github.com/sheikh-saqib/bank-ledger/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertBalance(t *testing.T, want string, acc account.Account) {
	t.Helper()
	assert.True(t, dec(want).Equal(acc.Balance()), "balance=%s want=%s", acc.Balance(), want)
}

func TestNewAccountValidation(t *testing.T) {
	cases := []struct {
		name    string
		number  string
		holder  string
		accType models.AccountType
		balance string
	}{
		{"empty number", "", "deniz", models.AccountTypeChecking, "0"},
		{"blank number", "   ", "deniz", models.AccountTypeChecking, "0"},
		{"empty holder", "1", "", models.AccountTypeChecking, "0"},
		{"blank holder", "1", "\t", models.AccountTypeChecking, "0"},
		{"unset type", "1", "deniz", models.AccountTypeUnset, "0"},
		{"negative balance", "1", "deniz", models.AccountTypeChecking, "-0.01"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := account.NewAccount(c.number, c.holder, c.accType, dec(c.balance))
			assert.ErrorIs(t, err, account.ErrInvalidArgument)
		})
	}
}

func TestDepositWithdraw(t *testing.T) {
	acc, err := account.NewAccount("1", "deniz", models.AccountTypeChecking, dec("10"))
	require.NoError(t, err)

	require.NoError(t, acc.Deposit(dec("10")))
	assertBalance(t, "20", acc)

	require.NoError(t, acc.Withdraw(dec("5")))
	assertBalance(t, "15", acc)

	assert.ErrorIs(t, acc.Deposit(decimal.Zero), account.ErrInvalidArgument)
	assert.ErrorIs(t, acc.Deposit(dec("-1")), account.ErrInvalidArgument)
	assert.ErrorIs(t, acc.Withdraw(decimal.Zero), account.ErrInvalidArgument)
	assert.ErrorIs(t, acc.Withdraw(dec("15.01")), account.ErrInsufficientFunds)
	assertBalance(t, "15", acc)

	require.NoError(t, acc.Withdraw(dec("15")))
	assertBalance(t, "0", acc)
}

func TestDepositWithdrawRoundTrip(t *testing.T) {
	amounts := []string{"0.01", "1", "7.35", "1000000", "0.1"}
	for _, amt := range amounts {
		acc, err := account.NewAccount("1", "deniz", models.AccountTypeBusiness, dec("3.3"))
		require.NoError(t, err)

		require.NoError(t, acc.Deposit(dec(amt)))
		require.NoError(t, acc.Withdraw(dec(amt)))
		assertBalance(t, "3.3", acc)
	}
}

func TestBalanceNeverNegative(t *testing.T) {
	acc, err := account.NewAccount("1", "deniz", models.AccountTypeCredit, dec("5"))
	require.NoError(t, err)

	ops := []struct {
		deposit bool
		amount  string
	}{
		{false, "3"}, {false, "3"}, {true, "1"}, {false, "3"}, {false, "0.5"}, {true, "0.5"}, {false, "1"},
	}
	for _, op := range ops {
		if op.deposit {
			_ = acc.Deposit(dec(op.amount))
		} else {
			_ = acc.Withdraw(dec(op.amount))
		}
		assert.False(t, acc.Balance().IsNegative())
	}
}

func TestInfo(t *testing.T) {
	acc, err := account.NewAccount("42", "deniz", models.AccountTypeBusiness, dec("12.5"))
	require.NoError(t, err)

	info := acc.Info()
	assert.Equal(t, "42", info.AccountNumber)
	assert.Equal(t, "deniz", info.Holder)
	assert.Equal(t, models.AccountTypeBusiness, info.Type)
	assert.True(t, dec("12.5").Equal(info.Balance))
	assert.False(t, info.InterestRate.Valid)
	assert.False(t, info.MinBalance.Valid)
}

func TestRestore(t *testing.T) {
	acc, err := account.NewAccount("1", "deniz", models.AccountTypeChecking, dec("10"))
	require.NoError(t, err)

	prev := acc.Balance()
	require.NoError(t, acc.Deposit(dec("4")))
	account.Restore(acc, prev)
	assertBalance(t, "10", acc)
}
