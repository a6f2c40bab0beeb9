package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType is the kind of product an account is opened as.
// The zero value means the type was never set.
type AccountType int

const (
	AccountTypeUnset AccountType = iota
	AccountTypeChecking
	AccountTypeSavings
	AccountTypeBusiness
	AccountTypeCredit
)

var accountTypeNames = map[AccountType]string{
	AccountTypeChecking: "checking",
	AccountTypeSavings:  "savings",
	AccountTypeBusiness: "business",
	AccountTypeCredit:   "credit",
}

func (t AccountType) String() string {
	if name, ok := accountTypeNames[t]; ok {
		return name
	}
	return "unset"
}

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	_, ok := accountTypeNames[t]
	return ok
}

// ParseAccountType maps a name like "checking" to its AccountType.
func ParseAccountType(s string) (AccountType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range accountTypeNames {
		if name == s {
			return t, nil
		}
	}
	return AccountTypeUnset, fmt.Errorf("unknown account type %q", s)
}

func (t AccountType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *AccountType) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// AccountInfo is a read-only snapshot of an account.
// InterestRate and MinBalance are only valid for savings accounts.
type AccountInfo struct {
	AccountNumber string              `json:"account_number"`
	Holder        string              `json:"holder"`
	Type          AccountType         `json:"type"`
	Balance       decimal.Decimal     `json:"balance"`
	InterestRate  decimal.NullDecimal `json:"interest_rate"`
	MinBalance    decimal.NullDecimal `json:"min_balance"`
}
