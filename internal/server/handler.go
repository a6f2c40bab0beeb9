package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/bank-ledger/internal/account"
	"github.com/sheikh-saqib/bank-ledger/internal/models"
)

type createAccountRequest struct {
	AccountNumber string             `json:"account_number"`
	Holder        string             `json:"holder"`
	Type          models.AccountType `json:"type"`
	Balance       decimal.Decimal    `json:"balance"`
	InterestRate  decimal.Decimal    `json:"interest_rate"`
	MinBalance    decimal.Decimal    `json:"min_balance"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type transferRequest struct {
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", account.ErrInvalidArgument, err)
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "bank": s.bank.Name()})
}

// POST /accounts. type=savings opens a savings account with the given
// interest rate and minimum balance.
func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}

	var (
		acc account.Account
		err error
	)
	if req.Type == models.AccountTypeSavings {
		acc, err = account.NewSavingsAccount(req.AccountNumber, req.Holder, req.Balance, req.InterestRate, req.MinBalance)
	} else {
		acc, err = account.NewAccount(req.AccountNumber, req.Holder, req.Type, req.Balance)
	}
	if err != nil {
		writeErr(w, err)
		return
	}

	// the account is shared once added
	info := acc.Info()
	if err := s.bank.AddAccount(acc); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

// GET /accounts, optionally filtered by ?holder=
func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	holder := r.URL.Query().Get("holder")
	if holder == "" {
		writeJSON(w, http.StatusOK, s.bank.Accounts())
		return
	}

	out := make([]models.AccountInfo, 0)
	for info := range s.bank.AccountsByHolder(holder) {
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	info, err := s.bank.Info(mux.Vars(r)["number"])
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) removeAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.bank.RemoveAccount(mux.Vars(r)["number"]); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	tx, err := s.bank.Deposit(r.Context(), mux.Vars(r)["number"], req.Amount)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	tx, err := s.bank.Withdraw(r.Context(), mux.Vars(r)["number"], req.Amount)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) addInterest(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	interest, err := s.bank.AddInterest(r.Context(), number)
	if err != nil {
		writeErr(w, err)
		return
	}
	info, err := s.bank.Info(number)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"interest": interest,
		"account":  info,
	})
}

func (s *Server) accountTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.bank.AccountTransactions(r.Context(), mux.Vars(r)["number"])
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	tx, err := s.bank.Transfer(r.Context(), req.FromAccount, req.ToAccount, req.Amount)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) transactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.bank.TransactionHistory(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) totalBalance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"total_balance": s.bank.TotalBalance()})
}
