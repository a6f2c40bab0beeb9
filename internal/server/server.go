// Package server exposes the bank over HTTP/JSON.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/sheikh-saqib/bank-ledger/internal/account"
	"github.com/sheikh-saqib/bank-ledger/internal/ledger"
)

type Server struct {
	bank   *ledger.Bank
	logger *slog.Logger
}

func NewServer(b *ledger.Bank, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{bank: b, logger: logger}
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	r.HandleFunc("/accounts", s.createAccount).Methods(http.MethodPost)
	r.HandleFunc("/accounts", s.listAccounts).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{number}", s.getAccount).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{number}", s.removeAccount).Methods(http.MethodDelete)
	r.HandleFunc("/accounts/{number}/deposit", s.deposit).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{number}/withdraw", s.withdraw).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{number}/interest", s.addInterest).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{number}/transactions", s.accountTransactions).Methods(http.MethodGet)

	r.HandleFunc("/transfers", s.transfer).Methods(http.MethodPost)
	r.HandleFunc("/transactions", s.transactions).Methods(http.MethodGet)
	r.HandleFunc("/balance", s.totalBalance).Methods(http.MethodGet)

	r.Use(s.logRequests)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("took", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, account.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrDuplicateAccount),
		errors.Is(err, account.ErrInsufficientFunds),
		errors.Is(err, account.ErrMinimumBalance):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
