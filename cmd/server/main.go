package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/sheikh-saqib/bank-ledger/internal/config"
	"github.com/sheikh-saqib/bank-ledger/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/bank-ledger/internal/interfaces"
	"github.com/sheikh-saqib/bank-ledger/internal/ledger"
	"github.com/sheikh-saqib/bank-ledger/internal/server"
	"github.com/sheikh-saqib/bank-ledger/internal/storage/memory"
	"github.com/sheikh-saqib/bank-ledger/internal/storage/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store interfaces.LedgerStore
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		pgStore := postgres.NewPostgresLedgerStore(db)
		if err := pgStore.Migrate(ctx); err != nil {
			return err
		}
		store = pgStore
	default:
		store = memory.NewMemoryLedgerStore()
	}

	var publisher interfaces.EventPublisher = kafka.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		p := kafka.NewPublisher(cfg.KafkaBrokers)
		defer p.Close()
		publisher = p
	}

	bank := ledger.NewBank(cfg.BankName, store,
		ledger.WithPublisher(publisher, cfg.KafkaTopic),
		ledger.WithLogger(logger),
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.NewServer(bank, logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("store", cfg.StoreDriver),
			slog.Int("kafka_brokers", len(cfg.KafkaBrokers)),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
