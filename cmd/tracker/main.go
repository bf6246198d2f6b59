package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Chidesigner/Expense-tracker/internal/backend"
	"github.com/Chidesigner/Expense-tracker/internal/config"
	"github.com/Chidesigner/Expense-tracker/internal/core"
	"github.com/Chidesigner/Expense-tracker/internal/events"
	apphttp "github.com/Chidesigner/Expense-tracker/internal/http"
	"github.com/Chidesigner/Expense-tracker/internal/identity/local"
	"github.com/Chidesigner/Expense-tracker/internal/log"
	"github.com/Chidesigner/Expense-tracker/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	col, closeCol, err := backend.Open(cfg, logger)
	if err != nil {
		logger.Error("Failed to open backend", log.FieldBackend, cfg.DataBackend, log.FieldError, err)
		os.Exit(1)
	}
	defer func() {
		if err := closeCol(); err != nil {
			logger.Error("Failed to close backend", log.FieldError, err)
		}
	}()

	// Eventing is optional: no AMQP URL means mutations simply go unannounced.
	var publisher store.Publisher
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Warn("AMQP unavailable, continuing without events", log.FieldError, err)
		} else {
			defer client.Close()
			publisher = client
		}
	}

	provider := local.New(cfg.AuthSecret, cfg.TokenTTL, logger)

	rules := core.Rules{
		Categories:     cfg.Categories(),
		RetentionYears: cfg.RetentionYears,
		Now:            time.Now,
	}

	srv := apphttp.NewServer(apphttp.Options{
		Addr:      ":" + cfg.Port,
		Provider:  provider,
		Col:       col,
		Publisher: publisher,
		Logger:    logger,
		Rules:     rules,
		Formatter: core.Formatter{Symbol: cfg.CurrencySymbol},
	})
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received",
			log.FieldOperation, log.OpShutdown, "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting expense tracker",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully", log.FieldOperation, log.OpShutdown)
}
