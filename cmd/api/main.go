package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pfms/internal/account"
	accountStore "github.com/MrJamesThe3rd/pfms/internal/account/store"
	"github.com/MrJamesThe3rd/pfms/internal/auth"
	"github.com/MrJamesThe3rd/pfms/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/pfms/internal/budget/store"
	"github.com/MrJamesThe3rd/pfms/internal/categorize"
	categorizeStore "github.com/MrJamesThe3rd/pfms/internal/categorize/store"
	"github.com/MrJamesThe3rd/pfms/internal/config"
	"github.com/MrJamesThe3rd/pfms/internal/database"
	"github.com/MrJamesThe3rd/pfms/internal/export"
	"github.com/MrJamesThe3rd/pfms/internal/goal"
	goalStore "github.com/MrJamesThe3rd/pfms/internal/goal/store"
	pfmsHttp "github.com/MrJamesThe3rd/pfms/internal/http"
	accountHandler "github.com/MrJamesThe3rd/pfms/internal/http/account"
	budgetHandler "github.com/MrJamesThe3rd/pfms/internal/http/budget"
	exportHandler "github.com/MrJamesThe3rd/pfms/internal/http/export"
	goalHandler "github.com/MrJamesThe3rd/pfms/internal/http/goal"
	importHandler "github.com/MrJamesThe3rd/pfms/internal/http/importcsv"
	reminderHandler "github.com/MrJamesThe3rd/pfms/internal/http/reminder"
	rulesHandler "github.com/MrJamesThe3rd/pfms/internal/http/rules"
	txHandler "github.com/MrJamesThe3rd/pfms/internal/http/transaction"
	"github.com/MrJamesThe3rd/pfms/internal/importer"
	"github.com/MrJamesThe3rd/pfms/internal/reminder"
	reminderStore "github.com/MrJamesThe3rd/pfms/internal/reminder/store"
	"github.com/MrJamesThe3rd/pfms/internal/transaction"
	txStore "github.com/MrJamesThe3rd/pfms/internal/transaction/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		transactionService = transaction.NewService(txStore.New(db))
		budgetService      = budget.NewService(budgetStore.New(db))
		goalService        = goal.NewService(goalStore.New(db))
		reminderService    = reminder.NewService(reminderStore.New(db))
		accountService     = account.NewService(accountStore.New(db), cfg.Auth.BcryptCost)
		rulesService       = categorize.NewService(categorizeStore.New(db))
		importService      = importer.NewService(transactionService, rulesService)
		exportService      = export.NewService(transactionService, budgetService)
	)

	tokens := auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	handlers := pfmsHttp.Handlers{
		Accounts:     accountHandler.NewHandler(accountService, tokens),
		Transactions: txHandler.NewHandler(transactionService),
		Import:       importHandler.NewHandler(importService),
		Budgets:      budgetHandler.NewHandler(budgetService),
		Reminders:    reminderHandler.NewHandler(reminderService),
		Goals:        goalHandler.NewHandler(goalService),
		Rules:        rulesHandler.NewHandler(rulesService),
		Export:       exportHandler.NewHandler(exportService),
	}

	router := pfmsHttp.New(pfmsHttp.Options{
		Timeout:        cfg.Server.Timeout,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Owners:         tokens,
	}, handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "name", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
