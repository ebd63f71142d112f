// Command seed creates demo accounts and a couple of sample transactions.
// Accounts that already exist are left untouched.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/internal/account"
	accountStore "github.com/MrJamesThe3rd/pfms/internal/account/store"
	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/config"
	"github.com/MrJamesThe3rd/pfms/internal/database"
	"github.com/MrJamesThe3rd/pfms/internal/transaction"
	txStore "github.com/MrJamesThe3rd/pfms/internal/transaction/store"
)

const demoEmail = "demo@example.com"

var demoAccounts = []struct {
	email    string
	password string
}{
	{demoEmail, "demo12345"},
	{"dg@example.com", "dinesh123"},
	{"mm@example.com", "maneesh123"},
	{"by@example.com", "bhargav123"},
	{"hy@example.com", "hema12345"},
}

var demoTransactions = []transaction.CreateParams{
	{Kind: transaction.KindIncome, Amount: decimal.NewFromInt(5000), Category: "salary", Note: "seed"},
	{Kind: transaction.KindExpense, Amount: decimal.NewFromInt(120), Category: "groceries", Note: "seed"},
}

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

	accounts := account.NewService(accountStore.New(db), cfg.Auth.BcryptCost)
	transactions := transaction.NewService(txStore.New(db))

	if err := seed(context.Background(), accounts, transactions); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	slog.Info("seeded successfully")
}

func seed(ctx context.Context, accounts *account.Service, transactions *transaction.Service) error {
	for _, a := range demoAccounts {
		acc, err := accounts.Register(ctx, a.email, a.password)
		if errors.Is(err, apperr.ErrConflict) {
			slog.Info("account already exists, skipping", "email", a.email)
			continue
		}

		if err != nil {
			return err
		}

		slog.Info("created account", "email", acc.Email)

		if acc.Email != demoEmail {
			continue
		}

		if _, err := transactions.ImportBatch(ctx, acc.ID, demoTransactions); err != nil {
			return err
		}
	}

	return nil
}
