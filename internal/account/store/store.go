package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/pfms/internal/account"
	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/database"
)

const uniqueEmail = "accounts_email_key"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, a.Email, a.PasswordHash).Scan(&a.ID, &a.CreatedAt)
	if database.IsUniqueViolation(err, uniqueEmail) {
		return fmt.Errorf("account %s: %w", a.Email, apperr.ErrConflict)
	}

	if err != nil {
		return fmt.Errorf("creating account: %w", apperr.Unavailable(err))
	}

	return nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM accounts
		WHERE email = $1
	`

	var a account.Account

	err := s.db.QueryRowContext(ctx, query, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("getting account: %w", apperr.Unavailable(err))
	}

	return &a, nil
}
