package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/budget"
	"github.com/MrJamesThe3rd/pfms/internal/database"
	"github.com/MrJamesThe3rd/pfms/internal/period"
)

const uniqueBudget = "budgets_owner_category_month_key"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateBudget inserts b unless the (owner, category, month) key is taken.
// The unique index arbitrates concurrent inserts, so a lost race surfaces as
// apperr.ErrConflict rather than a second row.
func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (owner_id, category, month, cap_amount)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT ` + uniqueBudget + ` DO NOTHING
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, b.OwnerID, b.Category, b.Month.String(), b.Cap).Scan(&b.ID)
	switch {
	case errors.Is(err, sql.ErrNoRows), database.IsUniqueViolation(err, uniqueBudget):
		return fmt.Errorf("budget for %s in %s: %w", b.Category, b.Month, apperr.ErrConflict)
	case err != nil:
		return fmt.Errorf("creating budget: %w", apperr.Unavailable(err))
	}

	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, owner, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1 AND owner_id = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", apperr.Unavailable(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting budget: %w", apperr.Unavailable(err))
	}

	if n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

type snapshot struct {
	tx *sql.Tx
}

func (s *Store) BeginSnapshot(ctx context.Context) (budget.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("beginning snapshot: %w", apperr.Unavailable(err))
	}

	return &snapshot{tx: tx}, nil
}

func (s *snapshot) Commit() error   { return s.tx.Commit() }
func (s *snapshot) Rollback() error { return s.tx.Rollback() }

func (s *snapshot) ListBudgets(ctx context.Context, owner uuid.UUID, month *period.Month) ([]*budget.Budget, error) {
	query := `
		SELECT id, owner_id, category, month, cap_amount
		FROM budgets
		WHERE owner_id = $1`

	args := []any{owner}

	if month != nil {
		query += " AND month = $2"

		args = append(args, month.String())
	}

	query += " ORDER BY month, category"

	rows, err := s.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", apperr.Unavailable(err))
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		var (
			b     budget.Budget
			token string
		)

		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Category, &token, &b.Cap); err != nil {
			return nil, fmt.Errorf("scanning budget: %w", apperr.Unavailable(err))
		}

		m, err := period.Parse(token)
		if err != nil {
			return nil, fmt.Errorf("scanning budget %s: %w", b.ID, err)
		}

		b.Month = m
		budgets = append(budgets, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budgets: %w", apperr.Unavailable(err))
	}

	return budgets, nil
}

func (s *snapshot) SpentInWindow(ctx context.Context, owner uuid.UUID, category string, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE owner_id = $1
			AND kind = 'expense'
			AND category = $2
			AND created_at >= $3
			AND created_at < $4
	`

	var spent decimal.Decimal

	if err := s.tx.QueryRowContext(ctx, query, owner, category, start, end).Scan(&spent); err != nil {
		return decimal.Zero, fmt.Errorf("summing expenses for %s: %w", category, apperr.Unavailable(err))
	}

	return spent, nil
}
