package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/database"
	"github.com/MrJamesThe3rd/pfms/internal/goal"
	"github.com/MrJamesThe3rd/pfms/internal/validation"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectGoalColumns = `id, owner_id, name, target_amount, current_amount, target_date, category, description, is_completed, created_at`

func scanGoal(s scanner) (*goal.Goal, error) {
	var (
		g          goal.Goal
		targetDate sql.NullTime
	)

	err := s.Scan(
		&g.ID, &g.OwnerID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
		&targetDate, &g.Category, &g.Description, &g.IsCompleted, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if targetDate.Valid {
		d := targetDate.Time.UTC()
		g.TargetDate = &d
	}

	return &g, nil
}

func (s *Store) CreateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (owner_id, name, target_amount, current_amount, target_date, category, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_completed, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		g.OwnerID,
		g.Name,
		g.TargetAmount,
		g.CurrentAmount,
		g.TargetDate,
		g.Category,
		g.Description,
	).Scan(&g.ID, &g.IsCompleted, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating goal: %w", apperr.Unavailable(err))
	}

	return nil
}

func (s *Store) ListGoals(ctx context.Context, owner uuid.UUID) ([]*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + `
		FROM goals
		WHERE owner_id = $1
		ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", apperr.Unavailable(err))
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", apperr.Unavailable(err))
		}

		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", apperr.Unavailable(err))
	}

	return goals, nil
}

// AddContribution applies the increment and the completion latch in a single
// UPDATE so concurrent contributions never overwrite each other.
func (s *Store) AddContribution(ctx context.Context, owner, id uuid.UUID, amount decimal.Decimal) (*goal.Goal, error) {
	query := `
		UPDATE goals
		SET current_amount = current_amount + $3,
			is_completed = is_completed OR current_amount + $3 >= target_amount
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + selectGoalColumns

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, id, owner, amount))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}

	if database.IsNumericOverflow(err) {
		return nil, apperr.Invalid("amount", "would push current_amount past "+validation.MaxAmount.StringFixed(2))
	}

	if err != nil {
		return nil, fmt.Errorf("contributing to goal %s: %w", id, apperr.Unavailable(err))
	}

	return g, nil
}

func (s *Store) DeleteGoal(ctx context.Context, owner, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND owner_id = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", apperr.Unavailable(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting goal: %w", apperr.Unavailable(err))
	}

	if n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}
