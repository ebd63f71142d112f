package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/reminder"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateReminder(ctx context.Context, r *reminder.Reminder) error {
	query := `
		INSERT INTO reminders (owner_id, name, due_date, amount, payee, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		r.OwnerID,
		r.Name,
		r.DueDate,
		r.Amount,
		r.Payee,
		r.Notes,
	).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("creating reminder: %w", apperr.Unavailable(err))
	}

	return nil
}

func (s *Store) ListReminders(ctx context.Context, owner uuid.UUID, filter reminder.ListFilter) ([]*reminder.Reminder, error) {
	var (
		conds = []string{"owner_id = $1"}
		args  = []any{owner}
	)

	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("due_date >= $%d", len(args)))
	}

	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("due_date <= $%d", len(args)))
	}

	query := `
		SELECT id, owner_id, name, due_date, amount, payee, notes
		FROM reminders
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY due_date, name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reminders: %w", apperr.Unavailable(err))
	}
	defer rows.Close()

	var reminders []*reminder.Reminder

	for rows.Next() {
		var r reminder.Reminder

		if err := rows.Scan(&r.ID, &r.OwnerID, &r.Name, &r.DueDate, &r.Amount, &r.Payee, &r.Notes); err != nil {
			return nil, fmt.Errorf("scanning reminder: %w", apperr.Unavailable(err))
		}

		r.DueDate = r.DueDate.UTC()
		reminders = append(reminders, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reminders: %w", apperr.Unavailable(err))
	}

	return reminders, nil
}

func (s *Store) DeleteReminder(ctx context.Context, owner, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1 AND owner_id = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("deleting reminder: %w", apperr.Unavailable(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting reminder: %w", apperr.Unavailable(err))
	}

	if n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}
