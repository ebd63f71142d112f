package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/categorize"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, owner uuid.UUID, note string) (string, error) {
	query := `
		SELECT category
		FROM category_rules
		WHERE owner_id = $1 AND strpos(lower($2), lower(raw_pattern)) > 0
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, owner, note).Scan(&category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding match: %w", apperr.Unavailable(err))
	}

	return category, nil
}

func (s *Store) CreateRule(ctx context.Context, r *categorize.Rule) error {
	query := `
		INSERT INTO category_rules (owner_id, raw_pattern, category, created_at)
		VALUES ($1, $2, $3, clock_timestamp())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, r.OwnerID, r.RawPattern, r.Category).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating rule: %w", apperr.Unavailable(err))
	}

	return nil
}
