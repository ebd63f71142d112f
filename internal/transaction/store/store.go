package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanTransaction reads a transaction row from the scanner.
// Expected column order: id, owner_id, kind, amount, category, note, created_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var kind string

	if err := s.Scan(&tx.ID, &tx.OwnerID, &kind, &tx.Amount, &tx.Category, &tx.Note, &tx.CreatedAt); err != nil {
		return nil, err
	}

	tx.Kind = transaction.Kind(kind)

	return &tx, nil
}

const selectTransactionColumns = `id, owner_id, kind, amount, category, note, created_at`

const insertTransaction = `
	INSERT INTO transactions (owner_id, kind, amount, category, note, created_at)
	VALUES ($1, $2, $3, $4, $5, clock_timestamp())
	RETURNING id, created_at
`

func insert(ctx context.Context, q querier, tx *transaction.Transaction) error {
	err := q.QueryRowContext(ctx, insertTransaction,
		tx.OwnerID,
		tx.Kind,
		tx.Amount,
		tx.Category,
		tx.Note,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", apperr.Unavailable(err))
	}

	return nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	return insert(ctx, s.db, tx)
}

func (s *Store) ListTransactions(ctx context.Context, owner uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	var (
		conds = []string{"owner_id = $1"}
		args  = []any{owner}
	)

	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}

	if filter.Start != nil {
		args = append(args, *filter.Start)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	if filter.End != nil {
		args = append(args, *filter.End)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY created_at DESC, seq DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", apperr.Unavailable(err))
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", apperr.Unavailable(err))
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", apperr.Unavailable(err))
	}

	return txs, nil
}

func (s *Store) SumByKind(ctx context.Context, owner uuid.UUID, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE kind = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE kind = 'expense'), 0)
		FROM transactions
		WHERE owner_id = $1 AND created_at >= $2 AND created_at < $3
	`

	var income, expense decimal.Decimal

	if err := s.db.QueryRowContext(ctx, query, owner, start, end).Scan(&income, &expense); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("summing transactions: %w", apperr.Unavailable(err))
	}

	return income, expense, nil
}

// DeleteTransaction removes the row only when it belongs to owner. A row owned
// by someone else is reported exactly like a missing one.
func (s *Store) DeleteTransaction(ctx context.Context, owner, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND owner_id = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", apperr.Unavailable(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", apperr.Unavailable(err))
	}

	if n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

type batchTx struct {
	tx *sql.Tx
}

func (s *Store) BeginBatch(ctx context.Context) (transaction.BatchTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning batch tx: %w", apperr.Unavailable(err))
	}

	return &batchTx{tx: dbTx}, nil
}

func (b *batchTx) Commit() error   { return b.tx.Commit() }
func (b *batchTx) Rollback() error { return b.tx.Rollback() }

func (b *batchTx) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	for _, tx := range txs {
		if err := insert(ctx, b.tx, tx); err != nil {
			return err
		}
	}

	return nil
}
