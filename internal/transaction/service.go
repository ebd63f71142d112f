package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/period"
	"github.com/MrJamesThe3rd/pfms/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, owner uuid.UUID, filter ListFilter) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, owner, id uuid.UUID) error

	// SumByKind sums amounts per kind for owner within [start, end).
	SumByKind(ctx context.Context, owner uuid.UUID, start, end time.Time) (income, expense decimal.Decimal, err error)

	BeginBatch(ctx context.Context) (BatchTx, error)
}

type BatchTx interface {
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Kind     Kind
	Amount   decimal.Decimal
	Category string
	Note     string
}

// ListFilter narrows a listing. Start/End form a half-open window on created_at.
type ListFilter struct {
	Kind  *Kind
	Start *time.Time
	End   *time.Time
}

func (s *Service) Record(ctx context.Context, owner uuid.UUID, params CreateParams) (*Transaction, error) {
	tx, err := newTransaction(owner, params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) List(ctx context.Context, owner uuid.UUID, filter ListFilter) ([]*Transaction, error) {
	if filter.Kind != nil {
		if _, err := validation.Kind(string(*filter.Kind)); err != nil {
			return nil, err
		}
	}

	return s.repo.ListTransactions(ctx, owner, filter)
}

// ListMonth returns the owner's transactions created within month, newest first.
func (s *Service) ListMonth(ctx context.Context, owner uuid.UUID, month period.Month) ([]*Transaction, error) {
	start, end := month.Window()
	return s.repo.ListTransactions(ctx, owner, ListFilter{Start: &start, End: &end})
}

// MonthlyTotals sums the calendar month (UTC) that contains ref.
func (s *Service) MonthlyTotals(ctx context.Context, owner uuid.UUID, ref time.Time) (*Totals, error) {
	start, end := period.Of(ref).Window()

	income, expense, err := s.repo.SumByKind(ctx, owner, start, end)
	if err != nil {
		return nil, err
	}

	return &Totals{
		Income:  income,
		Expense: expense,
		Net:     income.Sub(expense),
	}, nil
}

func (s *Service) Delete(ctx context.Context, owner, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, owner, id)
}

// ImportBatch records params atomically: either every row is stored or none is.
func (s *Service) ImportBatch(ctx context.Context, owner uuid.UUID, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs := make([]*Transaction, len(params))

	for i, p := range params {
		tx, err := newTransaction(owner, p)
		if err != nil {
			return nil, rowError(i, err)
		}

		txs[i] = tx
	}

	btx, err := s.repo.BeginBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin batch: %w", err)
	}
	defer btx.Rollback()

	if err := btx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := btx.Commit(); err != nil {
		return nil, fmt.Errorf("commit batch: %w", apperr.Unavailable(err))
	}

	return txs, nil
}

func newTransaction(owner uuid.UUID, p CreateParams) (*Transaction, error) {
	fields, err := validation.Transaction(string(p.Kind), p.Amount, p.Category, p.Note)
	if err != nil {
		return nil, err
	}

	return &Transaction{
		OwnerID:  owner,
		Kind:     Kind(fields.Kind),
		Amount:   fields.Amount,
		Category: fields.Category,
		Note:     fields.Note,
	}, nil
}

func rowError(i int, err error) error {
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		return apperr.Invalid(fmt.Sprintf("rows[%d].%s", i, verr.Field), verr.Reason)
	}

	return err
}
