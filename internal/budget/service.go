package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/period"
	"github.com/MrJamesThe3rd/pfms/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	// CreateBudget returns apperr.ErrConflict when the owner already has a
	// budget for the same category and month.
	CreateBudget(ctx context.Context, b *Budget) error
	DeleteBudget(ctx context.Context, owner, id uuid.UUID) error

	// BeginSnapshot opens a read-only transaction so every budget of one
	// listing is measured against the same ledger state.
	BeginSnapshot(ctx context.Context) (Snapshot, error)
}

type Snapshot interface {
	ListBudgets(ctx context.Context, owner uuid.UUID, month *period.Month) ([]*Budget, error)
	SpentInWindow(ctx context.Context, owner uuid.UUID, category string, start, end time.Time) (decimal.Decimal, error)
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
	Category string
	Month    string
	Cap      decimal.Decimal
}

func (s *Service) Create(ctx context.Context, owner uuid.UUID, params CreateParams) (*Budget, error) {
	fields, err := validation.Budget(params.Category, params.Month, params.Cap)
	if err != nil {
		return nil, err
	}

	b := &Budget{
		OwnerID:  owner,
		Category: fields.Category,
		Month:    fields.Month,
		Cap:      fields.Cap,
	}
	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// List returns the owner's budgets, optionally restricted to one month, each
// with its spend recomputed from the ledger.
func (s *Service) List(ctx context.Context, owner uuid.UUID, month string) ([]*WithUtilization, error) {
	var filter *period.Month

	if month != "" {
		m, err := validation.Month(month)
		if err != nil {
			return nil, err
		}

		filter = &m
	}

	snap, err := s.repo.BeginSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer snap.Rollback()

	budgets, err := snap.ListBudgets(ctx, owner, filter)
	if err != nil {
		return nil, err
	}

	out := make([]*WithUtilization, 0, len(budgets))

	for _, b := range budgets {
		start, end := b.Month.Window()

		spent, err := snap.SpentInWindow(ctx, owner, b.Category, start, end)
		if err != nil {
			return nil, err
		}

		out = append(out, &WithUtilization{Budget: *b, Spent: spent})
	}

	if err := snap.Commit(); err != nil {
		return nil, fmt.Errorf("commit snapshot: %w", apperr.Unavailable(err))
	}

	return out, nil
}

func (s *Service) Delete(ctx context.Context, owner, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, owner, id)
}
