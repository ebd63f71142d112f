package goal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	ListGoals(ctx context.Context, owner uuid.UUID) ([]*Goal, error)
	// AddContribution increments the current amount in one statement and
	// returns the updated row, or apperr.ErrNotFound.
	AddContribution(ctx context.Context, owner, id uuid.UUID, amount decimal.Decimal) (*Goal, error)
	DeleteGoal(ctx context.Context, owner, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name         string
	TargetAmount decimal.Decimal
	TargetDate   *time.Time
	Category     string
	Description  string
}

func (s *Service) Create(ctx context.Context, owner uuid.UUID, params CreateParams) (*WithProgress, error) {
	fields, err := validation.Goal(params.Name, params.TargetAmount, params.Category, params.Description)
	if err != nil {
		return nil, err
	}

	g := &Goal{
		OwnerID:       owner,
		Name:          fields.Name,
		TargetAmount:  fields.Target,
		CurrentAmount: decimal.Zero,
		TargetDate:    params.TargetDate,
		Category:      fields.Category,
		Description:   fields.Description,
	}
	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}

	return withProgress(g), nil
}

func (s *Service) List(ctx context.Context, owner uuid.UUID) ([]*WithProgress, error) {
	goals, err := s.repo.ListGoals(ctx, owner)
	if err != nil {
		return nil, err
	}

	out := make([]*WithProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, withProgress(g))
	}

	return out, nil
}

// Contribute adds amount to the goal's current amount. Concurrent
// contributions are all applied.
func (s *Service) Contribute(ctx context.Context, owner, id uuid.UUID, amount decimal.Decimal) (*WithProgress, error) {
	amount, err := validation.Contribution(amount)
	if err != nil {
		return nil, err
	}

	g, err := s.repo.AddContribution(ctx, owner, id, amount)
	if err != nil {
		return nil, err
	}

	return withProgress(g), nil
}

func (s *Service) Delete(ctx context.Context, owner, id uuid.UUID) error {
	return s.repo.DeleteGoal(ctx, owner, id)
}
