package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=reminder
type Repository interface {
	CreateReminder(ctx context.Context, r *Reminder) error
	ListReminders(ctx context.Context, owner uuid.UUID, filter ListFilter) ([]*Reminder, error)
	DeleteReminder(ctx context.Context, owner, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name    string
	DueDate time.Time
	Amount  decimal.Decimal
	Payee   string
	Notes   string
}

func (s *Service) Create(ctx context.Context, owner uuid.UUID, params CreateParams) (*Reminder, error) {
	fields, err := validation.Reminder(params.Name, params.Amount, params.Payee, params.Notes)
	if err != nil {
		return nil, err
	}

	if params.DueDate.IsZero() {
		return nil, apperr.Invalid("due_date", "is required")
	}

	r := &Reminder{
		OwnerID: owner,
		Name:    fields.Name,
		DueDate: dateOnly(params.DueDate),
		Amount:  fields.Amount,
		Payee:   fields.Payee,
		Notes:   fields.Notes,
	}
	if err := s.repo.CreateReminder(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

// List returns reminders ordered by due date, then name.
func (s *Service) List(ctx context.Context, owner uuid.UUID, filter ListFilter) ([]*Reminder, error) {
	if err := validation.DateRange(filter.From, filter.To); err != nil {
		return nil, err
	}

	var normalized ListFilter

	if filter.From != nil {
		normalized.From = new(dateOnly(*filter.From))
	}

	if filter.To != nil {
		normalized.To = new(dateOnly(*filter.To))
	}

	return s.repo.ListReminders(ctx, owner, normalized)
}

func (s *Service) Delete(ctx context.Context, owner, id uuid.UUID) error {
	return s.repo.DeleteReminder(ctx, owner, id)
}
