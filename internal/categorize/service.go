package categorize

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
)

// Rule maps notes containing RawPattern (case-insensitive) to Category.
type Rule struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	RawPattern string
	Category   string
	CreatedAt  time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=categorize
type Repository interface {
	// FindMatch returns the category of the owner's longest pattern contained
	// in note, or "" when none matches.
	FindMatch(ctx context.Context, owner uuid.UUID, note string) (string, error)
	CreateRule(ctx context.Context, r *Rule) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns a category for note, or "" if no rule applies.
func (s *Service) Suggest(ctx context.Context, owner uuid.UUID, note string) (string, error) {
	if strings.TrimSpace(note) == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, owner, note)
}

// Learn remembers that notes containing pattern belong to category.
func (s *Service) Learn(ctx context.Context, owner uuid.UUID, pattern, category string) (*Rule, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, apperr.Invalid("raw_pattern", "is required")
	}

	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperr.Invalid("category", "is required")
	}

	r := &Rule{OwnerID: owner, RawPattern: pattern, Category: category}
	if err := s.repo.CreateRule(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}
