package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pfms/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type Recorder interface {
	ImportBatch(ctx context.Context, owner uuid.UUID, params []transaction.CreateParams) ([]*transaction.Transaction, error)
}

type Categorizer interface {
	Suggest(ctx context.Context, owner uuid.UUID, note string) (string, error)
}

// Service parses an upload, fills blank categories from the owner's rules
// and records every row in one batch.
type Service struct {
	parser   *Parser
	recorder Recorder
	rules    Categorizer
}

func NewService(recorder Recorder, rules Categorizer) *Service {
	return &Service{
		parser:   NewParser(),
		recorder: recorder,
		rules:    rules,
	}
}

func (s *Service) Import(ctx context.Context, owner uuid.UUID, r io.Reader) ([]*transaction.Transaction, error) {
	params, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	for i := range params {
		if params[i].Category != "" {
			continue
		}

		category, err := s.rules.Suggest(ctx, owner, params[i].Note)
		if err != nil {
			return nil, fmt.Errorf("categorizing row %d: %w", i, err)
		}

		params[i].Category = category
	}

	return s.recorder.ImportBatch(ctx, owner, params)
}
