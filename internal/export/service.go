// Package export assembles and renders the monthly statement.
package export

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/pfms/internal/budget"
	"github.com/MrJamesThe3rd/pfms/internal/period"
	"github.com/MrJamesThe3rd/pfms/internal/transaction"
	"github.com/MrJamesThe3rd/pfms/internal/validation"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=export
type Ledger interface {
	MonthlyTotals(ctx context.Context, owner uuid.UUID, ref time.Time) (*transaction.Totals, error)
	ListMonth(ctx context.Context, owner uuid.UUID, month period.Month) ([]*transaction.Transaction, error)
}

type Budgets interface {
	List(ctx context.Context, owner uuid.UUID, month string) ([]*budget.WithUtilization, error)
}

// Statement is everything known about one owner's month.
type Statement struct {
	Month        period.Month
	Totals       transaction.Totals
	Budgets      []*budget.WithUtilization
	Transactions []*transaction.Transaction
}

type Service struct {
	ledger  Ledger
	budgets Budgets
}

func NewService(ledger Ledger, budgets Budgets) *Service {
	return &Service{ledger: ledger, budgets: budgets}
}

// Statement loads totals, budgets and transactions for month concurrently.
// The first failure cancels the remaining loads.
func (s *Service) Statement(ctx context.Context, owner uuid.UUID, month string) (*Statement, error) {
	m, err := validation.Month(month)
	if err != nil {
		return nil, err
	}

	st := &Statement{Month: m}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		totals, err := s.ledger.MonthlyTotals(gctx, owner, m.Start())
		if err != nil {
			return err
		}

		st.Totals = *totals

		return nil
	})

	g.Go(func() error {
		budgets, err := s.budgets.List(gctx, owner, m.String())
		if err != nil {
			return err
		}

		st.Budgets = budgets

		return nil
	})

	g.Go(func() error {
		txs, err := s.ledger.ListMonth(gctx, owner, m)
		if err != nil {
			return err
		}

		st.Transactions = txs

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return st, nil
}
