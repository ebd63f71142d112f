package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/internal/validation"
)

// Kind represents the kind of transaction (income or expense).
type Kind string

const (
	KindIncome  Kind = validation.KindIncome
	KindExpense Kind = validation.KindExpense
)

// Transaction is a single ledger record. It is immutable once stored.
type Transaction struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Kind      Kind
	Amount    decimal.Decimal
	Category  string
	Note      string
	CreatedAt time.Time
}

// Totals are the income and expense sums of one calendar month.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}
