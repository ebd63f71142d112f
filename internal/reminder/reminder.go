package reminder

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reminder is a bill due on a calendar date. It carries no completion state.
type Reminder struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Name    string
	DueDate time.Time
	Amount  decimal.Decimal
	Payee   string
	Notes   string
}

// ListFilter bounds DueDate inclusively on both ends.
type ListFilter struct {
	From *time.Time
	To   *time.Time
}

// dateOnly truncates t to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
