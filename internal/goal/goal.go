package goal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal is a savings target. IsCompleted latches once CurrentAmount reaches
// TargetAmount and is never cleared afterwards.
type Goal struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
	Category      string
	Description   string
	IsCompleted   bool
	CreatedAt     time.Time
}

// WithProgress is the read-side view of a goal.
type WithProgress struct {
	Goal
	ProgressPercentage decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Progress returns current/target as a percentage, or zero for a zero target.
// It is not capped at 100.
func Progress(current, target decimal.Decimal) decimal.Decimal {
	if target.IsZero() {
		return decimal.Zero
	}

	return current.Div(target).Mul(hundred)
}

func withProgress(g *Goal) *WithProgress {
	return &WithProgress{
		Goal:               *g,
		ProgressPercentage: Progress(g.CurrentAmount, g.TargetAmount),
	}
}
