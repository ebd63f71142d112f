package budget

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/internal/period"
)

// Budget caps the spending of one category in one calendar month.
type Budget struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Category string
	Month    period.Month
	Cap      decimal.Decimal
}

// WithUtilization is the read-side view of a budget. Spent is recomputed from
// the ledger on every read and never stored.
type WithUtilization struct {
	Budget
	Spent decimal.Decimal
}

// Remaining is Cap minus Spent. It goes negative when the cap is exceeded.
func (b *WithUtilization) Remaining() decimal.Decimal {
	return b.Cap.Sub(b.Spent)
}

// Ratio is Spent divided by Cap, or zero for a zero cap.
func (b *WithUtilization) Ratio() decimal.Decimal {
	return Utilization(b.Spent, b.Cap)
}

// Utilization returns spent/cap, or zero when cap is zero.
func Utilization(spent, capAmount decimal.Decimal) decimal.Decimal {
	if capAmount.IsZero() {
		return decimal.Zero
	}

	return spent.Div(capAmount)
}
