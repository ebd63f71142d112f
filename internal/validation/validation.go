// Package validation holds the field and cross-field rules applied before any
// write reaches the store. Every function is pure: it either returns the
// normalized values or an *apperr.ValidationError.
package validation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/period"
)

const (
	KindIncome  = "income"
	KindExpense = "expense"

	DefaultTransactionCategory = "general"
	DefaultGoalCategory        = "savings"
)

// MaxAmount is the largest magnitude a NUMERIC(12,2) column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// Money rejects amounts the money columns would round or overflow.
func Money(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(2)) {
		return apperr.Invalid(field, "must have at most 2 decimal places")
	}

	if amount.Abs().GreaterThan(MaxAmount) {
		return apperr.Invalid(field, "must not exceed "+MaxAmount.StringFixed(2))
	}

	return nil
}

// TransactionFields is an accepted transaction candidate.
type TransactionFields struct {
	Kind     string
	Amount   decimal.Decimal
	Category string
	Note     string
}

func Transaction(kind string, amount decimal.Decimal, category, note string) (TransactionFields, error) {
	k, err := Kind(kind)
	if err != nil {
		return TransactionFields{}, err
	}

	if !amount.IsPositive() {
		return TransactionFields{}, apperr.Invalid("amount", "must be greater than 0")
	}

	if err := Money("amount", amount); err != nil {
		return TransactionFields{}, err
	}

	if strings.TrimSpace(category) == "" {
		category = DefaultTransactionCategory
	}

	return TransactionFields{
		Kind:     k,
		Amount:   amount,
		Category: strings.TrimSpace(category),
		Note:     note,
	}, nil
}

// Kind accepts exactly "income" or "expense".
func Kind(kind string) (string, error) {
	switch kind {
	case KindIncome, KindExpense:
		return kind, nil
	}

	return "", apperr.Invalid("kind", "must be 'income' or 'expense'")
}

func Month(s string) (period.Month, error) {
	m, err := period.Parse(s)
	if err != nil {
		return period.Month{}, apperr.Invalid("month", "must be in YYYY-MM format")
	}

	return m, nil
}

// BudgetFields is an accepted budget candidate.
type BudgetFields struct {
	Category string
	Month    period.Month
	Cap      decimal.Decimal
}

func Budget(category, month string, capAmount decimal.Decimal) (BudgetFields, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return BudgetFields{}, apperr.Invalid("category", "is required")
	}

	m, err := Month(month)
	if err != nil {
		return BudgetFields{}, err
	}

	if capAmount.IsNegative() {
		return BudgetFields{}, apperr.Invalid("cap_amount", "must be greater than or equal to 0")
	}

	if err := Money("cap_amount", capAmount); err != nil {
		return BudgetFields{}, err
	}

	return BudgetFields{Category: category, Month: m, Cap: capAmount}, nil
}

// GoalFields is an accepted goal candidate.
type GoalFields struct {
	Name        string
	Target      decimal.Decimal
	Category    string
	Description string
}

func Goal(name string, target decimal.Decimal, category, description string) (GoalFields, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return GoalFields{}, apperr.Invalid("name", "is required")
	}

	if !target.IsPositive() {
		return GoalFields{}, apperr.Invalid("target_amount", "must be greater than 0")
	}

	if err := Money("target_amount", target); err != nil {
		return GoalFields{}, err
	}

	if strings.TrimSpace(category) == "" {
		category = DefaultGoalCategory
	}

	return GoalFields{
		Name:        name,
		Target:      target,
		Category:    strings.TrimSpace(category),
		Description: description,
	}, nil
}

func Contribution(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, apperr.Invalid("amount", "contribution amount must be positive")
	}

	if err := Money("amount", amount); err != nil {
		return decimal.Zero, err
	}

	return amount, nil
}

// ReminderFields is an accepted reminder candidate.
type ReminderFields struct {
	Name   string
	Amount decimal.Decimal
	Payee  string
	Notes  string
}

func Reminder(name string, amount decimal.Decimal, payee, notes string) (ReminderFields, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ReminderFields{}, apperr.Invalid("name", "is required")
	}

	if amount.IsNegative() {
		return ReminderFields{}, apperr.Invalid("amount", "must be greater than or equal to 0")
	}

	if err := Money("amount", amount); err != nil {
		return ReminderFields{}, err
	}

	return ReminderFields{Name: name, Amount: amount, Payee: payee, Notes: notes}, nil
}

// DateRange rejects a range whose lower bound is after its upper bound.
func DateRange(from, to *time.Time) error {
	if from != nil && to != nil && from.After(*to) {
		return apperr.Invalid("from_date", "must not be after 'to'")
	}

	return nil
}

// Credentials normalizes the email and enforces a minimum password length.
func Credentials(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", apperr.Invalid("email", "must be a valid email address")
	}

	if len(password) < 8 {
		return "", apperr.Invalid("password", "must be at least 8 characters")
	}

	return email, nil
}
