package validation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/validation"
)

func TestTransaction(t *testing.T) {
	type args struct {
		kind     string
		amount   string
		category string
		note     string
	}

	tests := []struct {
		name      string
		args      args
		wantCat   string
		wantField string
	}{
		{name: "Income", args: args{kind: "income", amount: "5000.00", category: "salary"}, wantCat: "salary"},
		{name: "ExpenseDefaultsCategory", args: args{kind: "expense", amount: "0.01"}, wantCat: "general"},
		{name: "BlankCategoryDefaults", args: args{kind: "expense", amount: "3", category: "   "}, wantCat: "general"},
		{name: "ZeroAmount", args: args{kind: "expense", amount: "0"}, wantField: "amount"},
		{name: "NegativeAmount", args: args{kind: "income", amount: "-10.50"}, wantField: "amount"},
		{name: "LargestAmount", args: args{kind: "income", amount: "9999999999.99", category: "bonus"}, wantCat: "bonus"},
		{name: "SubCentAmount", args: args{kind: "expense", amount: "0.004"}, wantField: "amount"},
		{name: "HalfCentAmount", args: args{kind: "expense", amount: "12.345"}, wantField: "amount"},
		{name: "AmountOverflow", args: args{kind: "income", amount: "10000000000"}, wantField: "amount"},
		{name: "UpperCaseKind", args: args{kind: "Income", amount: "1"}, wantField: "kind"},
		{name: "UnknownKind", args: args{kind: "transfer", amount: "1"}, wantField: "kind"},
		{name: "EmptyKind", args: args{kind: "", amount: "1"}, wantField: "kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validation.Transaction(tt.args.kind, decimal.RequireFromString(tt.args.amount), tt.args.category, tt.args.note)

			if tt.wantField != "" {
				require.ErrorIs(t, err, apperr.ErrValidation)

				var verr *apperr.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Field)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.args.kind, got.Kind)
			assert.Equal(t, tt.wantCat, got.Category)
			assert.Equal(t, "", got.Note)
		})
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{name: "Whole", amount: "10"},
		{name: "TwoPlaces", amount: "10.25"},
		{name: "TrailingZeros", amount: "10.2500"},
		{name: "Max", amount: "9999999999.99"},
		{name: "NegativeMax", amount: "-9999999999.99"},
		{name: "ThreePlaces", amount: "0.004", wantErr: true},
		{name: "HalfCent", amount: "0.005", wantErr: true},
		{name: "TooLarge", amount: "10000000000", wantErr: true},
		{name: "TooLargeByACent", amount: "10000000000.00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Money("amount", decimal.RequireFromString(tt.amount))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "amount", verr.Field)
		})
	}
}

func TestBudget(t *testing.T) {
	got, err := validation.Budget(" groceries ", "2024-03", decimal.RequireFromString("300.00"))
	require.NoError(t, err)
	assert.Equal(t, "groceries", got.Category)
	assert.Equal(t, "2024-03", got.Month.String())

	_, err = validation.Budget("groceries", "2024-3", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = validation.Budget("groceries", "March", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = validation.Budget("groceries", "2024-03", decimal.RequireFromString("-0.01"))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = validation.Budget("", "2024-03", decimal.Zero)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = validation.Budget("groceries", "2024-03", decimal.RequireFromString("300.001"))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	zero, err := validation.Budget("fun", "2024-03", decimal.Zero)
	require.NoError(t, err)
	assert.True(t, zero.Cap.IsZero())
}

func TestGoal(t *testing.T) {
	got, err := validation.Goal("Emergency fund", decimal.NewFromInt(1000), "", "")
	require.NoError(t, err)
	assert.Equal(t, "savings", got.Category)

	_, err = validation.Goal("Trip", decimal.Zero, "", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = validation.Goal(" ", decimal.NewFromInt(10), "", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = validation.Goal("Yacht", decimal.RequireFromString("10000000000"), "", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestContribution(t *testing.T) {
	_, err := validation.Contribution(decimal.Zero)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = validation.Contribution(decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = validation.Contribution(decimal.RequireFromString("0.005"))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = validation.Contribution(decimal.RequireFromString("0.004"))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	got, err := validation.Contribution(decimal.RequireFromString("250.00"))
	require.NoError(t, err)
	assert.Equal(t, "250.00", got.StringFixed(2))
}

func TestReminder(t *testing.T) {
	got, err := validation.Reminder("Rent", decimal.Zero, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Rent", got.Name)

	_, err = validation.Reminder("Rent", decimal.NewFromInt(-1), "", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = validation.Reminder("Rent", decimal.RequireFromString("899.999"), "", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDateRange(t *testing.T) {
	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, validation.DateRange(&from, &to), apperr.ErrValidation)
	assert.NoError(t, validation.DateRange(&to, &from))
	assert.NoError(t, validation.DateRange(&from, &from))
	assert.NoError(t, validation.DateRange(nil, &to))
}

func TestCredentials(t *testing.T) {
	email, err := validation.Credentials("  Demo@Example.com ", "demo1234")
	require.NoError(t, err)
	assert.Equal(t, "demo@example.com", email)

	_, err = validation.Credentials("demo", "demo1234")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = validation.Credentials("demo@example.com", "short")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
