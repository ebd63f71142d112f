package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/transaction"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestService_Record(t *testing.T) {
	owner := uuid.New()

	type testCase struct {
		name      string
		params    transaction.CreateParams
		setupMock func(m *transaction.MockRepository)
		wantCat   string
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: transaction.CreateParams{
				Kind:     transaction.KindIncome,
				Amount:   dec("5000.00"),
				Category: "salary",
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
			wantCat: "salary",
		},
		{
			name: "DefaultsCategory",
			params: transaction.CreateParams{
				Kind:   transaction.KindExpense,
				Amount: dec("12.50"),
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						return nil
					})
			},
			wantCat: "general",
		},
		{
			name:    "ZeroAmount",
			params:  transaction.CreateParams{Kind: transaction.KindExpense, Amount: decimal.Zero},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "NegativeAmount",
			params:  transaction.CreateParams{Kind: transaction.KindIncome, Amount: dec("-1")},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "UnknownKind",
			params:  transaction.CreateParams{Kind: "refund", Amount: dec("1")},
			wantErr: apperr.ErrValidation,
		},
		{
			name:   "RepoError",
			params: transaction.CreateParams{Kind: transaction.KindIncome, Amount: dec("1")},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(apperr.Unavailable(errors.New("db error")))
			},
			wantErr: apperr.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Record(context.Background(), owner, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, owner, got.OwnerID)
			assert.Equal(t, tt.wantCat, got.Category)
		})
	}
}

func TestService_List(t *testing.T) {
	owner := uuid.New()
	expense := transaction.KindExpense

	type testCase struct {
		name      string
		filter    transaction.ListFilter
		setupMock func(m *transaction.MockRepository)
		wantLen   int
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "All",
			filter: transaction.ListFilter{},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), owner, transaction.ListFilter{}).
					Return([]*transaction.Transaction{{ID: uuid.New()}, {ID: uuid.New()}}, nil)
			},
			wantLen: 2,
		},
		{
			name:   "ByKind",
			filter: transaction.ListFilter{Kind: &expense},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), owner, transaction.ListFilter{Kind: &expense}).
					Return([]*transaction.Transaction{{ID: uuid.New(), Kind: expense}}, nil)
			},
			wantLen: 1,
		},
		{
			name:    "BadKind",
			filter:  transaction.ListFilter{Kind: new(transaction.Kind("EXPENSE"))},
			wantErr: apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.List(context.Background(), owner, tt.filter)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_MonthlyTotals(t *testing.T) {
	owner := uuid.New()

	type testCase struct {
		name        string
		ref         time.Time
		income      string
		expense     string
		wantStart   time.Time
		wantEnd     time.Time
		wantNet     string
		wantIncome  string
		wantExpense string
	}

	tests := []testCase{
		{
			name:        "SalaryAndGroceries",
			ref:         time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
			income:      "5000.00",
			expense:     "120.00",
			wantStart:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:     time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			wantIncome:  "5000.00",
			wantExpense: "120.00",
			wantNet:     "4880.00",
		},
		{
			name:        "EmptyMonth",
			ref:         time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC),
			income:      "0",
			expense:     "0",
			wantStart:   time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			wantIncome:  "0.00",
			wantExpense: "0.00",
			wantNet:     "0.00",
		},
		{
			name:        "NegativeNet",
			ref:         time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			income:      "100.10",
			expense:     "250.25",
			wantStart:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantIncome:  "100.10",
			wantExpense: "250.25",
			wantNet:     "-150.15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			repo.EXPECT().
				SumByKind(gomock.Any(), owner, tt.wantStart, tt.wantEnd).
				Return(dec(tt.income), dec(tt.expense), nil)

			svc := transaction.NewService(repo)
			got, err := svc.MonthlyTotals(context.Background(), owner, tt.ref)
			require.NoError(t, err)

			assert.Equal(t, tt.wantIncome, got.Income.StringFixed(2))
			assert.Equal(t, tt.wantExpense, got.Expense.StringFixed(2))
			assert.Equal(t, tt.wantNet, got.Net.StringFixed(2))
			assert.True(t, got.Net.Equal(got.Income.Sub(got.Expense)))
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner, other := uuid.New(), uuid.New()
	id := uuid.New()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().DeleteTransaction(gomock.Any(), owner, id).Return(nil)
	repo.EXPECT().DeleteTransaction(gomock.Any(), other, id).Return(apperr.ErrNotFound)

	svc := transaction.NewService(repo)

	require.NoError(t, svc.Delete(context.Background(), owner, id))
	assert.ErrorIs(t, svc.Delete(context.Background(), other, id), apperr.ErrNotFound)
}

func TestService_ImportBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	repo := transaction.NewMockRepository(ctrl)
	btx := transaction.NewMockBatchTx(ctrl)
	svc := transaction.NewService(repo)

	params := []transaction.CreateParams{
		{Kind: transaction.KindExpense, Amount: dec("3.20"), Category: "coffee"},
		{Kind: transaction.KindIncome, Amount: dec("900")},
	}

	repo.EXPECT().BeginBatch(gomock.Any()).Return(btx, nil)
	btx.EXPECT().
		CreateTransactions(gomock.Any(), gomock.Len(2)).
		Return(nil)
	btx.EXPECT().Commit().Return(nil)
	btx.EXPECT().Rollback().Return(nil)

	txs, err := svc.ImportBatch(context.Background(), owner, params)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "coffee", txs[0].Category)
	assert.Equal(t, "general", txs[1].Category)
	assert.Equal(t, owner, txs[1].OwnerID)
}

func TestService_ImportBatch_InvalidRowWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	params := []transaction.CreateParams{
		{Kind: transaction.KindExpense, Amount: dec("3.20")},
		{Kind: transaction.KindExpense, Amount: dec("0")},
	}

	_, err := svc.ImportBatch(context.Background(), uuid.New(), params)
	require.ErrorIs(t, err, apperr.ErrValidation)

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "rows[1].amount", verr.Field)
}

func TestService_ImportBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := transaction.NewService(transaction.NewMockRepository(ctrl))

	txs, err := svc.ImportBatch(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, txs)
}
