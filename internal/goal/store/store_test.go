package store_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/goal/store"
)

func TestStore_AddContribution_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "TotalOverflow", err: &pgconn.PgError{Code: "22003"}, wantErr: apperr.ErrValidation},
		{name: "ConnectionLost", err: &pgconn.PgError{Code: "08006"}, wantErr: apperr.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)

			defer db.Close()

			mock.ExpectQuery(regexp.QuoteMeta("is_completed = is_completed OR current_amount + $3 >= target_amount")).
				WillReturnError(tt.err)

			got, err := store.New(db).AddContribution(context.Background(), uuid.New(), uuid.New(), decimal.RequireFromString("5.00"))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_AddContribution_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	defer db.Close()

	mock.ExpectQuery("UPDATE goals").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = store.New(db).AddContribution(context.Background(), uuid.New(), uuid.New(), decimal.RequireFromString("5.00"))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
