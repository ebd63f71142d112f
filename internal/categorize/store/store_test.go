package store_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pfms/internal/categorize"
	"github.com/MrJamesThe3rd/pfms/internal/categorize/store"
)

func TestStore_FindMatch(t *testing.T) {
	owner := uuid.New()

	tests := []struct {
		name    string
		note    string
		rows    *sqlmock.Rows
		wantCat string
	}{
		{
			name:    "Match",
			note:    "LIDL 2024",
			rows:    sqlmock.NewRows([]string{"category"}).AddRow("groceries"),
			wantCat: "groceries",
		},
		{
			name: "NoMatch",
			note: "100% cotton",
			rows: sqlmock.NewRows([]string{"category"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)

			defer db.Close()

			// Patterns are matched as literal substrings, never as LIKE wildcards.
			mock.ExpectQuery(regexp.QuoteMeta("strpos(lower($2), lower(raw_pattern)) > 0")).
				WithArgs(owner, tt.note).
				WillReturnRows(tt.rows)

			got, err := store.New(db).FindMatch(context.Background(), owner, tt.note)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCat, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_CreateRule(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	defer db.Close()

	rule := &categorize.Rule{OwnerID: uuid.New(), RawPattern: "50%_off", Category: "shopping"}
	id := uuid.New()
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("VALUES ($1, $2, $3, clock_timestamp())")).
		WithArgs(rule.OwnerID, "50%_off", "shopping").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id.String(), created))

	require.NoError(t, store.New(db).CreateRule(context.Background(), rule))
	assert.Equal(t, id, rule.ID)
	assert.Equal(t, created, rule.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
