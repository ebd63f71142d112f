package categorize_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/categorize"
)

func TestService_Suggest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	repo := categorize.NewMockRepository(ctrl)
	repo.EXPECT().FindMatch(gomock.Any(), owner, "CARD PAYMENT LIDL 123").Return("groceries", nil)

	svc := categorize.NewService(repo)

	got, err := svc.Suggest(context.Background(), owner, "CARD PAYMENT LIDL 123")
	require.NoError(t, err)
	assert.Equal(t, "groceries", got)

	got, err = svc.Suggest(context.Background(), owner, "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_Learn(t *testing.T) {
	owner := uuid.New()

	type testCase struct {
		name      string
		pattern   string
		category  string
		setupMock func(m *categorize.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			pattern:  " lidl ",
			category: "groceries",
			setupMock: func(m *categorize.MockRepository) {
				m.EXPECT().
					CreateRule(gomock.Any(), &categorize.Rule{OwnerID: owner, RawPattern: "lidl", Category: "groceries"}).
					Return(nil)
			},
		},
		{
			name:     "EmptyPattern",
			pattern:  "",
			category: "groceries",
			wantErr:  apperr.ErrValidation,
		},
		{
			name:     "EmptyCategory",
			pattern:  "lidl",
			category: " ",
			wantErr:  apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := categorize.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := categorize.NewService(repo).Learn(context.Background(), owner, tt.pattern, tt.category)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "lidl", got.RawPattern)
		})
	}
}
