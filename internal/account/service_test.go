package account_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/pfms/internal/account"
	"github.com/MrJamesThe3rd/pfms/internal/apperr"
)

func TestService_Register(t *testing.T) {
	type testCase struct {
		name      string
		email     string
		password  string
		setupMock func(m *account.MockRepository)
		wantEmail string
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			email:    "  Alice@Example.com ",
			password: "correct horse",
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *account.Account) error {
						a.ID = uuid.New()
						return nil
					})
			},
			wantEmail: "alice@example.com",
		},
		{
			name:     "DuplicateEmail",
			email:    "alice@example.com",
			password: "correct horse",
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).Return(apperr.ErrConflict)
			},
			wantErr: apperr.ErrConflict,
		},
		{
			name:     "ShortPassword",
			email:    "alice@example.com",
			password: "short",
			wantErr:  apperr.ErrValidation,
		},
		{
			name:     "BadEmail",
			email:    "alice",
			password: "long enough",
			wantErr:  apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := account.NewService(repo, bcrypt.MinCost)
			got, err := svc.Register(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantEmail, got.Email)
			assert.NotEqual(t, tt.password, got.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte(tt.password)))
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &account.Account{ID: uuid.New(), Email: "alice@example.com", PasswordHash: string(hash)}

	type testCase struct {
		name      string
		email     string
		password  string
		setupMock func(m *account.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			email:    "ALICE@example.com",
			password: "correct horse",
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(stored, nil)
			},
		},
		{
			name:     "WrongPassword",
			email:    "alice@example.com",
			password: "battery staple",
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(stored, nil)
			},
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name:     "UnknownEmail",
			email:    "bob@example.com",
			password: "correct horse",
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().GetByEmail(gomock.Any(), "bob@example.com").Return(nil, apperr.ErrNotFound)
			},
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name:     "MalformedCredentials",
			email:    "nobody",
			password: "x",
			wantErr:  apperr.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := account.NewService(repo, bcrypt.MinCost).Authenticate(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID, got.ID)
		})
	}
}
