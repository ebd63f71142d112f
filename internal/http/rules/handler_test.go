package rules_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pfms/internal/auth"
	"github.com/MrJamesThe3rd/pfms/internal/categorize"
	rulesHandler "github.com/MrJamesThe3rd/pfms/internal/http/rules"
)

func setup(t *testing.T) (*categorize.MockRepository, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := categorize.NewMockRepository(ctrl)

	router := chi.NewRouter()
	router.Route("/rules", rulesHandler.NewHandler(categorize.NewService(repo)).Routes)

	return repo, router
}

func asOwner(req *http.Request, owner uuid.UUID) *http.Request {
	return req.WithContext(auth.WithOwner(req.Context(), owner))
}

func TestHandler_Learn(t *testing.T) {
	repo, router := setup(t)
	owner := uuid.New()

	repo.EXPECT().
		CreateRule(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *categorize.Rule) error {
			assert.Equal(t, owner, r.OwnerID)
			assert.Equal(t, "LIDL", r.RawPattern)

			r.ID = uuid.New()

			return nil
		})

	body := `{"raw_pattern":" LIDL ","category":"groceries"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asOwner(httptest.NewRequest(http.MethodPost, "/rules/", strings.NewReader(body)), owner))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"groceries"`)
}

func TestHandler_Learn_MissingCategory(t *testing.T) {
	_, router := setup(t)

	body := `{"raw_pattern":"LIDL"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asOwner(httptest.NewRequest(http.MethodPost, "/rules/", strings.NewReader(body)), uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"category"`)
}

func TestHandler_Suggest(t *testing.T) {
	tests := []struct {
		name      string
		note      string
		setupMock func(m *categorize.MockRepository, owner uuid.UUID)
		wantBody  string
	}{
		{
			name: "Match",
			note: "LIDL%20123",
			setupMock: func(m *categorize.MockRepository, owner uuid.UUID) {
				m.EXPECT().FindMatch(gomock.Any(), owner, "LIDL 123").Return("groceries", nil)
			},
			wantBody: `{"note":"LIDL 123","category":"groceries"}`,
		},
		{
			name: "NoMatch",
			note: "unknown",
			setupMock: func(m *categorize.MockRepository, owner uuid.UUID) {
				m.EXPECT().FindMatch(gomock.Any(), owner, "unknown").Return("", nil)
			},
			wantBody: `{"note":"unknown","category":""}`,
		},
		{
			name:     "BlankNote",
			note:     "",
			wantBody: `{"note":"","category":""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, router := setup(t)
			owner := uuid.New()

			if tt.setupMock != nil {
				tt.setupMock(repo, owner)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, asOwner(httptest.NewRequest(http.MethodGet, "/rules/suggest?note="+tt.note, nil), owner))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
