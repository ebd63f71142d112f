package export_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pfms/internal/auth"
	"github.com/MrJamesThe3rd/pfms/internal/export"
	exportHandler "github.com/MrJamesThe3rd/pfms/internal/http/export"
	"github.com/MrJamesThe3rd/pfms/internal/period"
	"github.com/MrJamesThe3rd/pfms/internal/transaction"
)

func setup(t *testing.T) (*export.MockLedger, *export.MockBudgets, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	ledger := export.NewMockLedger(ctrl)
	budgets := export.NewMockBudgets(ctrl)

	router := chi.NewRouter()
	router.Route("/export", exportHandler.NewHandler(export.NewService(ledger, budgets)).Routes)

	return ledger, budgets, router
}

func asOwner(req *http.Request, owner uuid.UUID) *http.Request {
	return req.WithContext(auth.WithOwner(req.Context(), owner))
}

func expectEmptyMonth(ledger *export.MockLedger, budgets *export.MockBudgets) {
	ledger.EXPECT().
		MonthlyTotals(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&transaction.Totals{Income: decimal.NewFromInt(5000), Net: decimal.NewFromInt(5000)}, nil)
	ledger.EXPECT().ListMonth(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	budgets.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
}

func TestHandler_CSV(t *testing.T) {
	ledger, budgets, router := setup(t)
	expectEmptyMonth(ledger, budgets)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asOwner(httptest.NewRequest(http.MethodGet, "/export/?month=2024-03", nil), uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="statement_2024-03.csv"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "month,2024-03\n"))
	assert.Contains(t, rec.Body.String(), "income,5000.00")
}

func TestHandler_XLSX(t *testing.T) {
	ledger, budgets, router := setup(t)
	expectEmptyMonth(ledger, budgets)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asOwner(httptest.NewRequest(http.MethodGet, "/export/?month=2024-03&format=xlsx", nil), uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}

func TestHandler_DefaultsToCurrentMonth(t *testing.T) {
	ledger, budgets, router := setup(t)
	expectEmptyMonth(ledger, budgets)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asOwner(httptest.NewRequest(http.MethodGet, "/export/", nil), uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)

	want := "statement_" + period.Of(time.Now()).String() + ".csv"
	assert.Contains(t, rec.Header().Get("Content-Disposition"), want)
}

func TestHandler_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "UnknownFormat", query: "?month=2024-03&format=pdf"},
		{name: "BadMonth", query: "?month=2024-13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, router := setup(t)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, asOwner(httptest.NewRequest(http.MethodGet, "/export/"+tt.query, nil), uuid.New()))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
