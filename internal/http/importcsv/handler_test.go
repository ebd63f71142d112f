package importcsv_test

import (
	"bytes"
	"context"
	"mime/multipart"
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
	"github.com/MrJamesThe3rd/pfms/internal/http/importcsv"
	"github.com/MrJamesThe3rd/pfms/internal/importer"
	"github.com/MrJamesThe3rd/pfms/internal/transaction"
)

const sample = "kind;amount;category;note\nexpense;3,20;;LIDL 123\nincome;900;salary;payroll\n"

func setup(t *testing.T) (*importer.MockRecorder, *importer.MockCategorizer, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	recorder := importer.NewMockRecorder(ctrl)
	rules := importer.NewMockCategorizer(ctrl)

	router := chi.NewRouter()
	router.Route("/import", importcsv.NewHandler(importer.NewService(recorder, rules)).Routes)

	return recorder, rules, router
}

func asOwner(req *http.Request, owner uuid.UUID) *http.Request {
	return req.WithContext(auth.WithOwner(req.Context(), owner))
}

func recordAll(_ context.Context, _ uuid.UUID, params []transaction.CreateParams) ([]*transaction.Transaction, error) {
	out := make([]*transaction.Transaction, len(params))
	for i, p := range params {
		out[i] = &transaction.Transaction{ID: uuid.New(), Kind: p.Kind, Amount: p.Amount, Category: p.Category, Note: p.Note}
	}

	return out, nil
}

func TestHandler_RawBody(t *testing.T) {
	recorder, rules, router := setup(t)
	owner := uuid.New()

	rules.EXPECT().Suggest(gomock.Any(), owner, "LIDL 123").Return("groceries", nil)
	recorder.EXPECT().ImportBatch(gomock.Any(), owner, gomock.Len(2)).DoAndReturn(recordAll)

	req := httptest.NewRequest(http.MethodPost, "/import/", strings.NewReader(sample))
	req.Header.Set("Content-Type", "text/csv")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asOwner(req, owner))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"imported":2`)
	assert.Contains(t, rec.Body.String(), `"amount":"3.20"`)
	assert.Contains(t, rec.Body.String(), `"category":"groceries"`)
}

func TestHandler_Multipart(t *testing.T) {
	recorder, rules, router := setup(t)
	owner := uuid.New()

	rules.EXPECT().Suggest(gomock.Any(), owner, gomock.Any()).Return("", nil)
	recorder.EXPECT().ImportBatch(gomock.Any(), owner, gomock.Len(2)).DoAndReturn(recordAll)

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "march.csv")
	require.NoError(t, err)

	_, err = part.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asOwner(req, owner))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"imported":2`)
}

func TestHandler_MultipartMissingFile(t *testing.T) {
	_, _, router := setup(t)

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asOwner(req, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"file"`)
}

func TestHandler_BadRow(t *testing.T) {
	_, _, router := setup(t)

	req := httptest.NewRequest(http.MethodPost, "/import/", strings.NewReader("kind;amount\nexpense;lots\n"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asOwner(req, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "line 2")
}

func TestHandler_TooLarge(t *testing.T) {
	_, _, router := setup(t)

	big := "kind;amount;note\n" + strings.Repeat("expense;1;"+strings.Repeat("x", 100)+"\n", 110_000)
	req := httptest.NewRequest(http.MethodPost, "/import/", strings.NewReader(big))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asOwner(req, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "upload limit")
}
