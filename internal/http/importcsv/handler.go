package importcsv

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/http/respond"
	"github.com/MrJamesThe3rd/pfms/internal/importer"
	"github.com/MrJamesThe3rd/pfms/internal/transaction"
)

const maxUpload = 10 << 20

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importedTransaction struct {
	ID       uuid.UUID        `json:"id"`
	Kind     transaction.Kind `json:"kind"`
	Amount   string           `json:"amount"`
	Category string           `json:"category"`
	Note     string           `json:"note"`
}

type importResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []importedTransaction `json:"transactions"`
}

// importCSV accepts either a multipart form with a "file" field or the CSV
// itself as the request body.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	owner, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)

	var src io.Reader = r.Body

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUpload); err != nil {
			respond.Error(w, r, apperr.Invalid("file", "failed to parse form: "+err.Error()))
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			respond.Error(w, r, apperr.Invalid("file", "is required"))
			return
		}
		defer file.Close()

		src = file
	}

	txs, err := h.svc.Import(r.Context(), owner, src)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = apperr.Invalid("file", "exceeds the 10 MiB upload limit")
		}

		respond.Error(w, r, err)

		return
	}

	resp := importResponse{
		Imported:     len(txs),
		Transactions: make([]importedTransaction, 0, len(txs)),
	}

	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, importedTransaction{
			ID:       tx.ID,
			Kind:     tx.Kind,
			Amount:   tx.Amount.StringFixed(2),
			Category: tx.Category,
			Note:     tx.Note,
		})
	}

	respond.JSON(w, http.StatusCreated, resp)
}
