package export

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/export"
	"github.com/MrJamesThe3rd/pfms/internal/http/respond"
	"github.com/MrJamesThe3rd/pfms/internal/period"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.statement)
}

type format struct {
	ext         string
	contentType string
	write       func(*bytes.Buffer, *export.Statement) error
}

var formats = map[string]format{
	"csv": {
		ext:         "csv",
		contentType: "text/csv; charset=utf-8",
		write: func(b *bytes.Buffer, st *export.Statement) error {
			return export.WriteCSV(b, st)
		},
	},
	"xlsx": {
		ext:         "xlsx",
		contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		write: func(b *bytes.Buffer, st *export.Statement) error {
			return export.WriteXLSX(b, st)
		},
	},
}

// statement renders the month's statement as a download. The month defaults
// to the current UTC month and the format to CSV.
func (h *Handler) statement(w http.ResponseWriter, r *http.Request) {
	owner, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		month = period.Of(time.Now()).String()
	}

	name := r.URL.Query().Get("format")
	if name == "" {
		name = "csv"
	}

	f, ok := formats[name]
	if !ok {
		respond.Error(w, r, apperr.Invalid("format", "must be 'csv' or 'xlsx'"))
		return
	}

	st, err := h.svc.Statement(r.Context(), owner, month)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	// Rendered fully before any header is sent so a failure can still
	// become an error response.
	var buf bytes.Buffer
	if err := f.write(&buf, st); err != nil {
		respond.Error(w, r, fmt.Errorf("rendering statement: %w", err))
		return
	}

	w.Header().Set("Content-Type", f.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "statement_"+st.Month.String()+"."+f.ext))
	w.WriteHeader(http.StatusOK)

	_, _ = buf.WriteTo(w)
}
