package reminder

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/http/respond"
	"github.com/MrJamesThe3rd/pfms/internal/reminder"
)

type Handler struct {
	svc *reminder.Service
}

func NewHandler(svc *reminder.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/{id}", h.delete)
}

type createReminderRequest struct {
	Name    string          `json:"name"`
	DueDate string          `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
	Payee   string          `json:"payee"`
	Notes   string          `json:"notes"`
}

type reminderResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	DueDate string    `json:"due_date"`
	Amount  string    `json:"amount"`
	Payee   string    `json:"payee"`
	Notes   string    `json:"notes"`
}

func toResponse(rem *reminder.Reminder) reminderResponse {
	return reminderResponse{
		ID:      rem.ID,
		Name:    rem.Name,
		DueDate: rem.DueDate.Format(time.DateOnly),
		Amount:  rem.Amount.StringFixed(2),
		Payee:   rem.Payee,
		Notes:   rem.Notes,
	}
}

// parseDate reads an optional YYYY-MM-DD value.
func parseDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, apperr.Invalid(field, "must be in YYYY-MM-DD format")
	}

	return &t, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	owner, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var req createReminderRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	due, err := parseDate("due_date", req.DueDate)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	params := reminder.CreateParams{
		Name:   req.Name,
		Amount: req.Amount,
		Payee:  req.Payee,
		Notes:  req.Notes,
	}
	if due != nil {
		params.DueDate = *due
	}

	rem, err := h.svc.Create(r.Context(), owner, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(rem))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	owner, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	from, err := parseDate("from_date", r.URL.Query().Get("from_date"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	to, err := parseDate("to", r.URL.Query().Get("to"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	reminders, err := h.svc.List(r.Context(), owner, reminder.ListFilter{From: from, To: to})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]reminderResponse, len(reminders))
	for i, rem := range reminders {
		resp[i] = toResponse(rem)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), owner, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
