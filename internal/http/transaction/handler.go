package transaction

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/internal/http/respond"
	"github.com/MrJamesThe3rd/pfms/internal/period"
	"github.com/MrJamesThe3rd/pfms/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/totals", h.totals)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Kind     transaction.Kind `json:"kind"`
	Amount   decimal.Decimal  `json:"amount"`
	Category string           `json:"category"`
	Note     string           `json:"note"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	owner, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var req createTransactionRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	tx, err := h.svc.Record(r.Context(), owner, transaction.CreateParams{
		Kind:     req.Kind,
		Amount:   req.Amount,
		Category: req.Category,
		Note:     req.Note,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	owner, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var filter transaction.ListFilter

	if s := r.URL.Query().Get("kind"); s != "" {
		filter.Kind = new(transaction.Kind(s))
	}

	txs, err := h.svc.List(r.Context(), owner, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

// totals reports the current UTC calendar month.
func (h *Handler) totals(w http.ResponseWriter, r *http.Request) {
	owner, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	now := time.Now().UTC()

	t, err := h.svc.MonthlyTotals(r.Context(), owner, now)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, totalsResponse{
		Month:   period.Of(now).String(),
		Income:  t.Income.StringFixed(2),
		Expense: t.Expense.StringFixed(2),
		Net:     t.Net.StringFixed(2),
	})
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
