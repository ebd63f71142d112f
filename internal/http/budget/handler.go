package budget

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/internal/budget"
	"github.com/MrJamesThe3rd/pfms/internal/http/respond"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/{id}", h.delete)
}

type createBudgetRequest struct {
	Category  string          `json:"category"`
	Month     string          `json:"month"`
	CapAmount decimal.Decimal `json:"cap_amount"`
}

type budgetResponse struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Month       string    `json:"month"`
	CapAmount   string    `json:"cap_amount"`
	Spent       string    `json:"spent"`
	Remaining   string    `json:"remaining"`
	Utilization string    `json:"utilization"`
}

func toResponse(b *budget.WithUtilization) budgetResponse {
	return budgetResponse{
		ID:          b.ID,
		Category:    b.Category,
		Month:       b.Month.String(),
		CapAmount:   b.Cap.StringFixed(2),
		Spent:       b.Spent.StringFixed(2),
		Remaining:   b.Remaining().StringFixed(2),
		Utilization: b.Ratio().StringFixed(4),
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	owner, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var req createBudgetRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	b, err := h.svc.Create(r.Context(), owner, budget.CreateParams{
		Category: req.Category,
		Month:    req.Month,
		Cap:      req.CapAmount,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(&budget.WithUtilization{Budget: *b}))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	owner, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	budgets, err := h.svc.List(r.Context(), owner, r.URL.Query().Get("month"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = toResponse(b)
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
