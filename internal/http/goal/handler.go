package goal

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/goal"
	"github.com/MrJamesThe3rd/pfms/internal/http/respond"
)

type Handler struct {
	svc *goal.Service
}

func NewHandler(svc *goal.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Put("/{id}/contribute", h.contribute)
	r.Delete("/{id}", h.delete)
}

type createGoalRequest struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	TargetDate   string          `json:"target_date"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
}

type contributeRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type goalResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	TargetAmount       string    `json:"target_amount"`
	CurrentAmount      string    `json:"current_amount"`
	TargetDate         *string   `json:"target_date"`
	Category           string    `json:"category"`
	Description        string    `json:"description"`
	IsCompleted        bool      `json:"is_completed"`
	ProgressPercentage float64   `json:"progress_percentage"`
	CreatedAt          time.Time `json:"created_at"`
}

func toResponse(g *goal.WithProgress) goalResponse {
	resp := goalResponse{
		ID:                 g.ID,
		Name:               g.Name,
		TargetAmount:       g.TargetAmount.StringFixed(2),
		CurrentAmount:      g.CurrentAmount.StringFixed(2),
		Category:           g.Category,
		Description:        g.Description,
		IsCompleted:        g.IsCompleted,
		ProgressPercentage: g.ProgressPercentage.Round(2).InexactFloat64(),
		CreatedAt:          g.CreatedAt,
	}

	if g.TargetDate != nil {
		resp.TargetDate = new(g.TargetDate.Format(time.DateOnly))
	}

	return resp
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	owner, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var req createGoalRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	params := goal.CreateParams{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Category:     req.Category,
		Description:  req.Description,
	}

	if req.TargetDate != "" {
		d, err := time.Parse(time.DateOnly, req.TargetDate)
		if err != nil {
			respond.Error(w, r, apperr.Invalid("target_date", "must be in YYYY-MM-DD format"))
			return
		}

		params.TargetDate = &d
	}

	g, err := h.svc.Create(r.Context(), owner, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(g))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	owner, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	goals, err := h.svc.List(r.Context(), owner)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toResponse(g)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) contribute(w http.ResponseWriter, r *http.Request) {
	owner, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req contributeRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	g, err := h.svc.Contribute(r.Context(), owner, id, req.Amount)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(g))
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
