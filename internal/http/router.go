package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/pfms/internal/http/account"
	"github.com/MrJamesThe3rd/pfms/internal/http/authn"
	"github.com/MrJamesThe3rd/pfms/internal/http/budget"
	"github.com/MrJamesThe3rd/pfms/internal/http/export"
	"github.com/MrJamesThe3rd/pfms/internal/http/goal"
	"github.com/MrJamesThe3rd/pfms/internal/http/importcsv"
	"github.com/MrJamesThe3rd/pfms/internal/http/reminder"
	"github.com/MrJamesThe3rd/pfms/internal/http/respond"
	"github.com/MrJamesThe3rd/pfms/internal/http/rules"
	"github.com/MrJamesThe3rd/pfms/internal/http/transaction"
)

type Options struct {
	Timeout        time.Duration
	AllowedOrigins []string
	Owners         authn.OwnerResolver
}

type Handlers struct {
	Accounts     *account.Handler
	Transactions *transaction.Handler
	Import       *importcsv.Handler
	Budgets      *budget.Handler
	Reminders    *reminder.Handler
	Goals        *goal.Handler
	Rules        *rules.Handler
	Export       *export.Handler
}

func New(opts Options, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Accounts.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(authn.RequireOwner(opts.Owners))

			r.Route("/transactions", func(r chi.Router) {
				r.Route("/import", h.Import.Routes)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AllowContentType("application/json"))
					h.Transactions.Routes(r)
				})
			})

			r.Route("/budgets", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Budgets.Routes(r)
			})

			r.Route("/reminders", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Reminders.Routes(r)
			})

			r.Route("/goals", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Goals.Routes(r)
			})

			r.Route("/rules", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Rules.Routes(r)
			})

			r.Route("/export", h.Export.Routes)
		})
	})

	return router
}
