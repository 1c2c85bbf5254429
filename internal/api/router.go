package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/handlers"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/config"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/metrics"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/middleware"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/services"
)

type RouterDeps struct {
	Cfg         config.Config
	Auth        *middleware.AuthMiddleware
	Memberships *middleware.Memberships
	Users       *services.UserService
	Workspaces  *services.WorkspaceService
	Accounts    *services.AccountService
	Categories  *services.CategoryService
	Txns        *services.TransactionService
	Recurring   *services.RecurringService
	Reconcile   *services.ReconciliationService
}

func NewRouter(d RouterDeps) http.Handler {
	ah := handlers.NewAuthHandler(d.Users)
	wh := handlers.NewWorkspaceHandler(d.Workspaces, d.Memberships)
	acch := handlers.NewAccountHandler(d.Accounts)
	ch := handlers.NewCategoryHandler(d.Categories)
	th := handlers.NewTransactionHandler(d.Txns)
	rh := handlers.NewRecurringHandler(d.Recurring)
	rch := handlers.NewReconciliationHandler(d.Reconcile)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", ah.Register)
		r.Post("/auth/login", ah.Login)
		r.Post("/auth/refresh", ah.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Auth)

			r.Get("/auth/me", ah.Me)
			r.Post("/workspaces", wh.Create)
			r.Get("/workspaces", wh.List)
			r.Get("/invitations", wh.MyInvitations)
			r.Post("/invitations/{token}/accept", wh.Accept)

			r.Route("/workspaces/{workspaceID}", func(r chi.Router) {
				r.Use(d.Memberships.RequireMember)

				r.Get("/", wh.Get)

				r.Route("/accounts", func(r chi.Router) {
					r.Post("/", acch.Create)
					r.Get("/", acch.List)
					r.Get("/{accountID}", acch.Get)
					r.Put("/{accountID}", acch.Rename)
					r.Post("/{accountID}/archive", acch.Archive)
					r.Get("/{accountID}/reconciliation", rch.View)
					r.Post("/{accountID}/balance-updates", rch.Record)
					r.Get("/{accountID}/balance-updates", rch.AccountHistory)
				})
				r.Get("/balance-updates", rch.History)

				r.Route("/categories", func(r chi.Router) {
					r.Post("/", ch.Create)
					r.Get("/", ch.List)
					r.Put("/{categoryID}", ch.Rename)
					r.Delete("/{categoryID}", ch.Delete)
				})

				r.Route("/transactions", func(r chi.Router) {
					r.Post("/", th.Create)
					r.Get("/", th.List)
					r.Post("/transfer", th.Transfer)
					r.Get("/{transactionID}", th.Get)
					r.Put("/{transactionID}", th.Update)
					r.Delete("/{transactionID}", th.Delete)
				})

				r.Route("/recurring", func(r chi.Router) {
					r.Post("/", rh.Create)
					r.Get("/", rh.List)
					r.Get("/{recurringID}", rh.Get)
					r.Put("/{recurringID}", rh.Update)
					r.Delete("/{recurringID}", rh.Delete)
				})

				// inviting and revoking are owner calls; reading the
				// workspace's invitations is open to any member
				r.Get("/invitations", wh.ListInvitations)
				r.Group(func(r chi.Router) {
					r.Use(d.Memberships.RequireOwner)
					r.Post("/invitations", wh.Invite)
					r.Delete("/invitations/{invitationID}", wh.Revoke)
				})
			})
		})
	})

	return r
}
