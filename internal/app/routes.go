package app

import (
	"net/http"

	"github.com/cradoe/profilegate/internal/handler"
	"github.com/cradoe/profilegate/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *Application) routes() http.Handler {
	mux := http.NewServeMux()

	mid := middleware.New(app.errorHandler, app.Logger, app.Sessions)
	h := handler.NewRouteHandler(&handler.RouteHandler{
		ErrHandler: app.errorHandler,
		Profiles:   app.Profiles,
		Activity:   app.DB.Activity(),
		API:        app.Backend,
		Store:      app.Sessions,
		Config:     &app.Config,
		Logger:     app.Logger,
	})

	return Routes(mux, mid, h, app.errorHandler.NotFound)
}

// Routes registers every route on mux and wraps it in the global middleware chain.
func Routes(mux *http.ServeMux, mid *middleware.Middleware, h *handler.RouteHandler, notFound http.HandlerFunc) http.Handler {
	protected := func(fn http.HandlerFunc) http.Handler {
		return mid.RequireAuthenticatedUser(fn)
	}

	mux.HandleFunc("/", notFound)
	mux.HandleFunc("GET /status", h.HandleHealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/auth/session", h.HandleSessionCreate)
	mux.HandleFunc("GET /api/auth/session", h.HandleSessionShow)
	mux.HandleFunc("DELETE /api/auth/session", h.HandleSessionDelete)

	mux.Handle("GET /api/profile", protected(h.HandleProfileShow))
	mux.Handle("GET /api/profile/completion", protected(h.HandleProfileCompletion))
	mux.Handle("GET /api/profile/activity", protected(h.HandleProfileActivity))
	mux.Handle("GET /api/profile/forms/{section}", protected(h.HandleFormShow))
	mux.Handle("PATCH /api/profile/forms/{section}", protected(h.HandleFormUpdate))
	mux.Handle("PATCH /api/profile/guarantor", protected(h.HandleGuarantorUpdate))

	mux.Handle("GET /api/bank-accounts", protected(h.HandleBankAccounts))
	mux.Handle("POST /api/bank-accounts", protected(h.HandleBankAccountCreate))
	mux.Handle("DELETE /api/bank-accounts/{id}", protected(h.HandleBankAccountDelete))
	mux.Handle("PATCH /api/bank-accounts/{id}/default", protected(h.HandleBankAccountSetDefault))

	mux.Handle("POST /api/documents/{slot}", protected(h.HandleDocumentUpload))

	mux.Handle("GET /api/investments/plans", protected(h.HandleInvestmentPlans))
	mux.Handle("POST /api/investments/calculate-returns", protected(h.HandleInvestmentReturns))
	mux.Handle("GET /api/investments", protected(h.HandleInvestments))
	mux.Handle("POST /api/investments", protected(h.HandleInvestmentCreate))

	mux.Handle("GET /api/loans", protected(h.HandleLoans))
	mux.Handle("POST /api/loans", protected(h.HandleLoanCreate))

	mux.Handle("GET /api/wallet", protected(h.HandleWallet))

	return mid.RequestID(mid.LogAccess(mid.RecoverPanic(mid.Authenticate(mux))))
}
