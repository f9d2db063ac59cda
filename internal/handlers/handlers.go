package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/creditmeter/docs"
	adminhandlers "github.com/GlebRadaev/creditmeter/internal/handlers/admin"
	creditshandlers "github.com/GlebRadaev/creditmeter/internal/handlers/credits"
	usagehandlers "github.com/GlebRadaev/creditmeter/internal/handlers/usage"
	"github.com/GlebRadaev/creditmeter/internal/service"
	"github.com/GlebRadaev/creditmeter/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers
type CreditsHandler interface {
	GetAccount(w http.ResponseWriter, r *http.Request)
	GetLedger(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	Adjust(w http.ResponseWriter, r *http.Request)
	GetAccount(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)
}

type UsageHandler interface {
	SubmitGeneration(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	CreditsHandler CreditsHandler
	AdminHandler   AdminHandler
	UsageHandler   UsageHandler
	tokens         auth.TokenValidator
}

func New(s *service.Services, tokens auth.TokenValidator) *Handlers {
	return &Handlers{
		CreditsHandler: creditshandlers.New(s.CreditService),
		AdminHandler:   adminhandlers.New(s.CreditService),
		UsageHandler:   usagehandlers.New(s.UsageService),
		tokens:         tokens,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Use(auth.AuthMiddleware(h.tokens))

		r.Route("/credits", func(r chi.Router) {
			r.Get("/", h.CreditsHandler.GetAccount)
			r.Get("/ledger", h.CreditsHandler.GetLedger)
			r.Put("/settings", h.CreditsHandler.UpdateSettings)
		})
		r.Post("/usage/generations", h.UsageHandler.SubmitGeneration)

		r.Group(func(r chi.Router) {
			r.Use(auth.AdminMiddleware)
			r.Route("/admin/credits/{userID}", func(r chi.Router) {
				r.Get("/", h.AdminHandler.GetAccount)
				r.Post("/adjustments", h.AdminHandler.Adjust)
				r.Get("/reconcile", h.AdminHandler.Reconcile)
			})
		})
	})

	return r
}
