package router

import (
	"net/http"

	"furk/internal/handlers/auth"
	"furk/internal/handlers/booking"
	"furk/internal/handlers/payment"
	"furk/internal/handlers/promo"
	"furk/internal/handlers/reward"
	"furk/internal/handlers/schedule"
	"furk/internal/handlers/user"
	"furk/transport/http/middleware"
	"furk/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	User     user.Handler
	Booking  booking.Handler
	Schedule schedule.Handler
	Promo    promo.Handler
	Reward   reward.Handler
	Payment  payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	AuthRole       middleware.AuthRole
	MerchantGate   middleware.MerchantGate
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.App.Tracing)
	router.Use(r.App.CORS)
	router.Use(r.App.RateLimit())
	router.Use(r.AuthRole.APIKey)
	router.Use(r.AuthRole.Auth)
	router.Use(r.AuthRole.RBAC)
	router.Use(r.MerchantGate.Verified)

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.WithMessage(w, http.StatusOK, "OK")
	})

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Schedule.Router(routerGroup)
		r.DomainHandlers.Promo.Router(routerGroup)
		r.DomainHandlers.Reward.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, authRole middleware.AuthRole, merchantGate middleware.MerchantGate) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		AuthRole:       authRole,
		MerchantGate:   merchantGate,
	}
}
