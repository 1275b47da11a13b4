package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.methodNotAllowed)

	router.Get("/metrics", h.metrics.Handler().ServeHTTP)
	router.Get("/api/version", h.getVersion)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/guest", h.guest)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Post("/api/quota/{action}", h.checkAndConsume)

		r.Get("/api/predictions", h.listPredictions)
		r.Post("/api/predictions", h.recordPrediction)
		r.Get("/api/reports", h.listReports)
		r.Post("/api/reports", h.recordReport)

		r.Get("/api/audit", h.listAudit)
		r.Get("/api/sessions", h.listSessions)

		r.Get("/api/settings", h.listSettings)
		r.Put("/api/settings/{key}", h.updateSetting)

		r.Get("/api/users", h.listUsers)
		r.Post("/api/users", h.createUser)
		r.Put("/api/users/{id}/password", h.changePassword)
		r.Put("/api/users/{id}/role", h.changeRole)
		r.Put("/api/users/{id}/active", h.setActive)
	})

	return router
}
