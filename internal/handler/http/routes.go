package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	router.Get("/api/version", h.getVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		// long-lived, so no timeout and no compression
		r.Get("/api/zones/{zone}/subscribe", h.subscribe)

		r.Group(func(r chi.Router) {
			if h.requestTimeout > 0 {
				r.Use(middleware.Timeout(h.requestTimeout))
			}
			r.Use(withGZip)

			r.Get("/api/principal", h.getPrincipal)

			r.Put("/api/zones/{zone}", h.ensureZone)
			r.Get("/api/zones/{zone}/changes", h.changes)

			r.With(h.verifyBodyHash).Post("/api/zones/{zone}/records", h.createRecord)
			r.Get("/api/zones/{zone}/records/{id}", h.getRecord)
			r.With(h.verifyBodyHash).Put("/api/zones/{zone}/records/{id}", h.modifyRecord)
			r.Delete("/api/zones/{zone}/records/{id}", h.deleteRecord)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
