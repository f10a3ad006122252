package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Routes mounts the API on a chi router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, http.StatusText(http.StatusOK))
	})

	r.Post("/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(h.requireToken)
		r.Post("/userend", h.createUserEnd)

		r.With(requireUserEnd).Post("/feedMediaUploadURL", h.feedMediaUploadURL)
	})

	return r
}
