// internal/app/features/media/routes.go
package media

import (
	"github.com/dalemusser/communityhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the media gallery endpoints.
// Typically: r.Mount("/media", media.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)

	r.Group(func(pr chi.Router) {
		pr.Use(authz.RequireSignedIn)
		pr.Post("/", h.HandleUpload)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
