// internal/app/features/businesses/routes.go
package businesses

import (
	"github.com/dalemusser/communityhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all business directory routes.
// Typically: r.Mount("/businesses", businesses.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)

	r.Group(func(pr chi.Router) {
		pr.Use(authz.RequireSignedIn)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Post("/{id}/slideshow", h.HandleSlideshowUpload)
		pr.Delete("/{id}/slideshow", h.HandleSlideshowRemove)
	})

	return r
}
