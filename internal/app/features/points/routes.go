// internal/app/features/points/routes.go
package points

import (
	"github.com/dalemusser/communityhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the points endpoints.
// Typically: r.Mount("/points", points.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(authz.RequireSignedIn)
		pr.Get("/me", h.HandleMe)
	})
	return r
}
