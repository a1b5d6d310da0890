// internal/app/features/inbox/routes.go
package inbox

import (
	"github.com/dalemusser/communityhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the inbox endpoints.
// Typically: r.Mount("/inbox", inbox.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(authz.RequireSignedIn)
		pr.Get("/", h.HandleList)
		pr.Get("/count", h.HandleCount)
	})
	return r
}
