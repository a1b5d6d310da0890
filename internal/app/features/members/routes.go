// internal/app/features/members/routes.go
package members

import (
	"github.com/dalemusser/communityhub/internal/app/system/authz"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all membership routes under the path where the caller mounts it.
// Typically: r.Mount("/members", members.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(authz.RequireSignedIn)
		pr.Post("/apply", h.HandleApply)
	})

	r.Group(func(ar chi.Router) {
		ar.Use(authz.RequireRole(models.RoleAdmin))
		ar.Get("/applications", h.HandleListApplications)
		ar.Post("/action", h.HandleAction)
	})

	return r
}
