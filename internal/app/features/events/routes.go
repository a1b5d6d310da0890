// internal/app/features/events/routes.go
package events

import (
	"github.com/dalemusser/communityhub/internal/app/system/authz"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all event routes under the path where the caller mounts it.
// Typically: r.Mount("/events", events.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(authz.RequireRole(models.RoleMember, models.RoleAdmin))
		pr.Post("/apply", h.HandleApply)
	})

	r.Group(func(ar chi.Router) {
		ar.Use(authz.RequireRole(models.RoleAdmin))
		ar.Get("/applications", h.HandleListApplications)
		ar.Post("/action", h.HandleAction)
		ar.Put("/applications/{id}/status", h.HandleUpdateStatus)
		ar.Put("/applications/{id}/payment", h.HandleUpdatePayment)
	})

	return r
}
