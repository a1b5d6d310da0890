// internal/app/features/chat/routes.go
package chat

import (
	"github.com/dalemusser/communityhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the forum chat endpoints.
// Typically: r.Mount("/chat", chat.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(authz.RequireSignedIn)
		pr.Get("/ws", h.HandleWS)
		pr.Get("/history", h.HandleHistory)
	})
	return r
}
