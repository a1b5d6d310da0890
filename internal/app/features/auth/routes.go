// internal/app/features/auth/routes.go
package auth

import (
	"github.com/dalemusser/communityhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts credential auth endpoints.
// Typically: r.Mount("/auth", auth.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)

	r.Group(func(pr chi.Router) {
		pr.Use(authz.RequireSignedIn)
		pr.Get("/userinfo", h.HandleUserInfo)
	})

	return r
}
