// internal/app/features/vouchers/routes.go
package vouchers

import (
	"github.com/dalemusser/communityhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all voucher routes under the path where the caller mounts it.
// Typically: r.Mount("/voucher", vouchers.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)

	r.Group(func(pr chi.Router) {
		pr.Use(authz.RequireSignedIn)

		// Catalog management (business owners; ownership checked in handlers)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)

		// Redemption workflow
		pr.Post("/redeem", h.HandleRedeem)
		pr.Get("/voucher-redemption", h.HandleListRedemptions)
	})

	return r
}
