// internal/app/system/authz/authz.go

// Package authz provides route middleware that enforces the identity loaded
// by auth.LoadSessionUser. Responses are JSON envelopes; there are no HTML
// redirects in this API.
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/communityhub/internal/app/system/auth"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
)

// RequireSignedIn rejects requests without a context user.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.CurrentUser(r); !ok {
			httpjson.Unauthorized(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests whose context user lacks one of the allowed
// roles. A missing user yields 401; a present user with the wrong role 403.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := auth.CurrentUser(r)
			if !ok {
				httpjson.Unauthorized(w, "Authentication required")
				return
			}
			if _, ok := set[strings.ToLower(u.Role)]; !ok {
				httpjson.Forbidden(w, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserCtx is a convenience unpacking of the context user for handlers.
// Returns (role, username, userID, signedIn).
func UserCtx(r *http.Request) (string, string, string, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", "", false
	}
	return u.Role, u.Username, u.ID, true
}
