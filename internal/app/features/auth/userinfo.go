// internal/app/features/auth/userinfo.go
package auth

import (
	"net/http"

	sysauth "github.com/dalemusser/communityhub/internal/app/system/auth"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
)

// HandleUserInfo handles GET /auth/userinfo, reporting the caller's identity.
func (h *Handler) HandleUserInfo(w http.ResponseWriter, r *http.Request) {
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		httpjson.Unauthorized(w, "Authentication required")
		return
	}
	httpjson.OK(w, "OK", httpjson.M{
		"user": httpjson.M{
			"id":       u.ID,
			"username": u.Username,
			"login_id": u.LoginID,
			"role":     u.Role,
		},
	})
}
