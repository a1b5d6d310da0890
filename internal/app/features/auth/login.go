// internal/app/features/auth/login.go
package auth

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/communityhub/internal/app/store/users"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

// HandleLogin handles POST /auth/login. Failed attempts always return the
// same message so login ids cannot be probed.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}

	if allowed, reason := h.Limiter.Check(r, req.LoginID); !allowed {
		httpjson.TooManyRequests(w, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByLoginID(ctx, req.LoginID)
	if err != nil {
		if !errors.Is(err, userstore.ErrNotFound) {
			h.Log.Error("login lookup failed", zap.Error(err))
			httpjson.Internal(w)
			return
		}
		httpjson.Unauthorized(w, "Invalid login id or password")
		return
	}

	// Google-only and not-yet-claimed accounts have no password to check.
	if user.AuthMethod != models.AuthInternal || user.PasswordHash == "" {
		httpjson.Unauthorized(w, "Invalid login id or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.Log.Debug("password mismatch", zap.String("login_id", user.LoginID))
		httpjson.Unauthorized(w, "Invalid login id or password")
		return
	}

	h.Limiter.ResetLogin(req.LoginID)
	h.Log.Info("user logged in", zap.String("user_id", user.ID.Hex()), zap.String("username", user.Username))
	h.signInAndRespond(w, r, user.ID.Hex(), "Login successful")
}

// HandleLogout handles POST /auth/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("session clear failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, "Logged out", nil)
}
