// internal/app/features/auth/register.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/communityhub/internal/app/store/users"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
	"github.com/dalemusser/communityhub/internal/app/system/normalize"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/validate"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost trades hash time for brute-force resistance.
const bcryptCost = 12

type registerRequest struct {
	Username string `json:"username"`
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

// HandleRegister handles POST /auth/register. New accounts start as guests;
// membership comes through the application workflow.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}

	req.Username = normalize.Username(req.Username)
	req.LoginID = normalize.Username(req.LoginID)
	if req.Username == "" || req.LoginID == "" {
		httpjson.BadRequest(w, "Username and login id are required")
		return
	}
	if len(req.Password) < 8 {
		httpjson.BadRequest(w, "Password must be at least 8 characters")
		return
	}
	// Login id is an email address or a phone number.
	if !validate.SimpleEmailValid(req.LoginID) && normalize.Phone(req.LoginID) == "" {
		httpjson.BadRequest(w, "Login id must be an email address or phone number")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		h.Log.Error("bcrypt hash failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Accounts provisioned by membership acceptance have no credential yet;
	// registering with the same login id claims them instead of conflicting.
	if existing, err := h.Users.GetByLoginID(ctx, req.LoginID); err == nil {
		if existing.AuthMethod != models.AuthPending {
			httpjson.BadRequest(w, "An account with this login id already exists")
			return
		}
		if !strings.EqualFold(existing.Username, req.Username) {
			httpjson.BadRequest(w, "This login id is reserved for a different username")
			return
		}
		if err := h.Users.SetCredentials(ctx, existing.ID, string(hash), models.AuthInternal); err != nil {
			h.Log.Error("claim provisioned account failed", zap.Error(err))
			httpjson.Internal(w)
			return
		}
		h.Log.Info("provisioned account claimed", zap.String("user_id", existing.ID.Hex()))
		h.signInAndRespond(w, r, existing.ID.Hex(), "Registration successful")
		return
	} else if !errors.Is(err, userstore.ErrNotFound) {
		h.Log.Error("login id lookup failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	user, err := h.Users.Create(ctx, models.User{
		Username:     req.Username,
		LoginID:      req.LoginID,
		PasswordHash: string(hash),
		AuthMethod:   models.AuthInternal,
		Role:         models.RoleGuest,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateUsername) {
			httpjson.BadRequest(w, "Username or login id already taken")
			return
		}
		h.Log.Error("create user failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	h.Log.Info("user registered", zap.String("user_id", user.ID.Hex()), zap.String("username", user.Username))
	h.signInAndRespond(w, r, user.ID.Hex(), "Registration successful")
}

// signInAndRespond establishes the session cookie, issues a bearer token, and
// writes the success envelope.
func (h *Handler) signInAndRespond(w http.ResponseWriter, r *http.Request, userID, message string) {
	if err := h.SessionMgr.SignIn(w, r, userID); err != nil {
		h.Log.Error("session save failed", zap.Error(err), zap.String("user_id", userID))
		httpjson.Internal(w)
		return
	}
	token, err := h.SessionMgr.Tokens().Issue(userID)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err), zap.String("user_id", userID))
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, message, httpjson.M{"token": token})
}
