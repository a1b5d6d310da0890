// internal/app/features/members/apply.go
package members

import (
	"context"
	"errors"
	"net/http"

	memberappstore "github.com/dalemusser/communityhub/internal/app/store/memberapps"
	sysauth "github.com/dalemusser/communityhub/internal/app/system/auth"
	"github.com/dalemusser/communityhub/internal/app/system/authz"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
	"github.com/dalemusser/communityhub/internal/app/system/normalize"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type applyRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Reason   string `json:"reason"`
}

// HandleApply handles POST /members/apply. The applicant's username comes
// from their session, not the body.
func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		httpjson.Unauthorized(w, "Authentication required")
		return
	}
	if role, _, _, _ := authz.UserCtx(r); role == models.RoleMember || role == models.RoleAdmin {
		httpjson.BadRequest(w, "You are already a member")
		return
	}

	var req applyRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	req.FullName = normalize.Name(req.FullName)
	req.Email = normalize.Email(req.Email)
	if req.FullName == "" || req.Email == "" {
		httpjson.BadRequest(w, "Full name and email are required")
		return
	}
	if !validate.SimpleEmailValid(req.Email) {
		httpjson.BadRequest(w, "Email address is not valid")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	uid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		httpjson.Unauthorized(w, "Authentication required")
		return
	}

	app, err := h.Apps.Create(ctx, models.MemberApplication{
		UserID:   &uid,
		Username: u.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Reason:   req.Reason,
	})
	if err != nil {
		if errors.Is(err, memberappstore.ErrPendingExists) {
			httpjson.BadRequest(w, "You already have a pending application")
			return
		}
		h.Log.Error("create member application failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	h.Log.Info("member application submitted",
		zap.String("application_id", app.ID.Hex()),
		zap.String("username", app.Username))
	httpjson.Created(w, "Application submitted", httpjson.M{"application": app})
}
