// internal/app/features/members/action.go
package members

import (
	"context"
	"errors"
	"net/http"

	memberappstore "github.com/dalemusser/communityhub/internal/app/store/memberapps"
	userstore "github.com/dalemusser/communityhub/internal/app/store/users"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type actionRequest struct {
	ID     string `json:"id"`
	Action string `json:"action"` // "accept" | "reject"
}

// HandleAction handles POST /members/action (admin). Accepting promotes the
// applicant to member, creating the account first if the username is new;
// either branch deletes the application and notifies the applicant.
//
// The side effects are not transactional. A crash between the role change
// and the notification leaves a promoted member with no inbox message,
// which is recoverable by a second look at the member list.
func (h *Handler) HandleAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if req.Action != "accept" && req.Action != "reject" {
		httpjson.BadRequest(w, "Invalid action")
		return
	}
	appID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid application id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	app, err := h.Apps.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, memberappstore.ErrNotFound) {
			httpjson.NotFound(w, "Application not found")
			return
		}
		h.Log.Error("load member application failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	switch req.Action {
	case "accept":
		if err := h.accept(ctx, app); err != nil {
			h.Log.Error("accept member application failed",
				zap.String("application_id", app.ID.Hex()), zap.Error(err))
			httpjson.Internal(w)
			return
		}
		httpjson.OK(w, "Accepted", nil)
	case "reject":
		if err := h.Apps.Delete(ctx, app.ID); err != nil {
			h.Log.Error("delete member application failed",
				zap.String("application_id", app.ID.Hex()), zap.Error(err))
			httpjson.Internal(w)
			return
		}
		h.Notifier.MembershipRejected(ctx, app.Username, app.Email, app.FullName)
		h.Log.Info("member application rejected",
			zap.String("application_id", app.ID.Hex()),
			zap.String("username", app.Username))
		httpjson.OK(w, "Rejected", nil)
	}
}

// accept promotes an existing user or provisions a new account. Provisioned
// accounts carry auth_method "pending" and no credential; the applicant
// claims the account by registering with the same login id.
func (h *Handler) accept(ctx context.Context, app *models.MemberApplication) error {
	user, err := h.Users.GetByUsername(ctx, app.Username)
	switch {
	case err == nil:
		if err := h.Users.SetRole(ctx, user.ID, models.RoleMember); err != nil {
			return err
		}
	case errors.Is(err, userstore.ErrNotFound):
		created, err := h.Users.Create(ctx, models.User{
			Username:   app.Username,
			LoginID:    app.Email,
			AuthMethod: models.AuthPending,
			Role:       models.RoleMember,
		})
		if err != nil {
			return err
		}
		h.Log.Info("member account provisioned",
			zap.String("user_id", created.ID.Hex()),
			zap.String("username", created.Username))
	default:
		return err
	}

	if err := h.Apps.Delete(ctx, app.ID); err != nil {
		return err
	}
	h.Notifier.MembershipApproved(ctx, app.Username, app.Email, app.FullName)
	h.Log.Info("member application accepted",
		zap.String("application_id", app.ID.Hex()),
		zap.String("username", app.Username))
	return nil
}
