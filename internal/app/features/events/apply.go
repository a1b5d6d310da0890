// internal/app/features/events/apply.go
package events

import (
	"context"
	"errors"
	"net/http"

	eventappstore "github.com/dalemusser/communityhub/internal/app/store/eventapps"
	sysauth "github.com/dalemusser/communityhub/internal/app/system/auth"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
	"github.com/dalemusser/communityhub/internal/app/system/normalize"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type applyRequest struct {
	EventName string `json:"event_name"`
	TeamName  string `json:"team_name"`
	Contact   string `json:"contact"`
}

// HandleApply handles POST /events/apply (member).
//
// The duplicate guard blocks on any pending application by this user, not
// just one for the same event, so a user cannot register for a second event
// while the first is pending. Admins clearing the queue unblocks them.
func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		httpjson.Unauthorized(w, "Authentication required")
		return
	}

	var req applyRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	req.EventName = normalize.Name(req.EventName)
	if req.EventName == "" {
		httpjson.BadRequest(w, "Event name is required")
		return
	}

	uid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		httpjson.Unauthorized(w, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	app, err := h.Apps.Create(ctx, models.EventApplication{
		UserID:    uid,
		Username:  u.Username,
		EventName: req.EventName,
		TeamName:  req.TeamName,
		Contact:   req.Contact,
	})
	if err != nil {
		if errors.Is(err, eventappstore.ErrPendingApplicationExists) {
			httpjson.BadRequest(w, "You already have a pending event application")
			return
		}
		h.Log.Error("create event application failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	h.Log.Info("event application submitted",
		zap.String("application_id", app.ID.Hex()),
		zap.String("username", app.Username),
		zap.String("event", app.EventName))
	httpjson.Created(w, "Application submitted", httpjson.M{"application": app})
}

// HandleListApplications handles GET /events/applications (admin).
func (h *Handler) HandleListApplications(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	apps, err := h.Apps.ListPending(ctx)
	if err != nil {
		h.Log.Error("list event applications failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, "OK", httpjson.M{"applications": apps})
}
