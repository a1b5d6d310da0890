// internal/app/features/events/action.go
package events

import (
	"context"
	"errors"
	"net/http"

	eventappstore "github.com/dalemusser/communityhub/internal/app/store/eventapps"
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

// HandleAction handles POST /events/action (admin). Accepting upserts the
// participant record and deletes the application; rejecting just deletes it.
// Points are not awarded here; that happens on the status-update endpoint.
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
		if errors.Is(err, eventappstore.ErrNotFound) {
			httpjson.NotFound(w, "Application not found")
			return
		}
		h.Log.Error("load event application failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	switch req.Action {
	case "accept":
		if err := h.accept(ctx, app); err != nil {
			h.Log.Error("accept event application failed",
				zap.String("application_id", app.ID.Hex()), zap.Error(err))
			httpjson.Internal(w)
			return
		}
		httpjson.OK(w, "Accepted", nil)
	case "reject":
		if err := h.Apps.Delete(ctx, app.ID); err != nil {
			h.Log.Error("delete event application failed",
				zap.String("application_id", app.ID.Hex()), zap.Error(err))
			httpjson.Internal(w)
			return
		}
		h.Notifier.EventRejected(ctx, app.Username, app.EventName)
		h.Log.Info("event application rejected",
			zap.String("application_id", app.ID.Hex()),
			zap.String("username", app.Username))
		httpjson.OK(w, "Rejected", nil)
	}
}

func (h *Handler) accept(ctx context.Context, app *models.EventApplication) error {
	err := h.Participants.Upsert(ctx, models.Participant{
		UserID:    app.UserID,
		Username:  app.Username,
		EventName: app.EventName,
		TeamName:  app.TeamName,
		Contact:   app.Contact,
		Role:      models.RoleMember,
	})
	if err != nil {
		return err
	}
	if err := h.Apps.Delete(ctx, app.ID); err != nil {
		return err
	}
	h.Notifier.EventApproved(ctx, app.Username, app.EventName)
	h.Log.Info("event application accepted",
		zap.String("application_id", app.ID.Hex()),
		zap.String("username", app.Username),
		zap.String("event", app.EventName))
	return nil
}
