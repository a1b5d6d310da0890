// internal/app/features/events/status.go
package events

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	eventappstore "github.com/dalemusser/communityhub/internal/app/store/eventapps"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type statusRequest struct {
	Status string `json:"status"` // "pending" | "approved"
}

// HandleUpdateStatus handles PUT /events/applications/{id}/status (admin).
// The pending→approved transition awards a fixed 50-point credit, creating
// the point document if the user has none. The award fires once per
// transition; setting approved on an already approved application changes
// nothing and awards nothing.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	appID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid application id")
		return
	}

	var req statusRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if req.Status != models.ApplicationPending && req.Status != models.ApplicationApproved {
		httpjson.BadRequest(w, "Invalid status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	prev, err := h.Apps.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, eventappstore.ErrNotFound) {
			httpjson.NotFound(w, "Application not found")
			return
		}
		h.Log.Error("load event application failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	app, err := h.Apps.SetStatus(ctx, appID, req.Status)
	if err != nil {
		if errors.Is(err, eventappstore.ErrNotFound) {
			httpjson.NotFound(w, "Application not found")
			return
		}
		h.Log.Error("update event application status failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	if req.Status == models.ApplicationApproved && prev.Status != models.ApplicationApproved {
		h.awardPoints(ctx, app)
	}

	httpjson.OK(w, "Status updated", httpjson.M{"application": app})
}

type paymentRequest struct {
	PaymentStatus string `json:"paymentStatus"` // "unpaid" | "paid"
}

// HandleUpdatePayment handles PUT /events/applications/{id}/payment (admin).
// Marks an application paid or unpaid while it awaits action.
func (h *Handler) HandleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	appID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid application id")
		return
	}

	var req paymentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if req.PaymentStatus != models.PaymentUnpaid && req.PaymentStatus != models.PaymentPaid {
		httpjson.BadRequest(w, "Invalid payment status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Apps.SetPaymentStatus(ctx, appID, req.PaymentStatus); err != nil {
		if errors.Is(err, eventappstore.ErrNotFound) {
			httpjson.NotFound(w, "Application not found")
			return
		}
		h.Log.Error("update payment status failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.OK(w, "Payment status updated", nil)
}

func (h *Handler) awardPoints(ctx context.Context, app *models.EventApplication) {
	reason := fmt.Sprintf("Event registration approved: %s", app.EventName)
	if err := h.Points.Award(ctx, app.UserID, approvalPoints, reason); err != nil {
		h.Log.Error("points award failed",
			zap.String("user_id", app.UserID.Hex()),
			zap.String("event", app.EventName),
			zap.Error(err))
		return
	}
	h.Notifier.PointsAwarded(ctx, app.Username, approvalPoints, "event registration approved")
	h.Log.Info("points awarded",
		zap.String("user_id", app.UserID.Hex()),
		zap.Int("amount", approvalPoints),
		zap.String("event", app.EventName))
}
