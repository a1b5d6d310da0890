// internal/app/features/points/handler.go
package points

import (
	"context"
	"net/http"

	pointstore "github.com/dalemusser/communityhub/internal/app/store/points"
	sysauth "github.com/dalemusser/communityhub/internal/app/system/auth"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves point balances.
type Handler struct {
	Log    *zap.Logger
	Points *pointstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:    logger,
		Points: pointstore.New(db),
	}
}

// HandleMe handles GET /points/me, returning the caller's balance and history.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		httpjson.Unauthorized(w, "Authentication required")
		return
	}
	userID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		httpjson.Unauthorized(w, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	balance, err := h.Points.GetByUser(ctx, userID)
	if err != nil {
		h.Log.Error("load points failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, "OK", httpjson.M{
		"points":  balance.Points,
		"history": balance.History,
	})
}
