// internal/app/features/inbox/handler.go
package inbox

import (
	"context"
	"net/http"

	inboxstore "github.com/dalemusser/communityhub/internal/app/store/inbox"
	sysauth "github.com/dalemusser/communityhub/internal/app/system/auth"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the notification inbox.
type Handler struct {
	Log      *zap.Logger
	Messages *inboxstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		Messages: inboxstore.New(db),
	}
}

// HandleList handles GET /inbox. Reading the inbox consumes it: delivered
// messages are returned once and then deleted.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		httpjson.Unauthorized(w, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	msgs, err := h.Messages.Consume(ctx, u.Username)
	if err != nil {
		h.Log.Error("consume inbox failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, "OK", httpjson.M{"messages": msgs})
}

// HandleCount handles GET /inbox/count, a non-consuming unread badge count.
func (h *Handler) HandleCount(w http.ResponseWriter, r *http.Request) {
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		httpjson.Unauthorized(w, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Messages.Count(ctx, u.Username)
	if err != nil {
		h.Log.Error("count inbox failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, "OK", httpjson.M{"count": n})
}
