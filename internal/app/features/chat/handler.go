// internal/app/features/chat/handler.go
package chat

import (
	"context"
	"net/http"
	"strconv"

	sysauth "github.com/dalemusser/communityhub/internal/app/system/auth"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"github.com/gorilla/websocket"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// Handler owns the forum chat endpoints.
type Handler struct {
	Log       *zap.Logger
	Hub       *Hub
	Sanitizer *bluemonday.Policy
	upgrader  websocket.Upgrader
}

func NewHandler(hub *Hub, logger *zap.Logger) *Handler {
	return &Handler{
		Log:       logger,
		Hub:       hub,
		Sanitizer: bluemonday.UGCPolicy(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWS handles GET /chat/ws, upgrading to a websocket connection.
func (h *Handler) HandleWS(w http.ResponseWriter, r *http.Request) {
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		httpjson.Unauthorized(w, "Authentication required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	c := newClient(h.Hub, conn, u.Username, h.Sanitizer, h.Log)
	h.Hub.addClient(c)
	h.Log.Debug("chat client connected", zap.String("username", u.Username))

	go c.writePump()
	go c.readPump()
}

// HandleHistory handles GET /chat/history?limit=N.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.ParseInt(q, 10, 64)
		if err != nil || n < 0 {
			httpjson.BadRequest(w, "Invalid limit")
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	msgs, err := h.Hub.History(ctx, limit)
	if err != nil {
		h.Log.Error("chat history failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, "OK", httpjson.M{"messages": msgs})
}
