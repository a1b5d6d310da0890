// internal/app/features/chat/client.go
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4096
	// maxTextLen caps the visible text of a single chat message.
	maxTextLen = 1000
)

// inbound is what a client sends over the socket.
type inbound struct {
	Text string `json:"text"`
}

// client is one websocket connection owned by the hub.
type client struct {
	hub      *Hub
	conn     *websocket.Conn
	username string
	send     chan []byte
	policy   *bluemonday.Policy
	log      *zap.Logger

	closeOnce sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn, username string, policy *bluemonday.Policy, logger *zap.Logger) *client {
	return &client{
		hub:      hub,
		conn:     conn,
		username: username,
		send:     make(chan []byte, 32),
		policy:   policy,
		log:      logger,
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		c.hub.removeClient(c)
		close(c.send)
		_ = c.conn.Close()
	})
}

// readPump receives messages from the socket and publishes them.
func (c *client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var in inbound
		if err := c.conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("websocket read failed", zap.String("username", c.username), zap.Error(err))
			}
			return
		}

		text := strings.TrimSpace(c.policy.Sanitize(in.Text))
		if text == "" {
			continue
		}
		if len(text) > maxTextLen {
			text = text[:maxTextLen]
		}

		msg := models.ChatMessage{
			ID:       uuid.NewString(),
			Username: c.username,
			Text:     text,
			SentAt:   time.Now(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		err := c.hub.Publish(ctx, msg)
		cancel()
		if err != nil {
			c.log.Error("chat publish failed", zap.String("username", c.username), zap.Error(err))
		}
	}
}

// writePump forwards hub messages to the socket and keeps the connection
// alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
