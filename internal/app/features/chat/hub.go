// internal/app/features/chat/hub.go
package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// channel is the Redis pub/sub channel messages fan out on. Every app
	// instance subscribes, so chat works across replicas.
	channel = "chat:messages"
	// historyKey is the Redis list holding recent messages, newest first.
	historyKey = "chat:history"
	// historyMax bounds the retained history.
	historyMax = 200
)

// Hub fans chat messages out to connected websocket clients. Redis is the
// source of truth: messages are published to Redis and every hub instance
// relays what it receives back to its local clients. Ordering is whatever
// Redis pub/sub delivers.
type Hub struct {
	rdb *redis.Client
	log *zap.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}

	cancel context.CancelFunc
	done   chan struct{}
}

// NewHub builds a hub over the given Redis client.
func NewHub(rdb *redis.Client, logger *zap.Logger) *Hub {
	return &Hub{
		rdb:     rdb,
		log:     logger,
		clients: make(map[*client]struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the Redis subscriber goroutine.
func (h *Hub) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go h.relay(ctx)
}

// Stop disconnects all clients and halts the subscriber.
func (h *Hub) Stop(ctx context.Context) error {
	if h.cancel != nil {
		h.cancel()
	}

	// close() re-enters removeClient, so the lock cannot be held across it.
	h.mu.Lock()
	snapshot := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		snapshot = append(snapshot, c)
	}
	h.mu.Unlock()
	for _, c := range snapshot {
		c.close()
	}

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// relay pushes every message from the Redis channel to local clients.
func (h *Hub) relay(ctx context.Context) {
	defer close(h.done)

	sub := h.rdb.Subscribe(ctx, channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.fanOut([]byte(msg.Payload))
		}
	}
}

func (h *Hub) fanOut(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// Slow consumer; drop the connection rather than block the hub.
			go c.close()
		}
	}
}

// Publish stores a message in history and broadcasts it via Redis.
func (h *Hub) Publish(ctx context.Context, msg models.ChatMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	pipe := h.rdb.TxPipeline()
	pipe.LPush(ctx, historyKey, payload)
	pipe.LTrim(ctx, historyKey, 0, historyMax-1)
	pipe.Publish(ctx, channel, payload)
	_, err = pipe.Exec(ctx)
	return err
}

// History returns up to limit recent messages in chronological order.
func (h *Hub) History(ctx context.Context, limit int64) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > historyMax {
		limit = historyMax
	}
	raw, err := h.rdb.LRange(ctx, historyKey, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	// The list is newest first; reverse while decoding.
	msgs := make([]models.ChatMessage, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var m models.ChatMessage
		if err := json.Unmarshal([]byte(raw[i]), &m); err != nil {
			h.log.Warn("bad chat history entry", zap.Error(err))
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

func (h *Hub) addClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) removeClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// ClientCount reports how many websocket clients this instance serves.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// writeWait bounds a single websocket write.
const writeWait = 10 * time.Second
