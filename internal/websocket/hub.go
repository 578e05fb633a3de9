package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"niv-scholar-be/internal/dto"
	"niv-scholar-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "scholar_events"

// Hub tracks the open connections of every browser client. One client id can
// have several connections (tabs).
type Hub struct {
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	stopped    chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance delivery; nil runs single-instance.
	rdb        *redis.Client
	instanceID string

	logger logger.ILogger
}

type clusterPayload struct {
	Origin         string          `json:"origin"`
	TargetClientID string          `json:"target_client_id"`
	Message        json.RawMessage `json:"message"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopped:    make(chan struct{}),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ClientID] = append(h.clients[client.ClientID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"client_id": client.ClientID})

		case client := <-h.unregister:
			h.mu.Lock()
			clients := h.clients[client.ClientID]
			for i, c := range clients {
				if c == client {
					h.clients[client.ClientID] = append(clients[:i], clients[i+1:]...)
					break
				}
			}
			if len(h.clients[client.ClientID]) == 0 {
				delete(h.clients, client.ClientID)
				h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"client_id": client.ClientID})
			}
			h.mu.Unlock()
			client.close()
		}
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.stopped:
	}
}

// Unregister closes c's send channel once the hub has dropped it.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stopped:
		c.close()
	}
}

// Connections counts the open connections of clientID on this instance.
func (h *Hub) Connections(clientID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[clientID])
}

// Send delivers frame to every connection of clientID, on every instance.
func (h *Hub) Send(clientID string, frame dto.WSOutbound) {
	data, err := json.Marshal(frame)
	if err != nil {
		h.logger.Error("Hub", "Failed to encode frame", map[string]interface{}{"type": frame.Type, "error": err.Error()})
		return
	}

	h.deliver(clientID, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterPayload{
			Origin:         h.instanceID,
			TargetClientID: clientID,
			Message:        data,
		})
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to publish to cluster", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (h *Hub) deliver(clientID string, data []byte) {
	h.mu.RLock()
	clients := append([]*Client(nil), h.clients[clientID]...)
	h.mu.RUnlock()

	for _, client := range clients {
		if !client.enqueue(data) {
			h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"client_id": clientID})
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		var msg *redis.Message
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			msg = m
		}

		var payload clusterPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == h.instanceID {
			continue
		}
		h.deliver(payload.TargetClientID, payload.Message)
	}
}
