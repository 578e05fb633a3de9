package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"niv-scholar-be/internal/dto"
	"niv-scholar-be/internal/pkg/logger"
	"niv-scholar-be/internal/pkg/serverutils"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	sendBuffer     = 1024
	inboundBuffer  = 16
)

// Dispatcher handles the inbound frames of one connection.
type Dispatcher interface {
	Dispatch(ctx context.Context, frame dto.WSInbound) error
	Close()
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn

	// ClientID is the browser's opaque id; every tab shares it.
	ClientID string

	// Buffered channel of outbound messages.
	Send chan []byte

	// inbound holds decoded frames until dispatchLoop takes them, in order.
	inbound chan dto.WSInbound

	mu     sync.Mutex
	closed bool
	logger logger.ILogger
}

func NewClient(hub *Hub, conn *websocket.Conn, clientID string) *Client {
	return &Client{
		Hub:      hub,
		Conn:     conn,
		ClientID: clientID,
		Send:     make(chan []byte, sendBuffer),
		inbound:  make(chan dto.WSInbound, inboundBuffer),
		logger:   hub.logger,
	}
}

// enqueue never blocks; it reports false when the frame was dropped.
func (c *Client) enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

func (c *Client) sendFrame(frameType string, data interface{}) {
	b, err := json.Marshal(dto.WSOutbound{Type: frameType, Data: data})
	if err != nil {
		c.logger.Error("Client", "Failed to encode frame", map[string]interface{}{"type": frameType, "error": err.Error()})
		return
	}
	if !c.enqueue(b) {
		c.logger.Warn("Client", "Dropped frame", map[string]interface{}{"client_id": c.ClientID, "type": frameType})
	}
}

// readPump decodes inbound frames until the connection fails and queues them
// for dispatchLoop. The queue is closed when it returns.
func (c *Client) readPump(ctx context.Context) {
	defer close(c.inbound)

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("Client", "Unexpected close", map[string]interface{}{"client_id": c.ClientID, "error": err.Error()})
			}
			return
		}
		c.handle(ctx, raw)
	}
}

// handle rejects malformed frames right away and queues the rest. It blocks
// while the queue is full.
func (c *Client) handle(ctx context.Context, raw []byte) {
	var frame dto.WSInbound
	if err := json.Unmarshal(raw, &frame); err != nil {
		c.sendFrame(dto.FrameError, errorFrame(serverutils.ErrInvalidBody))
		return
	}
	if err := serverutils.ValidateRequest(frame); err != nil {
		c.sendFrame(dto.FrameError, errorFrame(err))
		return
	}

	select {
	case c.inbound <- frame:
	case <-ctx.Done():
	}
}

// dispatchLoop hands queued frames to d one at a time, in arrival order, until
// the queue is closed. Frames still queued after ctx is done are dropped.
func (c *Client) dispatchLoop(ctx context.Context, d Dispatcher) {
	for frame := range c.inbound {
		if ctx.Err() != nil {
			continue
		}
		if err := d.Dispatch(ctx, frame); err != nil {
			c.logger.Debug("Client", "Frame rejected", map[string]interface{}{"type": frame.Type, "error": err.Error()})
			c.sendFrame(dto.FrameError, errorFrame(err))
		}
	}
}

func errorFrame(err error) serverutils.ErrorBody {
	return serverutils.ErrorBody{Error: err.Error()}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// One frame per message; the browser parses each as JSON.
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("Client", "Ping failed", map[string]interface{}{"client_id": c.ClientID, "error": err.Error()})
				return
			}
		}
	}
}
