package websocket

import (
	"context"

	"niv-scholar-be/pkg/scholar/render"

	"github.com/gofiber/websocket/v2"
)

// Opener starts the session behind a new connection.
type Opener func(clientID string, presenter render.Presenter) (Dispatcher, error)

// ServeWs runs one connection until the peer goes away.
func ServeWs(hub *Hub, conn *websocket.Conn, clientID string, open Opener) {
	client := NewClient(hub, conn, clientID)

	dispatcher, err := open(clientID, NewPresenter(client))
	if err != nil {
		hub.logger.Error("Hub", "Failed to open session", map[string]interface{}{"client_id": clientID, "error": err.Error()})
		conn.Close()
		return
	}

	hub.Register(client)
	go client.writePump()

	ctx, cancel := context.WithCancel(context.Background())
	dispatched := make(chan struct{})
	go func() {
		defer close(dispatched)
		client.dispatchLoop(ctx, dispatcher)
	}()
	client.readPump(ctx)

	// Stop the session before the send channel closes under its reveals.
	cancel()
	<-dispatched
	dispatcher.Close()
	hub.Unregister(client)
	conn.Close()
}
