package handler

import (
	"niv-scholar-be/internal/pkg/logger"
	"niv-scholar-be/internal/pkg/serverutils"
	"niv-scholar-be/internal/service"
	internalWS "niv-scholar-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SessionHandler runs a scholar session per websocket connection.
type SessionHandler struct {
	service service.ISessionService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewSessionHandler(service service.ISessionService, hub *internalWS.Hub, log logger.ILogger) *SessionHandler {
	return &SessionHandler{
		service: service,
		hub:     hub,
		logger:  log,
	}
}

func (h *SessionHandler) RegisterRoutes(r fiber.Router) {
	ws := r.Group("/ws")
	ws.Use(serverutils.ClientIDMiddleware)
	ws.Get("/chat", h.ServeWs)
}

// ServeWs upgrades the request. Browsers pass their id as ?client_id=.
func (h *SessionHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	clientID := serverutils.ClientID(c)
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("SessionHandler", "Starting WebSocket session", map[string]interface{}{"client_id": clientID})
		internalWS.ServeWs(h.hub, conn, clientID, h.service.Open)
		h.logger.Info("SessionHandler", "WebSocket session ended", map[string]interface{}{"client_id": clientID})
	})(c)
}
