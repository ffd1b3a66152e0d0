package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"storyweaver-server/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades HTTP requests to WebSocket connections. Clients
// authenticate with an access token passed in the 'token' query parameter.
type Handler struct {
	manager     *ConnectionManager
	authService service.AuthService
	logger      *zap.Logger
}

// NewHandler creates a new websocket Handler.
func NewHandler(manager *ConnectionManager, authService service.AuthService, logger *zap.Logger) *Handler {
	return &Handler{
		manager:     manager,
		authService: authService,
		logger:      logger.Named("WebSocketHandler"),
	}
}

// ServeWS handles GET /ws.
func (h *Handler) ServeWS(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		h.logger.Warn("Missing 'token' query parameter")
		c.String(http.StatusUnauthorized, "Unauthorized: missing token")
		return
	}

	claims, err := h.authService.VerifyAccessToken(c.Request.Context(), tokenString)
	if err != nil {
		h.logger.Warn("Invalid websocket token", zap.Error(err))
		c.String(http.StatusUnauthorized, "Unauthorized: invalid token")
		return
	}
	userID := claims.UserID.String()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrader has already written the error response
		h.logger.Error("Failed to upgrade connection", zap.Error(err), zap.String("userID", userID))
		return
	}

	h.logger.Info("WebSocket connection established", zap.String("userID", userID))

	client := &Client{
		UserID: userID,
		Conn:   conn,
		send:   make(chan []byte, 256),
	}
	h.manager.RegisterClient(client)

	go client.writePump(h.logger.With(zap.String("userID", userID)))
	go client.readPump(h.manager, h.logger.With(zap.String("userID", userID)))
}

// readPump drains inbound frames. Clients are not expected to send anything
// besides pongs; everything else is ignored.
func (c *Client) readPump(manager *ConnectionManager, logger *zap.Logger) {
	defer func() {
		manager.UnregisterClient(c.UserID)
		_ = c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}
	}
}

// writePump moves messages from the send channel onto the wire and keeps the
// connection alive with pings.
func (c *Client) writePump(logger *zap.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Error("Failed to write message", zap.Error(err))
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Warn("Failed to send ping", zap.Error(err))
				return
			}
		}
	}
}
