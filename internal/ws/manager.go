package ws

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client is one WebSocket connection tied to a user.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	send   chan []byte
}

// ConnectionManager tracks the active WebSocket connection per user. A new
// connection for a user replaces the previous one.
type ConnectionManager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan string
	mu         sync.RWMutex
	logger     *zap.Logger
}

// NewConnectionManager creates and starts a connection manager.
func NewConnectionManager(logger *zap.Logger) *ConnectionManager {
	m := &ConnectionManager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan string),
		logger:     logger.Named("ConnectionManager"),
	}
	go m.run()
	return m
}

func (m *ConnectionManager) run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			if oldClient, ok := m.clients[client.UserID]; ok {
				m.logger.Info("Replacing existing connection", zap.String("userID", client.UserID))
				close(oldClient.send)
				_ = oldClient.Conn.Close()
			}
			m.clients[client.UserID] = client
			m.mu.Unlock()
			m.logger.Debug("Client registered", zap.String("userID", client.UserID))

		case userID := <-m.unregister:
			m.mu.Lock()
			if client, ok := m.clients[userID]; ok {
				delete(m.clients, userID)
				close(client.send)
			}
			m.mu.Unlock()
			m.logger.Debug("Client unregistered", zap.String("userID", userID))
		}
	}
}

// RegisterClient adds a client, replacing any prior connection for the user.
func (m *ConnectionManager) RegisterClient(client *Client) {
	m.register <- client
}

// UnregisterClient drops the user's connection.
func (m *ConnectionManager) UnregisterClient(userID string) {
	m.unregister <- userID
}

// SendToUser queues a message for the user. Returns false when the user is
// offline or their send queue is full.
func (m *ConnectionManager) SendToUser(userID string, message []byte) bool {
	m.mu.RLock()
	client, ok := m.clients[userID]
	m.mu.RUnlock()

	if !ok {
		return false
	}

	select {
	case client.send <- message:
		return true
	default:
		m.logger.Warn("Send queue full, dropping message", zap.String("userID", userID))
		return false
	}
}
