package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"log/slog"

	"camPark/internal/domain"

	"github.com/gorilla/websocket"
)

// Config contains timing limits for live connections.
type Config struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64
}

func DefaultConfig() Config {
	return Config{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 1024,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Map clients are served from arbitrary origins during development.
		return true
	},
}

type envelope struct {
	Type    string `json:"type"` // "status" | "prompt"
	Payload any    `json:"payload"`
}

// Hub fans status events out to every live map client and prompt events to
// the owning session only.
type Hub struct {
	logger *slog.Logger
	cfg    Config

	mu        sync.RWMutex
	clients   map[*Client]struct{}
	bySession map[string]map[*Client]struct{}
}

func NewHub(logger *slog.Logger, cfg Config) *Hub {
	return &Hub{
		logger:    logger,
		cfg:       cfg,
		clients:   make(map[*Client]struct{}),
		bySession: make(map[string]map[*Client]struct{}),
	}
}

// ServeWS upgrades the request. The optional session_id query parameter
// subscribes the connection to that session's prompt events.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, 32),
		sessionID: sessionID,
	}
	h.register(client)

	go client.writePump()
	go client.readPump()
}

func (h *Hub) BroadcastStatus(event domain.StatusEvent) {
	msg, err := json.Marshal(envelope{Type: "status", Payload: event})
	if err != nil {
		h.logger.Error("status event marshal failed", slog.Any("error", err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.trySend(msg)
	}
}

func (h *Hub) NotifyPrompt(event domain.PromptEvent) {
	msg, err := json.Marshal(envelope{Type: "prompt", Payload: event})
	if err != nil {
		h.logger.Error("prompt event marshal failed", slog.Any("error", err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.bySession[event.SessionID] {
		c.trySend(msg)
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	if c.sessionID != "" {
		if h.bySession[c.sessionID] == nil {
			h.bySession[c.sessionID] = make(map[*Client]struct{})
		}
		h.bySession[c.sessionID][c] = struct{}{}
	}
	h.logger.Debug("live client connected", slog.String("session_id", c.sessionID))
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	if c.sessionID != "" {
		delete(h.bySession[c.sessionID], c)
		if len(h.bySession[c.sessionID]) == 0 {
			delete(h.bySession, c.sessionID)
		}
	}
	close(c.send)
}
