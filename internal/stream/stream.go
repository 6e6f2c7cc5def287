// Package stream pushes live site telemetry to websocket subscribers.
package stream

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/JaimeStill/ems-backend/internal/auth"
	"github.com/JaimeStill/ems-backend/internal/config"
	"github.com/JaimeStill/ems-backend/pkg/handlers"
	"github.com/JaimeStill/ems-backend/pkg/lifecycle"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

// Pattern is the route served by Hub.
const Pattern = "GET /ws/site/{site_id}"

// Verifier validates the access token presented by a subscriber.
type Verifier interface {
	Verify(raw string) (auth.Identity, error)
}

type client struct {
	siteID uuid.UUID
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan []byte
	once   sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub tracks subscribers per site and fans published events out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*client]struct{}

	upgrader     websocket.Upgrader
	verifier     Verifier
	gauge        prometheus.Gauge
	logger       *slog.Logger
	writeTimeout time.Duration
	pongTimeout  time.Duration
	pingInterval time.Duration
	bufferSize   int
}

// New creates a Hub. gauge may be nil.
func New(cfg *config.StreamConfig, verifier Verifier, gauge prometheus.Gauge, logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Subscribers authenticate with a token, not cookies.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		verifier:     verifier,
		gauge:        gauge,
		logger:       logger.With("system", "stream"),
		writeTimeout: cfg.WriteTimeoutDuration(),
		pongTimeout:  cfg.PongTimeoutDuration(),
		pingInterval: cfg.PingIntervalDuration(),
		bufferSize:   cfg.BufferSize,
	}
}

// Start closes every subscriber when the lifecycle shuts down.
func (h *Hub) Start(lc *lifecycle.Coordinator) error {
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		h.Close()
		h.logger.Info("stream hub closed")
	})
	return nil
}

// Publish sends event as JSON to every subscriber of siteID. Subscribers whose
// buffer is full are disconnected.
func (h *Hub) Publish(siteID uuid.UUID, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("marshal event", "error", err)
		return
	}

	var slow []*client
	h.mu.RLock()
	for c := range h.clients[siteID] {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("subscriber too slow, dropping", "site_id", siteID, "user_id", c.userID)
		h.remove(c)
	}
}

// Subscribers returns the number of connected clients for siteID.
func (h *Hub) Subscribers(siteID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[siteID])
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.RLock()
	all := make([]*client, 0)
	for _, set := range h.clients {
		for c := range set {
			all = append(all, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range all {
		h.remove(c)
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	set, ok := h.clients[c.siteID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[c.siteID] = set
	}
	set[c] = struct{}{}
	h.mu.Unlock()

	if h.gauge != nil {
		h.gauge.Inc()
	}
}

// remove unregisters c and closes its send channel. The channel is closed
// under the write lock so that no Publish can be sending on it.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	set, ok := h.clients[c.siteID]
	_, present := set[c]
	if ok && present {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.siteID)
		}
		c.close()
	}
	h.mu.Unlock()

	if present && h.gauge != nil {
		h.gauge.Dec()
	}
}

// ServeHTTP authenticates the subscriber and upgrades the connection. The
// token is read from the token query parameter, since browsers cannot set
// headers on websocket requests, or from a bearer header.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	siteID, err := uuid.Parse(r.PathValue("site_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		token = auth.BearerToken(r)
	}
	id, err := h.verifier.Verify(token)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		siteID: siteID,
		userID: id.UserID,
		conn:   conn,
		send:   make(chan []byte, h.bufferSize),
	}
	h.add(c)
	h.logger.Info("subscriber connected", "site_id", siteID, "user_id", id.UserID)

	go h.writePump(c)
	h.readPump(c)

	h.remove(c)
	h.logger.Info("subscriber disconnected", "site_id", siteID, "user_id", id.UserID)
}

// readPump discards client messages and keeps the read deadline alive on pong.
func (h *Hub) readPump(c *client) {
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(h.pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(h.pongTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(h.pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.remove(c)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(c)
				return
			}
		}
	}
}
