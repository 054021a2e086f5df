// Package live pushes refresh events to open dashboard pages over a
// websocket so they can re-fetch their view body.
package live

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gww-voice/dashboard/internal/poller"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

type client struct {
	id   string
	view string
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks websocket viewers per view. The first viewer of a view starts
// its poller and the last one to leave stops it.
type Hub struct {
	upgrader websocket.Upgrader
	logger   zerolog.Logger

	mu      sync.RWMutex
	pollers map[string]*poller.Poller
	clients map[string]*client
	closed  bool
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger.With().Str("component", "live").Logger(),
		pollers: make(map[string]*poller.Poller),
		clients: make(map[string]*client),
	}
}

// Register attaches p to its view and forwards its events to viewers.
func (h *Hub) Register(p *poller.Poller) {
	h.mu.Lock()
	h.pollers[p.Name()] = p
	h.mu.Unlock()
	p.OnEvent(h.Publish)
}

func (h *Hub) Views() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.pollers))
	for name := range h.pollers {
		out = append(out, name)
	}
	return out
}

// Viewers counts open connections for view.
func (h *Hub) Viewers(view string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, c := range h.clients {
		if c.view == view {
			n++
		}
	}
	return n
}

// Publish sends ev to every viewer of ev.View. Slow viewers miss events.
func (h *Hub) Publish(ev poller.Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to encode live event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c.view != ev.View {
			continue
		}
		select {
		case c.send <- msg:
		default:
			h.logger.Debug().Str("client_id", c.id).Msg("dropping live event for slow client")
		}
	}
}

// Serve upgrades GET /ws?view=<name> and holds the connection until the
// browser leaves.
func (h *Hub) Serve(c *gin.Context) {
	name := c.Query("view")

	h.mu.RLock()
	p, ok := h.pollers[name]
	closed := h.closed
	h.mu.RUnlock()
	if !ok || closed {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "INVALID_VIEW", "message": "unknown view", "details": name},
		})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	cl := &client{id: uuid.NewString(), view: name, conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[cl.id] = cl
	h.mu.Unlock()
	p.Acquire()
	h.logger.Info().Str("client_id", cl.id).Str("view", name).Msg("viewer connected")

	go h.write(cl)
	h.read(cl)

	h.mu.Lock()
	delete(h.clients, cl.id)
	close(cl.send)
	h.mu.Unlock()
	p.Release()
	h.logger.Info().Str("client_id", cl.id).Str("view", name).Msg("viewer disconnected")
}

// read drains the connection; pages never send anything meaningful.
func (h *Hub) read(cl *client) {
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) write(cl *client) {
	defer cl.conn.Close()
	for msg := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.logger.Debug().Err(err).Str("client_id", cl.id).Msg("live write failed")
			_ = cl.conn.Close()
			// keep draining until Serve closes send
			for range cl.send {
			}
			return
		}
	}
}

// Close disconnects every viewer and stops all pollers.
func (h *Hub) Close(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	for _, c := range h.clients {
		_ = c.conn.Close()
	}
	pollers := make([]*poller.Poller, 0, len(h.pollers))
	for _, p := range h.pollers {
		pollers = append(pollers, p)
	}
	h.mu.Unlock()

	var firstErr error
	for _, p := range pollers {
		if err := p.Stop(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
