package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"stickerbingo/internal/bingo"
)

const (
	wsChannelBuffer = 16
	wsPingInterval  = 30 * time.Second
	wsPongWait      = 60 * time.Second
	wsWriteTimeout  = 10 * time.Second
	wsReadLimit     = 512
)

// Origin checking is left to the upgrader's same-host default.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// subscriber is one websocket connection watching a session.
type subscriber struct {
	ch      chan []byte
	session string
}

// Hub fans out view updates to the websocket connections of each session.
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Register adds a subscriber for a session.
func (h *Hub) Register(session string) *subscriber {
	s := &subscriber{
		ch:      make(chan []byte, wsChannelBuffer),
		session: session,
	}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Unregister removes a subscriber and closes its channel.
func (h *Hub) Unregister(s *subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.ch)
	}
	h.mu.Unlock()
}

// Broadcast sends a view to every subscriber of the session. Slow
// subscribers miss the update; the next one carries the full state.
func (h *Hub) Broadcast(session string, v bingo.View) {
	data, err := json.Marshal(v)
	if err != nil {
		logWarn("Failed to encode view for session %s: %v", session, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs {
		if s.session != session {
			continue
		}
		select {
		case s.ch <- data:
		default:
		}
	}
}

// SubscriberCount returns the number of connections for a session.
func (h *Hub) SubscriberCount(session string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for s := range h.subs {
		if s.session == session {
			n++
		}
	}
	return n
}

// ServeWS upgrades the request and streams views for session until either
// side closes. The initial view is sent right after the upgrade.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, session string, initial bingo.View) {
	logger := zerolog.Ctx(r.Context())
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	s := h.Register(session)
	defer h.Unregister(s)
	logger.Debug().Str("session", session).Int("subscribers", h.SubscriberCount(session)).Msg("websocket connected")

	// The read loop only drains control frames and notices the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(wsReadLimit)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	if err := writeMessage(conn, initial); err != nil {
		return
	}

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			return
		case msg, ok := <-s.ch:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				return
			}
		}
	}
}

func writeMessage(conn *websocket.Conn, v bingo.View) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(v)
}
