package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/srichai/gradebench/internal/model"
)

// Hub fans recomputed exam stats out to subscribed monitor connections.
// Wired to the store as its stats listener: each recompute is broadcast
// after the owning mutation has committed, so clients never see a stats
// value the store has not.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*websocket.Conn]struct{}
	log  zerolog.Logger
}

// NewHub creates an empty Hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		subs: make(map[string]map[*websocket.Conn]struct{}),
		log:  log.With().Str("component", "stats_hub").Logger(),
	}
}

// Subscribe registers a connection for one exam's stats updates.
func (h *Hub) Subscribe(examID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[examID] == nil {
		h.subs[examID] = make(map[*websocket.Conn]struct{})
	}
	h.subs[examID][conn] = struct{}{}
}

// Unsubscribe removes a connection. Safe to call twice.
func (h *Hub) Unsubscribe(examID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.subs[examID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.subs, examID)
		}
	}
}

// Broadcast pushes a stats update to every subscriber of the exam.
// Writes happen under the hub lock so they never interleave with Send
// on the same socket. Connections that fail to write are dropped.
func (h *Hub) Broadcast(examID string, st model.Stats) {
	update := StatsUpdate{Event: EventStatsUpdate, ExamID: examID, Stats: st}

	h.mu.Lock()
	defer h.mu.Unlock()

	var dead []*websocket.Conn
	for conn := range h.subs[examID] {
		if err := WriteTyped(conn, update); err != nil {
			h.log.Debug().Err(err).Str("exam_id", examID).Msg("Dropping dead stats subscriber")
			dead = append(dead, conn)
		}
	}
	for _, conn := range dead {
		delete(h.subs[examID], conn)
		conn.Close()
	}
	if len(h.subs[examID]) == 0 {
		delete(h.subs, examID)
	}
}

// Send writes one update to a single connection, serialized with
// Broadcast so concurrent writes never corrupt the socket.
func (h *Hub) Send(conn *websocket.Conn, update StatsUpdate) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return WriteTyped(conn, update)
}
