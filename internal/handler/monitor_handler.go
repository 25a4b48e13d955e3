package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/srichai/gradebench/internal/service"
	ws "github.com/srichai/gradebench/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allow-list permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// MonitorHandler streams live grading-progress stats over WebSocket.
type MonitorHandler struct {
	examService *service.ExamService
	hub         *ws.Hub
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewMonitorHandler creates a new MonitorHandler.
func NewMonitorHandler(examService *service.ExamService, hub *ws.Hub, log zerolog.Logger, allowedOrigins []string) *MonitorHandler {
	return &MonitorHandler{
		examService: examService,
		hub:         hub,
		log:         log.With().Str("component", "monitor_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// StatsStream godoc
// WS /ws/v1/exams/:exam_id/stats
// Upgrades to WebSocket and pushes a stats update after every recompute
// of the exam. The current stats are sent immediately on connect.
func (h *MonitorHandler) StatsStream(c *gin.Context) {
	examID := c.Param("exam_id")

	if _, err := h.examService.GetByID(c.Request.Context(), examID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "exam not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	// Subscribe before sending the initial snapshot: a recompute landing
	// in between is then delivered as a regular update. The client may
	// see the same stats twice, never a gap.
	h.hub.Subscribe(examID, conn)
	defer h.hub.Unsubscribe(examID, conn)

	exam, err := h.examService.GetByID(c.Request.Context(), examID)
	if err != nil {
		return
	}
	if err := h.hub.Send(conn, ws.StatsUpdate{
		Event:  ws.EventStatsUpdate,
		ExamID: examID,
		Stats:  exam.Stats,
	}); err != nil {
		return
	}

	h.log.Debug().Str("exam_id", examID).Msg("Stats subscriber connected")

	// Block reading until the client goes away. Inbound messages are
	// ignored; the stream is push-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
