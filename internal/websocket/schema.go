package websocket

import "github.com/srichai/gradebench/internal/model"

// Event names sent over the stats stream.
const (
	EventStatsUpdate = "stats_update"
	EventError       = "error"
)

// StatsUpdate is pushed to subscribers whenever an exam's stats are
// recomputed.
type StatsUpdate struct {
	Event  string      `json:"event"`
	ExamID string      `json:"exam_id"`
	Stats  model.Stats `json:"stats"`
}

// ErrorResponse is sent before closing a connection on a terminal error.
type ErrorResponse struct {
	Event string `json:"event"`
	Error string `json:"error"`
}
