package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/srichai/gradebench/internal/grading"
	"github.com/srichai/gradebench/internal/model"
	"github.com/srichai/gradebench/internal/response"
	"github.com/srichai/gradebench/internal/service"
	"github.com/srichai/gradebench/internal/validator"
)

// OpenSessionRequest is the payload for opening a grading session.
type OpenSessionRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
}

// DraftRequest is the payload for staging a draft score/feedback edit.
// Score may be null to clear the numeric part of a draft.
type DraftRequest struct {
	Score    *int   `json:"score"`
	Feedback string `json:"feedback" binding:"omitempty,max=5000"`
}

// FocusRequest is the payload for moving the session focus.
type FocusRequest struct {
	Action string `json:"action" binding:"required,oneof=next prev jump"`
	Index  int    `json:"index" binding:"omitempty,min=0"`
}

// GradingHandler handles scoring and grading-session endpoints.
type GradingHandler struct {
	gradingService *service.GradingService
}

// NewGradingHandler creates a new GradingHandler.
func NewGradingHandler(gradingService *service.GradingService) *GradingHandler {
	return &GradingHandler{gradingService: gradingService}
}

// CommitScore godoc
// POST /api/v1/answers/:answer_id/score
// Commits a final score to an answer. Bounds are validated against the
// parent question's max score.
func (h *GradingHandler) CommitScore(c *gin.Context) {
	var req model.CommitScoreRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	a, err := h.gradingService.CommitScore(c.Request.Context(), c.Param("answer_id"), &req)
	if err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"answer": a})
}

// SuggestScore godoc
// POST /api/v1/answers/:answer_id/suggest
// Stages a simulated AI score suggestion on an answer. Non-committing.
func (h *GradingHandler) SuggestScore(c *gin.Context) {
	sugg, err := h.gradingService.SuggestScore(c.Request.Context(), c.Param("answer_id"))
	if err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"suggestion": sugg})
}

// BatchSuggest godoc
// POST /api/v1/questions/:question_id/suggest-batch
// Stages a suggestion for every ungraded answer of a question.
func (h *GradingHandler) BatchSuggest(c *gin.Context) {
	suggestions, err := h.gradingService.BatchSuggest(c.Request.Context(), c.Param("question_id"))
	if err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"suggestions": suggestions})
}

// OpenSession godoc
// POST /api/v1/grading-sessions
// Opens a grading session over a question's answers.
func (h *GradingHandler) OpenSession(c *gin.Context) {
	var req OpenSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sess, err := h.gradingService.OpenSession(c.Request.Context(), req.QuestionID)
	if err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"session": sess.Snapshot()})
}

// GetSession godoc
// GET /api/v1/grading-sessions/:session_id
// Returns the session snapshot: question, ordered answers, drafts, focus.
func (h *GradingHandler) GetSession(c *gin.Context) {
	sess, err := h.gradingService.GetSession(c.Param("session_id"))
	if err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": sess.Snapshot()})
}

// SetDraft godoc
// PUT /api/v1/grading-sessions/:session_id/drafts/:answer_id
// Stages a working score/feedback edit. No bounds check happens here;
// validation runs at save time.
func (h *GradingHandler) SetDraft(c *gin.Context) {
	var req DraftRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sess, err := h.gradingService.GetSession(c.Param("session_id"))
	if err != nil {
		failDomain(c, err)
		return
	}
	if err := sess.SetDraft(c.Param("answer_id"), req.Score, req.Feedback); err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": sess.Snapshot()})
}

// Focus godoc
// POST /api/v1/grading-sessions/:session_id/focus
// Moves the focused answer: next, prev, or jump to an index. Navigation
// never touches drafts.
func (h *GradingHandler) Focus(c *gin.Context) {
	var req FocusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sess, err := h.gradingService.GetSession(c.Param("session_id"))
	if err != nil {
		failDomain(c, err)
		return
	}

	var view grading.View
	switch req.Action {
	case "next":
		view = sess.Next()
	case "prev":
		view = sess.Prev()
	case "jump":
		view, err = sess.JumpTo(req.Index)
		if err != nil {
			failDomain(c, err)
			return
		}
	}
	response.Success(c, http.StatusOK, gin.H{"session": view})
}

// SessionSuggest godoc
// POST /api/v1/grading-sessions/:session_id/answers/:answer_id/suggest
// Draws a suggestion for one answer and overwrites its draft with it.
func (h *GradingHandler) SessionSuggest(c *gin.Context) {
	sess, err := h.gradingService.GetSession(c.Param("session_id"))
	if err != nil {
		failDomain(c, err)
		return
	}

	sugg, err := sess.Suggest(c.Request.Context(), c.Param("answer_id"))
	if err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"suggestion": sugg, "session": sess.Snapshot()})
}

// Save godoc
// POST /api/v1/grading-sessions/:session_id/answers/:answer_id/save
// Validates the answer's draft and commits it as a teacher-given score.
func (h *GradingHandler) Save(c *gin.Context) {
	sess, err := h.gradingService.GetSession(c.Param("session_id"))
	if err != nil {
		failDomain(c, err)
		return
	}

	a, err := sess.Save(c.Request.Context(), c.Param("answer_id"))
	if err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"answer": a})
}

// SaveAll godoc
// POST /api/v1/grading-sessions/:session_id/save-all
// Commits every pending draft. Answers that are already graded keep
// their committed scores.
func (h *GradingHandler) SaveAll(c *gin.Context) {
	sess, err := h.gradingService.GetSession(c.Param("session_id"))
	if err != nil {
		failDomain(c, err)
		return
	}

	saved, err := sess.SaveAll(c.Request.Context())
	if err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"saved": saved, "session": sess.Snapshot()})
}

// CloseSession godoc
// DELETE /api/v1/grading-sessions/:session_id
// Abandons a session. Unsaved drafts are discarded.
func (h *GradingHandler) CloseSession(c *gin.Context) {
	if err := h.gradingService.CloseSession(c.Param("session_id")); err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
