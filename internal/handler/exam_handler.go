package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/srichai/gradebench/internal/model"
	"github.com/srichai/gradebench/internal/response"
	"github.com/srichai/gradebench/internal/service"
	"github.com/srichai/gradebench/internal/validator"
)

// ExamHandler handles exam lifecycle endpoints.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// ListExams godoc
// GET /api/v1/exams
// Lists all exams, newest first, with derived stats.
func (h *ExamHandler) ListExams(c *gin.Context) {
	exams := h.examService.List(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// GetExam godoc
// GET /api/v1/exams/:exam_id
// Returns one exam aggregate with sections, questions and answers.
func (h *ExamHandler) GetExam(c *gin.Context) {
	exam, err := h.examService.GetByID(c.Request.Context(), c.Param("exam_id"))
	if err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// CreateExam godoc
// POST /api/v1/exams
// Creates a draft exam. The exam code is generated when omitted; at least
// one question must be present across the sections.
func (h *ExamHandler) CreateExam(c *gin.Context) {
	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.Create(c.Request.Context(), &req)
	if err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"exam": exam})
}

// DeleteExam godoc
// DELETE /api/v1/exams/:exam_id
// Removes an exam and everything under it.
func (h *ExamHandler) DeleteExam(c *gin.Context) {
	if err := h.examService.Delete(c.Request.Context(), c.Param("exam_id")); err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// UpdateExamStatus godoc
// PATCH /api/v1/exams/:exam_id/status
// Applies a caller-driven status transition.
func (h *ExamHandler) UpdateExamStatus(c *gin.Context) {
	var req model.UpdateExamStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.examService.UpdateStatus(c.Request.Context(), c.Param("exam_id"), req.Status); err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": req.Status})
}

// RecomputeStats godoc
// POST /api/v1/exams/:exam_id/recompute-stats
// Forces a full stats recompute and returns the result.
func (h *ExamHandler) RecomputeStats(c *gin.Context) {
	st, err := h.examService.RecomputeStats(c.Request.Context(), c.Param("exam_id"))
	if err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": st})
}
