package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/srichai/gradebench/internal/model"
	"github.com/srichai/gradebench/internal/response"
	"github.com/srichai/gradebench/internal/service"
	"github.com/srichai/gradebench/internal/validator"
)

// QuestionHandler handles question and answer endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// GetQuestion godoc
// GET /api/v1/questions/:question_id
// Returns one question with its answers plus the resolved section tier.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id := c.Param("question_id")

	q, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		failDomain(c, err)
		return
	}
	cls, err := h.questionService.ClassifySection(c.Request.Context(), id)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"question": q,
		"section": gin.H{
			"tier":      cls.Tier,
			"max_score": cls.MaxScore,
		},
	})
}

// CreateQuestion godoc
// POST /api/v1/exams/:exam_id/questions
// Adds a question to an exam section. Max score defaults to the section's
// tier ceiling when omitted.
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	q, err := h.questionService.Create(c.Request.Context(), c.Param("exam_id"), &req)
	if err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"question": q})
}

// DeleteQuestion godoc
// DELETE /api/v1/exams/:exam_id/questions/:question_id
// Removes a question and its answers from an exam.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	err := h.questionService.Delete(c.Request.Context(), c.Param("exam_id"), c.Param("question_id"))
	if err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ListAnswers godoc
// GET /api/v1/questions/:question_id/answers
// Lists a question's answers sorted by student id.
func (h *QuestionHandler) ListAnswers(c *gin.Context) {
	answers, err := h.questionService.ListAnswers(c.Request.Context(), c.Param("question_id"))
	if err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"answers": answers})
}

// CreateAnswer godoc
// POST /api/v1/questions/:question_id/answers
// Records a student submission, optionally with scanned page images.
func (h *QuestionHandler) CreateAnswer(c *gin.Context) {
	var req model.CreateAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	a, err := h.questionService.CreateAnswer(c.Request.Context(), c.Param("question_id"), &req)
	if err != nil {
		failDomain(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"answer": a})
}
