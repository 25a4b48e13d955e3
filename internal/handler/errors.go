package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/srichai/gradebench/internal/grading"
	"github.com/srichai/gradebench/internal/response"
	"github.com/srichai/gradebench/internal/service"
	"github.com/srichai/gradebench/internal/store"
)

// failDomain maps domain errors onto the API error envelope. Unrecognized
// errors fall through as 500 INTERNAL_ERROR.
func failDomain(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, store.ErrScoreOutOfBounds), errors.Is(err, grading.ErrScoreOutOfBounds):
		response.Fail(c, http.StatusBadRequest, response.ErrScoreOutOfBounds)
	case errors.Is(err, store.ErrDuplicateExamCode):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateExamCode)
	case errors.Is(err, store.ErrDuplicateQuestionCode):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateQuestionCode)
	case errors.Is(err, store.ErrNoQuestions):
		response.Fail(c, http.StatusBadRequest, response.ErrNoQuestions)
	case errors.Is(err, store.ErrInvalidStatus):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidStatus)
	case errors.Is(err, grading.ErrNoDraftScore):
		response.Fail(c, http.StatusBadRequest, response.ErrNoDraftScore)
	case errors.Is(err, grading.ErrUnknownAnswer), errors.Is(err, grading.ErrIndexOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
	case errors.Is(err, service.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
