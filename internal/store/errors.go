package store

import "errors"

// Domain errors surfaced by the store. All are synchronous and
// recoverable; the caller decides how to present them.
var (
	ErrNotFound              = errors.New("resource not found")
	ErrDuplicateExamCode     = errors.New("exam code already in use")
	ErrDuplicateQuestionCode = errors.New("question code already in use within this exam")
	ErrScoreOutOfBounds      = errors.New("score is outside [0, max score]")
	ErrNoQuestions           = errors.New("exam must contain at least one question")
	ErrInvalidStatus         = errors.New("unknown exam status")
	ErrCodeExhausted         = errors.New("could not generate a unique exam code")
)
