package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTeacherAccessOnly  ErrCode = "TEACHER_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation            ErrCode = "VALIDATION_ERROR"
	ErrInvalidID             ErrCode = "INVALID_ID"
	ErrInvalidPayload        ErrCode = "INVALID_PAYLOAD"
	ErrScoreOutOfBounds      ErrCode = "SCORE_OUT_OF_BOUNDS"
	ErrDuplicateExamCode     ErrCode = "DUPLICATE_EXAM_CODE"
	ErrDuplicateQuestionCode ErrCode = "DUPLICATE_QUESTION_CODE"
	ErrNoQuestions           ErrCode = "NO_QUESTIONS"
	ErrNoDraftScore          ErrCode = "NO_DRAFT_SCORE"
	ErrInvalidStatus         ErrCode = "INVALID_STATUS"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrSessionNotFound ErrCode = "GRADING_SESSION_NOT_FOUND"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTeacherAccessOnly:
		return "This resource is restricted to teachers."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The ID format is invalid."
	case ErrInvalidPayload:
		return "The request payload is invalid."
	case ErrScoreOutOfBounds:
		return "The score must lie between 0 and the question's max score."
	case ErrDuplicateExamCode:
		return "An exam with this code already exists."
	case ErrDuplicateQuestionCode:
		return "A question with this code already exists in the exam."
	case ErrNoQuestions:
		return "An exam needs at least one question."
	case ErrNoDraftScore:
		return "There is no draft score to save for this answer."
	case ErrInvalidStatus:
		return "The exam status is not recognized."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The requested resource was not found."
	case ErrSessionNotFound:
		return "The grading session was not found or has been closed."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
