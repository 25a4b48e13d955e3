package model

import "time"

// ScoreSource records who committed a score.
type ScoreSource string

const (
	ScoreSourceTeacher ScoreSource = "teacher"
	ScoreSourceAI      ScoreSource = "ai"
)

// Suggestion is a non-authoritative score/feedback pair produced by the
// scoring engine. It becomes a real score only through an explicit commit.
type Suggestion struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Answer is one student's submission for a question. Score is nil while
// the answer is ungraded; ScoreGivenBy and GradedAt are set together with
// Score, never independently. AISuggestion is kept separate from the
// committed score so a suggestion can be reviewed before acceptance.
type Answer struct {
	ID           string      `json:"id"`
	ExamID       string      `json:"exam_id"`
	QuestionID   string      `json:"question_id"`
	StudentID    string      `json:"student_id"`
	AnswerText   string      `json:"answer_text,omitempty"`
	AnswerImage  string      `json:"answer_image,omitempty"`
	AnswerImages []string    `json:"answer_images,omitempty"`
	Score        *int        `json:"score,omitempty"`
	ScoreGivenBy ScoreSource `json:"score_given_by,omitempty"`
	Feedback     string      `json:"feedback,omitempty"`
	GradedAt     *time.Time  `json:"graded_at,omitempty"`
	AISuggestion *Suggestion `json:"ai_suggestion,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Graded reports whether the answer has a committed score. An answer with
// only an AI suggestion is still pending.
func (a *Answer) Graded() bool {
	return a.Score != nil
}

// CreateAnswerRequest is the payload for submitting an answer. Multi-page
// submissions carry several image references in AnswerImages.
type CreateAnswerRequest struct {
	StudentID    string   `json:"student_id" binding:"required,min=1,max=50"`
	AnswerText   string   `json:"answer_text" binding:"omitempty,max=20000"`
	AnswerImage  string   `json:"answer_image" binding:"omitempty,max=500"`
	AnswerImages []string `json:"answer_images" binding:"omitempty,max=20,dive,max=500"`
}

// CommitScoreRequest is the payload for committing a score to an answer.
type CommitScoreRequest struct {
	Score    *int        `json:"score" binding:"required,min=0"`
	Feedback string      `json:"feedback" binding:"omitempty,max=5000"`
	Source   ScoreSource `json:"source" binding:"omitempty,oneof=teacher ai"`
}

// Clone returns a deep copy of the answer.
func (a *Answer) Clone() *Answer {
	out := *a
	if a.AnswerImages != nil {
		out.AnswerImages = append([]string(nil), a.AnswerImages...)
	}
	if a.Score != nil {
		score := *a.Score
		out.Score = &score
	}
	if a.GradedAt != nil {
		at := *a.GradedAt
		out.GradedAt = &at
	}
	if a.AISuggestion != nil {
		sugg := *a.AISuggestion
		out.AISuggestion = &sugg
	}
	return &out
}
