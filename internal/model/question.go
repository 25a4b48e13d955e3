package model

// ExemplarResponse is a text + score pair used as a grading anchor when
// reviewing answers against the model answer.
type ExemplarResponse struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Question is a single gradable prompt. MaxScore is tier-dependent: 2 for
// tier A, 5 for tier B, 8 (or the legacy 10) for tier C. Every committed
// answer score must lie in [0, MaxScore].
type Question struct {
	ID                string             `json:"id"`
	ExamID            string             `json:"exam_id"`
	SectionID         string             `json:"section_id"`
	QuestionCode      string             `json:"question_code,omitempty"`
	PromptText        string             `json:"prompt_text"`
	PromptImage       string             `json:"prompt_image,omitempty"`
	ModelAnswer       string             `json:"model_answer"`
	ReferenceMaterial string             `json:"reference_material,omitempty"`
	Rubric            string             `json:"rubric,omitempty"`
	ExemplarResponses []ExemplarResponse `json:"exemplar_responses,omitempty"`
	MaxScore          int                `json:"max_score"`
	Order             int                `json:"order"`
	Answers           []Answer           `json:"answers"`
}

// QuestionInput is a question block inside a SectionInput.
type QuestionInput struct {
	QuestionCode      string             `json:"question_code" binding:"omitempty,max=20"`
	PromptText        string             `json:"prompt_text" binding:"required,min=1,max=5000"`
	PromptImage       string             `json:"prompt_image" binding:"omitempty,max=500"`
	ModelAnswer       string             `json:"model_answer" binding:"omitempty,max=10000"`
	ReferenceMaterial string             `json:"reference_material" binding:"omitempty,max=2000"`
	Rubric            string             `json:"rubric" binding:"omitempty,max=5000"`
	ExemplarResponses []ExemplarResponse `json:"exemplar_responses" binding:"omitempty,dive"`
	MaxScore          int                `json:"max_score" binding:"omitempty,min=1,max=10"`
	Order             int                `json:"order" binding:"min=0"`
}

// CreateQuestionRequest is the payload for adding a question to an
// existing exam section.
type CreateQuestionRequest struct {
	SectionID string `json:"section_id" binding:"required"`
	QuestionInput
}

// Clone returns a deep copy of the question.
func (q *Question) Clone() *Question {
	out := *q
	if q.ExemplarResponses != nil {
		out.ExemplarResponses = append([]ExemplarResponse(nil), q.ExemplarResponses...)
	}
	out.Answers = make([]Answer, len(q.Answers))
	for i := range q.Answers {
		out.Answers[i] = *q.Answers[i].Clone()
	}
	return &out
}
