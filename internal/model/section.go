package model

// Section groups questions inside an exam. Its score tier (A/B/C) is not
// stored: it is re-derived from the title text or, failing that, from the
// questions' max score (see the policy package).
type Section struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Order       int        `json:"order"`
	Questions   []Question `json:"questions"`
}

// SectionInput is a section block inside a CreateExamRequest.
// MaxScore, when set, is applied to every question in the section that
// does not carry its own; when zero the section policy derives it from
// the title.
type SectionInput struct {
	Title       string          `json:"title" binding:"required,min=1,max=255"`
	Description string          `json:"description" binding:"omitempty,max=2000"`
	Order       int             `json:"order" binding:"min=0"`
	MaxScore    int             `json:"max_score" binding:"omitempty,min=1,max=10"`
	Questions   []QuestionInput `json:"questions" binding:"omitempty,dive"`
}

// Clone returns a deep copy of the section.
func (s *Section) Clone() *Section {
	out := *s
	out.Questions = make([]Question, len(s.Questions))
	for i := range s.Questions {
		out.Questions[i] = *s.Questions[i].Clone()
	}
	return &out
}
