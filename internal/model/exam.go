package model

import "time"

// ExamStatus enumerates the possible states of an exam.
// Transitions are caller-driven; the store never changes a status on its own.
type ExamStatus string

const (
	ExamStatusDraft     ExamStatus = "draft"
	ExamStatusActive    ExamStatus = "active"
	ExamStatusCompleted ExamStatus = "completed"
)

// Valid reports whether s is a known exam status.
func (s ExamStatus) Valid() bool {
	switch s {
	case ExamStatusDraft, ExamStatusActive, ExamStatusCompleted:
		return true
	}
	return false
}

// Exam is the top-level graded assessment aggregate. Sections, questions
// and answers are held inline; Stats is derived and must only ever be
// written by a recompute.
type Exam struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Subject         string     `json:"subject,omitempty"`
	ExamCode        string     `json:"exam_code"`
	Status          ExamStatus `json:"status"`
	DurationMinutes int        `json:"duration_minutes"`
	CreatedAt       time.Time  `json:"created_at"`
	Sections        []Section  `json:"sections"`
	Stats           Stats      `json:"stats"`
}

// Stats holds the derived counters for an exam. It is recomputed from the
// full section/question/answer tree after every mutation that touches the
// answer or question population — never patched incrementally.
type Stats struct {
	QuestionCount int `json:"question_count"`
	TotalAnswers  int `json:"total_answers"`
	GradedAnswers int `json:"graded_answers"`
	StudentCount  int `json:"student_count"`
	// GradingProgress is the graded/total percentage, rounded to the
	// nearest integer. Zero when the exam has no answers.
	GradingProgress int `json:"grading_progress"`
}

// CreateExamRequest is the payload for creating a new exam.
// The exam code is optional; when blank the store generates one. The
// authoring flow must supply at least one question across its sections.
type CreateExamRequest struct {
	Title           string         `json:"title" binding:"required,min=3,max=255"`
	Description     string         `json:"description" binding:"omitempty,max=2000"`
	Subject         string         `json:"subject" binding:"omitempty,max=100"`
	ExamCode        string         `json:"exam_code" binding:"omitempty,examcode"`
	DurationMinutes int            `json:"duration_minutes" binding:"omitempty,min=1,max=480"`
	Sections        []SectionInput `json:"sections" binding:"required,min=1,dive"`
}

// UpdateExamStatusRequest is the payload for a caller-driven status change.
type UpdateExamStatusRequest struct {
	Status ExamStatus `json:"status" binding:"required,oneof=draft active completed"`
}

// Clone returns a deep copy of the exam. The store hands out clones so
// callers cannot mutate the owned tree behind the lock's back.
func (e *Exam) Clone() *Exam {
	out := *e
	out.Sections = make([]Section, len(e.Sections))
	for i := range e.Sections {
		out.Sections[i] = *e.Sections[i].Clone()
	}
	return &out
}
