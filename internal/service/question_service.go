package service

import (
	"context"

	"github.com/srichai/gradebench/internal/model"
	"github.com/srichai/gradebench/internal/policy"
	"github.com/srichai/gradebench/internal/store"
)

// QuestionService handles question and answer business logic.
type QuestionService struct {
	store *store.ExamStore
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(st *store.ExamStore) *QuestionService {
	return &QuestionService{store: st}
}

// GetByID searches all exams and sections for a question.
func (s *QuestionService) GetByID(ctx context.Context, id string) (*model.Question, error) {
	return s.store.GetQuestion(ctx, id)
}

// Create adds a question to an exam section. The max score defaults to
// the section's tier when the request leaves it blank.
func (s *QuestionService) Create(ctx context.Context, examID string, req *model.CreateQuestionRequest) (*model.Question, error) {
	return s.store.CreateQuestion(ctx, examID, req)
}

// Delete removes a question from an exam.
func (s *QuestionService) Delete(ctx context.Context, examID, questionID string) error {
	return s.store.DeleteQuestion(ctx, examID, questionID)
}

// ListAnswers retrieves a question's answers sorted by student id.
func (s *QuestionService) ListAnswers(ctx context.Context, questionID string) ([]model.Answer, error) {
	return s.store.ListAnswers(ctx, questionID)
}

// CreateAnswer records a student submission for a question.
func (s *QuestionService) CreateAnswer(ctx context.Context, questionID string, req *model.CreateAnswerRequest) (*model.Answer, error) {
	return s.store.CreateAnswer(ctx, questionID, req)
}

// ClassifySection resolves a question's section tier, preferring the
// section title and falling back to the stored numeric ceiling.
func (s *QuestionService) ClassifySection(ctx context.Context, questionID string) (policy.Classification, error) {
	q, err := s.store.GetQuestion(ctx, questionID)
	if err != nil {
		return policy.Classification{}, err
	}
	exam, err := s.store.GetExam(ctx, q.ExamID)
	if err != nil {
		return policy.Classification{}, err
	}
	for i := range exam.Sections {
		if exam.Sections[i].ID == q.SectionID {
			return policy.Classify(&exam.Sections[i]), nil
		}
	}
	return policy.Classification{}, store.ErrNotFound
}
