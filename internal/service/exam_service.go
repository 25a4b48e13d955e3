package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/srichai/gradebench/internal/model"
	"github.com/srichai/gradebench/internal/store"
)

// ExamService handles exam lifecycle business logic over the entity store.
type ExamService struct {
	store *store.ExamStore
	log   zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(st *store.ExamStore, log zerolog.Logger) *ExamService {
	return &ExamService{
		store: st,
		log:   log.With().Str("component", "exam_service").Logger(),
	}
}

// List retrieves all exams, newest first.
func (s *ExamService) List(ctx context.Context) []model.Exam {
	return s.store.ListExams(ctx)
}

// GetByID retrieves an exam by id.
func (s *ExamService) GetByID(ctx context.Context, id string) (*model.Exam, error) {
	return s.store.GetExam(ctx, id)
}

// Create inserts a new exam as draft. Code uniqueness and the at-least-
// one-question rule are enforced by the store's create path.
func (s *ExamService) Create(ctx context.Context, req *model.CreateExamRequest) (*model.Exam, error) {
	return s.store.CreateExam(ctx, req)
}

// Delete removes an exam and, by containment, all of its sections,
// questions and answers.
func (s *ExamService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteExam(ctx, id)
}

// UpdateStatus applies a caller-driven status transition.
func (s *ExamService) UpdateStatus(ctx context.Context, id string, status model.ExamStatus) error {
	return s.store.UpdateExamStatus(ctx, id, status)
}

// RecomputeStats forces a stats recompute for an exam.
func (s *ExamService) RecomputeStats(ctx context.Context, id string) (model.Stats, error) {
	return s.store.RecomputeStats(ctx, id)
}
