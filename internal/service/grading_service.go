package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/srichai/gradebench/internal/grading"
	"github.com/srichai/gradebench/internal/model"
	"github.com/srichai/gradebench/internal/scoring"
	"github.com/srichai/gradebench/internal/store"
)

// ErrSessionNotFound is returned for unknown grading-session ids.
var ErrSessionNotFound = errors.New("grading session not found")

// BatchSuggestion pairs a staged suggestion with its answer.
type BatchSuggestion struct {
	AnswerID   string           `json:"answer_id"`
	StudentID  string           `json:"student_id"`
	Suggestion model.Suggestion `json:"suggestion"`
}

// GradingService orchestrates the scoring engine, the entity store and
// the per-question grading sessions. Suggestions and commits stay
// strictly separated: the engine's output is always staged, never
// written as a final grade.
type GradingService struct {
	store  *store.ExamStore
	engine *scoring.Engine
	log    zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*grading.Session
}

// NewGradingService creates a new GradingService.
func NewGradingService(st *store.ExamStore, engine *scoring.Engine, log zerolog.Logger) *GradingService {
	return &GradingService{
		store:    st,
		engine:   engine,
		log:      log.With().Str("component", "grading_service").Logger(),
		sessions: make(map[string]*grading.Session),
	}
}

// CommitScore writes a final score onto an answer. The store validates
// bounds against the parent question and recomputes the exam's stats.
func (s *GradingService) CommitScore(ctx context.Context, answerID string, req *model.CommitScoreRequest) (*model.Answer, error) {
	source := req.Source
	if source == "" {
		source = model.ScoreSourceTeacher
	}
	a, err := s.store.CommitScore(ctx, answerID, *req.Score, req.Feedback, source)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("answer_id", answerID).
		Int("score", *req.Score).
		Str("source", string(source)).
		Msg("Score committed")
	return a, nil
}

// SuggestScore draws a simulated score for one answer and stages it as an
// AI suggestion. The answer's committed score is untouched.
func (s *GradingService) SuggestScore(ctx context.Context, answerID string) (model.Suggestion, error) {
	a, err := s.store.GetAnswer(ctx, answerID)
	if err != nil {
		return model.Suggestion{}, err
	}
	q, err := s.store.GetQuestion(ctx, a.QuestionID)
	if err != nil {
		return model.Suggestion{}, err
	}

	sugg := s.engine.Suggest(q.MaxScore)
	if err := s.store.StageSuggestion(ctx, answerID, sugg); err != nil {
		return model.Suggestion{}, err
	}
	return sugg, nil
}

// BatchSuggest stages a suggestion for every ungraded answer of a
// question. Already-graded answers are left untouched, so re-running a
// batch after a partial failure cannot double-grade anything.
func (s *GradingService) BatchSuggest(ctx context.Context, questionID string) ([]BatchSuggestion, error) {
	q, err := s.store.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	answers, err := s.store.ListAnswers(ctx, questionID)
	if err != nil {
		return nil, err
	}

	out := make([]BatchSuggestion, 0, len(answers))
	for i := range answers {
		a := &answers[i]
		if a.Graded() {
			continue
		}
		sugg := s.engine.Suggest(q.MaxScore)
		if err := s.store.StageSuggestion(ctx, a.ID, sugg); err != nil {
			return out, err
		}
		out = append(out, BatchSuggestion{AnswerID: a.ID, StudentID: a.StudentID, Suggestion: sugg})
	}

	s.log.Info().
		Str("question_id", questionID).
		Int("staged", len(out)).
		Msg("Batch suggestions staged")
	return out, nil
}

// OpenSession starts a grading session for a question.
func (s *GradingService) OpenSession(ctx context.Context, questionID string) (*grading.Session, error) {
	sess, err := grading.Open(ctx, s.store, s.engine, uuid.New().String(), questionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	s.log.Debug().Str("session_id", sess.ID()).Str("question_id", questionID).Msg("Grading session opened")
	return sess, nil
}

// GetSession retrieves an open grading session by id.
func (s *GradingService) GetSession(sessionID string) (*grading.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// CloseSession abandons a session. Unsaved drafts are lost, by design:
// the workbench is a manual-review tool, not a form with autosave.
func (s *GradingService) CloseSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}
