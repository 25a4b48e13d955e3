// Package store holds the in-memory exam aggregates — the single source
// of truth for all reads and writes. State is process-lifetime only;
// there is no persistence behind it.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/srichai/gradebench/internal/idgen"
	"github.com/srichai/gradebench/internal/model"
	"github.com/srichai/gradebench/internal/policy"
	"github.com/srichai/gradebench/internal/stats"
)

// maxCodeAttempts bounds the reject-and-regenerate loop for exam codes.
const maxCodeAttempts = 10

// StatsListener observes recomputed stats. Called after the owning
// mutation has fully committed, never while the lock is held.
type StatsListener func(examID string, st model.Stats)

// ExamStore owns the exam tree. Every mutation and its stats recompute
// run as one atomic step under the lock, so no reader ever observes a
// stale Stats value alongside updated answers. Reads return deep clones;
// external callers can never mutate the owned tree directly.
type ExamStore struct {
	mu      sync.RWMutex
	exams   []*model.Exam
	gen     *idgen.Generator
	log     zerolog.Logger
	onStats StatsListener
}

// New creates an empty ExamStore.
func New(gen *idgen.Generator, log zerolog.Logger) *ExamStore {
	return &ExamStore{
		gen: gen,
		log: log.With().Str("component", "exam_store").Logger(),
	}
}

// SetStatsListener registers a listener for stats recomputes. Must be
// called before the store is shared.
func (s *ExamStore) SetStatsListener(fn StatsListener) {
	s.onStats = fn
}

// Seed loads pre-built exams, recomputing stats for each. Intended for
// the startup demo data; the exams must already carry ids.
func (s *ExamStore) Seed(exams []*model.Exam) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range exams {
		e.Stats = stats.Recompute(e)
		s.exams = append(s.exams, e)
	}
	s.log.Info().Int("exams", len(exams)).Msg("Seed data loaded")
}

// ────────────────────────────────────────────────────────────────────────────
// Queries
// ────────────────────────────────────────────────────────────────────────────

// ListExams returns all exams, newest first.
func (s *ExamStore) ListExams(ctx context.Context) []model.Exam {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Exam, 0, len(s.exams))
	for _, e := range s.exams {
		out = append(out, *e.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// GetExam retrieves an exam by id.
func (s *ExamStore) GetExam(ctx context.Context, id string) (*model.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.findExam(id)
	if err != nil {
		return nil, err
	}
	return e.Clone(), nil
}

// GetQuestion searches all exams and sections for a question by id.
func (s *ExamStore) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, _, q, err := s.findQuestion(id)
	if err != nil {
		return nil, err
	}
	return q.Clone(), nil
}

// GetAnswer retrieves an answer by id.
func (s *ExamStore) GetAnswer(ctx context.Context, id string) (*model.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, _, a, err := s.findAnswer(id)
	if err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

// ListAnswers returns a question's answers sorted by student id.
func (s *ExamStore) ListAnswers(ctx context.Context, questionID string) ([]model.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, _, q, err := s.findQuestion(questionID)
	if err != nil {
		return nil, err
	}

	out := make([]model.Answer, 0, len(q.Answers))
	for i := range q.Answers {
		out = append(out, *q.Answers[i].Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}

// ────────────────────────────────────────────────────────────────────────────
// Mutations
// ────────────────────────────────────────────────────────────────────────────

// CreateExam validates and inserts a new exam aggregate. The exam code is
// taken from the request when present (rejected on conflict) or generated
// with a reject-and-regenerate loop: generation and uniqueness are
// different concerns, so the generator is never trusted on its own.
func (s *ExamStore) CreateExam(ctx context.Context, req *model.CreateExamRequest) (*model.Exam, error) {
	exam, st, err := s.createExamLocked(req)
	if err != nil {
		return nil, err
	}
	s.notify(exam.ID, st)
	s.log.Info().Str("exam_id", exam.ID).Str("exam_code", exam.ExamCode).Msg("Exam created")
	return exam, nil
}

func (s *ExamStore) createExamLocked(req *model.CreateExamRequest) (*model.Exam, model.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	questionTotal := 0
	for i := range req.Sections {
		questionTotal += len(req.Sections[i].Questions)
	}
	if questionTotal == 0 {
		return nil, model.Stats{}, ErrNoQuestions
	}

	code := req.ExamCode
	if code != "" {
		if s.codeTaken(code) {
			return nil, model.Stats{}, ErrDuplicateExamCode
		}
	} else {
		var ok bool
		for i := 0; i < maxCodeAttempts; i++ {
			if c := s.gen.NewExamCode(); !s.codeTaken(c) {
				code, ok = c, true
				break
			}
		}
		if !ok {
			return nil, model.Stats{}, ErrCodeExhausted
		}
	}

	exam := &model.Exam{
		ID:              s.gen.NextID(idgen.KindExam),
		Title:           req.Title,
		Description:     req.Description,
		Subject:         req.Subject,
		ExamCode:        code,
		Status:          model.ExamStatusDraft,
		DurationMinutes: req.DurationMinutes,
		CreatedAt:       time.Now().UTC(),
	}

	seenCodes := make(map[string]struct{})
	sectionOrders := make(map[int]struct{})
	for i := range req.Sections {
		in := &req.Sections[i]
		sec := model.Section{
			ID:          s.gen.NextID(idgen.KindSection),
			Title:       in.Title,
			Description: in.Description,
			Order:       nextFreeOrder(sectionOrders, in.Order, i),
		}

		// Per-question ceiling: explicit question value wins, then the
		// section input, then the title-based tier policy.
		tierMax := in.MaxScore
		if tierMax == 0 {
			tierMax = policy.Classify(&model.Section{Title: in.Title}).MaxScore
		}

		questionOrders := make(map[int]struct{})
		for j := range in.Questions {
			qin := &in.Questions[j]
			if qin.QuestionCode != "" {
				if _, dup := seenCodes[qin.QuestionCode]; dup {
					return nil, model.Stats{}, ErrDuplicateQuestionCode
				}
				seenCodes[qin.QuestionCode] = struct{}{}
			}
			maxScore := qin.MaxScore
			if maxScore == 0 {
				maxScore = tierMax
			}
			sec.Questions = append(sec.Questions, model.Question{
				ID:                s.gen.NextID(idgen.KindQuestion),
				ExamID:            exam.ID,
				SectionID:         sec.ID,
				QuestionCode:      qin.QuestionCode,
				PromptText:        qin.PromptText,
				PromptImage:       qin.PromptImage,
				ModelAnswer:       qin.ModelAnswer,
				ReferenceMaterial: qin.ReferenceMaterial,
				Rubric:            qin.Rubric,
				ExemplarResponses: qin.ExemplarResponses,
				MaxScore:          maxScore,
				Order:             nextFreeOrder(questionOrders, qin.Order, j),
			})
		}
		exam.Sections = append(exam.Sections, sec)
	}

	exam.Stats = stats.Recompute(exam)
	s.exams = append(s.exams, exam)
	return exam.Clone(), exam.Stats, nil
}

// CreateQuestion adds a question to an existing exam section.
func (s *ExamStore) CreateQuestion(ctx context.Context, examID string, req *model.CreateQuestionRequest) (*model.Question, error) {
	q, st, err := s.createQuestionLocked(examID, req)
	if err != nil {
		return nil, err
	}
	s.notify(examID, st)
	return q, nil
}

func (s *ExamStore) createQuestionLocked(examID string, req *model.CreateQuestionRequest) (*model.Question, model.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, err := s.findExam(examID)
	if err != nil {
		return nil, model.Stats{}, err
	}

	var sec *model.Section
	for i := range exam.Sections {
		if exam.Sections[i].ID == req.SectionID {
			sec = &exam.Sections[i]
			break
		}
	}
	if sec == nil {
		return nil, model.Stats{}, ErrNotFound
	}

	if req.QuestionCode != "" && questionCodeTaken(exam, req.QuestionCode) {
		return nil, model.Stats{}, ErrDuplicateQuestionCode
	}

	maxScore := req.MaxScore
	if maxScore == 0 {
		maxScore = policy.Classify(sec).MaxScore
	}

	// Order values are unique within a section; a requested order that
	// collides is replaced with the next free slot.
	used := make(map[int]struct{}, len(sec.Questions))
	for _, q := range sec.Questions {
		used[q.Order] = struct{}{}
	}
	order := nextFreeOrder(used, req.Order, len(sec.Questions))

	q := model.Question{
		ID:                s.gen.NextID(idgen.KindQuestion),
		ExamID:            exam.ID,
		SectionID:         sec.ID,
		QuestionCode:      req.QuestionCode,
		PromptText:        req.PromptText,
		PromptImage:       req.PromptImage,
		ModelAnswer:       req.ModelAnswer,
		ReferenceMaterial: req.ReferenceMaterial,
		Rubric:            req.Rubric,
		ExemplarResponses: req.ExemplarResponses,
		MaxScore:          maxScore,
		Order:             order,
	}
	sec.Questions = append(sec.Questions, q)

	exam.Stats = stats.Recompute(exam)
	return q.Clone(), exam.Stats, nil
}

// CreateAnswer records a student submission for a question.
func (s *ExamStore) CreateAnswer(ctx context.Context, questionID string, req *model.CreateAnswerRequest) (*model.Answer, error) {
	a, examID, st, err := s.createAnswerLocked(questionID, req)
	if err != nil {
		return nil, err
	}
	s.notify(examID, st)
	return a, nil
}

func (s *ExamStore) createAnswerLocked(questionID string, req *model.CreateAnswerRequest) (*model.Answer, string, model.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, _, q, err := s.findQuestion(questionID)
	if err != nil {
		return nil, "", model.Stats{}, err
	}

	a := model.Answer{
		ID:           s.gen.NextID(idgen.KindAnswer),
		ExamID:       exam.ID,
		QuestionID:   q.ID,
		StudentID:    req.StudentID,
		AnswerText:   req.AnswerText,
		AnswerImage:  req.AnswerImage,
		AnswerImages: req.AnswerImages,
		CreatedAt:    time.Now().UTC(),
	}
	q.Answers = append(q.Answers, a)

	exam.Stats = stats.Recompute(exam)
	return a.Clone(), exam.ID, exam.Stats, nil
}

// DeleteQuestion removes a question (and its answers, by containment)
// from an exam.
func (s *ExamStore) DeleteQuestion(ctx context.Context, examID, questionID string) error {
	st, err := s.deleteQuestionLocked(examID, questionID)
	if err != nil {
		return err
	}
	s.notify(examID, st)
	return nil
}

func (s *ExamStore) deleteQuestionLocked(examID, questionID string) (model.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, err := s.findExam(examID)
	if err != nil {
		return model.Stats{}, err
	}

	for i := range exam.Sections {
		sec := &exam.Sections[i]
		for j := range sec.Questions {
			if sec.Questions[j].ID == questionID {
				sec.Questions = append(sec.Questions[:j], sec.Questions[j+1:]...)
				exam.Stats = stats.Recompute(exam)
				return exam.Stats, nil
			}
		}
	}
	return model.Stats{}, ErrNotFound
}

// DeleteExam removes an exam and everything under it.
func (s *ExamStore) DeleteExam(ctx context.Context, examID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.exams {
		if e.ID == examID {
			s.exams = append(s.exams[:i], s.exams[i+1:]...)
			s.log.Info().Str("exam_id", examID).Msg("Exam deleted")
			return nil
		}
	}
	return ErrNotFound
}

// UpdateExamStatus applies a caller-driven status transition.
func (s *ExamStore) UpdateExamStatus(ctx context.Context, examID string, status model.ExamStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exam, err := s.findExam(examID)
	if err != nil {
		return err
	}
	exam.Status = status
	return nil
}

// CommitScore validates and writes a committed score onto an answer, then
// recomputes the parent exam's stats. Validate-then-write: a bounds
// failure leaves the answer untouched. Re-committing the same input is
// idempotent in effect; only GradedAt moves to the latest call time.
func (s *ExamStore) CommitScore(ctx context.Context, answerID string, score int, feedback string, source model.ScoreSource) (*model.Answer, error) {
	a, examID, st, err := s.commitScoreLocked(answerID, score, feedback, source)
	if err != nil {
		return nil, err
	}
	s.notify(examID, st)
	return a, nil
}

func (s *ExamStore) commitScoreLocked(answerID string, score int, feedback string, source model.ScoreSource) (*model.Answer, string, model.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, q, a, err := s.findAnswer(answerID)
	if err != nil {
		return nil, "", model.Stats{}, err
	}
	if err := writeScore(exam, q, a, score, feedback, source); err != nil {
		return nil, "", model.Stats{}, err
	}
	return a.Clone(), exam.ID, exam.Stats, nil
}

// CommitScoreIfUngraded commits like CommitScore but leaves an answer
// whose stored score is already defined untouched. The check runs under
// the store lock against the authoritative answer, so a grade committed
// through any other path since the caller last read the answer still
// wins. Reports whether the write happened; when it did not, the
// returned answer carries the existing grade.
func (s *ExamStore) CommitScoreIfUngraded(ctx context.Context, answerID string, score int, feedback string, source model.ScoreSource) (*model.Answer, bool, error) {
	a, examID, st, wrote, err := s.commitIfUngradedLocked(answerID, score, feedback, source)
	if err != nil {
		return nil, false, err
	}
	if wrote {
		s.notify(examID, st)
	}
	return a, wrote, nil
}

func (s *ExamStore) commitIfUngradedLocked(answerID string, score int, feedback string, source model.ScoreSource) (*model.Answer, string, model.Stats, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, q, a, err := s.findAnswer(answerID)
	if err != nil {
		return nil, "", model.Stats{}, false, err
	}
	if a.Graded() {
		return a.Clone(), exam.ID, exam.Stats, false, nil
	}
	if err := writeScore(exam, q, a, score, feedback, source); err != nil {
		return nil, "", model.Stats{}, false, err
	}
	return a.Clone(), exam.ID, exam.Stats, true, nil
}

// writeScore validates and applies a committed score, then recomputes
// the exam's stats. Callers must hold the lock.
func writeScore(exam *model.Exam, q *model.Question, a *model.Answer, score int, feedback string, source model.ScoreSource) error {
	if score < 0 || score > q.MaxScore {
		return ErrScoreOutOfBounds
	}
	if source == "" {
		source = model.ScoreSourceTeacher
	}

	now := time.Now().UTC()
	committed := score
	a.Score = &committed
	a.Feedback = feedback
	a.ScoreGivenBy = source
	a.GradedAt = &now
	a.AISuggestion = nil

	exam.Stats = stats.Recompute(exam)
	return nil
}

// StageSuggestion attaches an AI suggestion to an answer without touching
// its committed score. The answer population is unchanged, so no stats
// recompute is required.
func (s *ExamStore) StageSuggestion(ctx context.Context, answerID string, sugg model.Suggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _, a, err := s.findAnswer(answerID)
	if err != nil {
		return err
	}
	staged := sugg
	a.AISuggestion = &staged
	return nil
}

// RecomputeStats forces a recompute for an exam and returns the result.
func (s *ExamStore) RecomputeStats(ctx context.Context, examID string) (model.Stats, error) {
	s.mu.Lock()
	exam, err := s.findExam(examID)
	if err != nil {
		s.mu.Unlock()
		return model.Stats{}, err
	}
	exam.Stats = stats.Recompute(exam)
	st := exam.Stats
	s.mu.Unlock()

	s.notify(examID, st)
	return st, nil
}

// ────────────────────────────────────────────────────────────────────────────
// Internal helpers — callers must hold the lock
// ────────────────────────────────────────────────────────────────────────────

func (s *ExamStore) findExam(id string) (*model.Exam, error) {
	for _, e := range s.exams {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, ErrNotFound
}

func (s *ExamStore) findQuestion(id string) (*model.Exam, *model.Section, *model.Question, error) {
	for _, e := range s.exams {
		for i := range e.Sections {
			sec := &e.Sections[i]
			for j := range sec.Questions {
				if sec.Questions[j].ID == id {
					return e, sec, &sec.Questions[j], nil
				}
			}
		}
	}
	return nil, nil, nil, ErrNotFound
}

func (s *ExamStore) findAnswer(id string) (*model.Exam, *model.Question, *model.Answer, error) {
	for _, e := range s.exams {
		for i := range e.Sections {
			sec := &e.Sections[i]
			for j := range sec.Questions {
				q := &sec.Questions[j]
				for k := range q.Answers {
					if q.Answers[k].ID == id {
						return e, q, &q.Answers[k], nil
					}
				}
			}
		}
	}
	return nil, nil, nil, ErrNotFound
}

func (s *ExamStore) codeTaken(code string) bool {
	for _, e := range s.exams {
		if e.ExamCode == code {
			return true
		}
	}
	return false
}

func questionCodeTaken(exam *model.Exam, code string) bool {
	for i := range exam.Sections {
		for _, q := range exam.Sections[i].Questions {
			if q.QuestionCode == code {
				return true
			}
		}
	}
	return false
}

// nextFreeOrder resolves a requested order value against the set already
// in use, renumbering collisions to the next free slot. fallback is the
// positional index, applied when no explicit order was requested. The
// chosen order is recorded in used.
func nextFreeOrder(used map[int]struct{}, requested, fallback int) int {
	order := fallback
	if requested != 0 {
		order = requested
	}
	for {
		if _, taken := used[order]; !taken {
			used[order] = struct{}{}
			return order
		}
		order++
	}
}

func (s *ExamStore) notify(examID string, st model.Stats) {
	if s.onStats != nil {
		s.onStats(examID, st)
	}
}
