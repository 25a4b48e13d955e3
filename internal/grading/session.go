// Package grading implements the per-question review workflow: an
// ordered answer list, a working draft per answer, bounds-validated
// commits, and forward/backward navigation. Drafts live only in the
// session — ending a session discards whatever was not saved.
package grading

import (
	"context"
	"errors"
	"sync"

	"github.com/srichai/gradebench/internal/model"
)

// Session errors.
var (
	ErrScoreOutOfBounds = errors.New("draft score is outside [0, max score]")
	ErrNoDraftScore     = errors.New("no draft score to save for this answer")
	ErrUnknownAnswer    = errors.New("answer is not part of this session")
	ErrIndexOutOfRange  = errors.New("answer index out of range")
)

// Store is the slice of the entity store a session needs.
type Store interface {
	GetQuestion(ctx context.Context, id string) (*model.Question, error)
	ListAnswers(ctx context.Context, questionID string) ([]model.Answer, error)
	CommitScore(ctx context.Context, answerID string, score int, feedback string, source model.ScoreSource) (*model.Answer, error)
	CommitScoreIfUngraded(ctx context.Context, answerID string, score int, feedback string, source model.ScoreSource) (*model.Answer, bool, error)
	StageSuggestion(ctx context.Context, answerID string, sugg model.Suggestion) error
}

// Suggester produces simulated score proposals.
type Suggester interface {
	Suggest(maxScore int) model.Suggestion
}

// Draft is an uncommitted score/feedback edit for one answer.
type Draft struct {
	Score    *int   `json:"score"`
	Feedback string `json:"feedback"`
}

// View is the serializable snapshot of a session.
type View struct {
	SessionID string           `json:"session_id"`
	Question  *model.Question  `json:"question"`
	Answers   []model.Answer   `json:"answers"`
	Drafts    map[string]Draft `json:"drafts"`
	Focus     int              `json:"focus"`
}

// Session is one teacher's review pass over a question's answers.
// Answers are ordered by student id; drafts are seeded from any scores
// already committed when the session opens.
type Session struct {
	mu       sync.Mutex
	id       string
	store    Store
	suggest  Suggester
	question *model.Question
	answers  []model.Answer
	drafts   map[string]Draft
	focus    int
}

// Open loads the question and its ordered answers and seeds the draft map
// from committed scores.
func Open(ctx context.Context, st Store, sg Suggester, sessionID, questionID string) (*Session, error) {
	q, err := st.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	answers, err := st.ListAnswers(ctx, questionID)
	if err != nil {
		return nil, err
	}

	drafts := make(map[string]Draft)
	for i := range answers {
		a := &answers[i]
		if a.Graded() {
			score := *a.Score
			drafts[a.ID] = Draft{Score: &score, Feedback: a.Feedback}
		}
	}

	return &Session{
		id:       sessionID,
		store:    st,
		suggest:  sg,
		question: q,
		answers:  answers,
		drafts:   drafts,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Snapshot returns the current session view.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// SetDraft records a working score/feedback edit for an answer. The score
// is not bounds-checked here: validation happens at save time, so a
// half-typed value never blocks editing. Feedback is unconstrained.
func (s *Session) SetDraft(answerID string, score *int, feedback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(answerID) < 0 {
		return ErrUnknownAnswer
	}
	s.drafts[answerID] = Draft{Score: score, Feedback: feedback}
	return nil
}

// Suggest overwrites the answer's draft with an AI-proposed score and
// feedback, and stages the suggestion on the stored answer. Nothing is
// committed; the teacher may edit the draft further before saving.
func (s *Session) Suggest(ctx context.Context, answerID string) (model.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(answerID)
	if i < 0 {
		return model.Suggestion{}, ErrUnknownAnswer
	}

	sugg := s.suggest.Suggest(s.question.MaxScore)
	if err := s.store.StageSuggestion(ctx, answerID, sugg); err != nil {
		return model.Suggestion{}, err
	}

	staged := sugg
	s.answers[i].AISuggestion = &staged
	score := sugg.Score
	s.drafts[answerID] = Draft{Score: &score, Feedback: sugg.Feedback}
	return sugg, nil
}

// Save validates the answer's draft and commits it to the store as a
// teacher-given score. On a bounds failure nothing is written.
func (s *Session) Save(ctx context.Context, answerID string) (*model.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, answerID)
}

// SaveAll commits every answer whose draft has a defined score and whose
// stored score is still absent. The already-graded check runs in the
// store against the authoritative answer, not this session's snapshot,
// so a grade committed elsewhere since the session opened is never
// overwritten. Returns the number of answers committed.
func (s *Session) SaveAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := 0
	for i := range s.answers {
		a := &s.answers[i]
		if a.Graded() {
			continue
		}
		d, ok := s.drafts[a.ID]
		if !ok || d.Score == nil {
			continue
		}
		if *d.Score < 0 || *d.Score > s.question.MaxScore {
			return saved, ErrScoreOutOfBounds
		}

		committed, wrote, err := s.store.CommitScoreIfUngraded(ctx, a.ID, *d.Score, d.Feedback, model.ScoreSourceTeacher)
		if err != nil {
			return saved, err
		}
		s.answers[i] = *committed.Clone()
		if wrote {
			saved++
		}
	}
	return saved, nil
}

// Next moves focus to the following answer, if any.
func (s *Session) Next() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.focus < len(s.answers)-1 {
		s.focus++
	}
	return s.viewLocked()
}

// Prev moves focus to the preceding answer, if any.
func (s *Session) Prev() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.focus > 0 {
		s.focus--
	}
	return s.viewLocked()
}

// JumpTo moves focus to an explicit answer index.
func (s *Session) JumpTo(i int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.answers) {
		return View{}, ErrIndexOutOfRange
	}
	s.focus = i
	return s.viewLocked(), nil
}

func (s *Session) saveLocked(ctx context.Context, answerID string) (*model.Answer, error) {
	i := s.indexOf(answerID)
	if i < 0 {
		return nil, ErrUnknownAnswer
	}
	d, ok := s.drafts[answerID]
	if !ok || d.Score == nil {
		return nil, ErrNoDraftScore
	}
	if *d.Score < 0 || *d.Score > s.question.MaxScore {
		return nil, ErrScoreOutOfBounds
	}

	committed, err := s.store.CommitScore(ctx, answerID, *d.Score, d.Feedback, model.ScoreSourceTeacher)
	if err != nil {
		return nil, err
	}
	s.answers[i] = *committed.Clone()
	return committed, nil
}

func (s *Session) indexOf(answerID string) int {
	for i := range s.answers {
		if s.answers[i].ID == answerID {
			return i
		}
	}
	return -1
}

func (s *Session) viewLocked() View {
	answers := make([]model.Answer, len(s.answers))
	for i := range s.answers {
		answers[i] = *s.answers[i].Clone()
	}
	drafts := make(map[string]Draft, len(s.drafts))
	for k, v := range s.drafts {
		d := v
		if v.Score != nil {
			score := *v.Score
			d.Score = &score
		}
		drafts[k] = d
	}
	return View{
		SessionID: s.id,
		Question:  s.question.Clone(),
		Answers:   answers,
		Drafts:    drafts,
		Focus:     s.focus,
	}
}
