package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/srichai/gradebench/internal/idgen"
	"github.com/srichai/gradebench/internal/model"
	"github.com/srichai/gradebench/internal/scoring"
	"github.com/srichai/gradebench/internal/store"
)

func newGradingFixture(t *testing.T) (*GradingService, *store.ExamStore, *model.Question) {
	t.Helper()
	ctx := context.Background()
	st := store.New(idgen.New(1), zerolog.Nop())

	exam, err := st.CreateExam(ctx, &model.CreateExamRequest{
		Title: "Service Fixture",
		Sections: []model.SectionInput{
			{
				Title: "Section B - Intermediate",
				Questions: []model.QuestionInput{
					{PromptText: "Solve the system of equations."},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	q := exam.Sections[0].Questions[0]

	for _, student := range []string{"CSE21001", "CSE21002", "CSE21003"} {
		if _, err := st.CreateAnswer(ctx, q.ID, &model.CreateAnswerRequest{StudentID: student}); err != nil {
			t.Fatalf("CreateAnswer: %v", err)
		}
	}

	svc := NewGradingService(st, scoring.NewEngine(1), zerolog.Nop())
	return svc, st, &q
}

func TestBatchSuggestSkipsGraded(t *testing.T) {
	svc, st, q := newGradingFixture(t)
	ctx := context.Background()

	answers, _ := st.ListAnswers(ctx, q.ID)
	if _, err := st.CommitScore(ctx, answers[0].ID, 4, "", model.ScoreSourceTeacher); err != nil {
		t.Fatalf("CommitScore: %v", err)
	}

	suggestions, err := svc.BatchSuggest(ctx, q.ID)
	if err != nil {
		t.Fatalf("BatchSuggest: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("BatchSuggest staged %d suggestions, want 2 (graded answer skipped)", len(suggestions))
	}
	for _, bs := range suggestions {
		if bs.AnswerID == answers[0].ID {
			t.Error("BatchSuggest staged a suggestion on a graded answer")
		}
		// Tier B ceiling is 5, so the floor is 2.
		if bs.Suggestion.Score < 2 || bs.Suggestion.Score > 5 {
			t.Errorf("suggestion %d outside [2, 5]", bs.Suggestion.Score)
		}
	}

	// Nothing got committed.
	fresh, _ := st.GetExam(ctx, q.ExamID)
	if fresh.Stats.GradedAnswers != 1 {
		t.Errorf("GradedAnswers = %d after batch, want 1", fresh.Stats.GradedAnswers)
	}
}

func TestSuggestScoreStagesOnAnswer(t *testing.T) {
	svc, st, q := newGradingFixture(t)
	ctx := context.Background()

	answers, _ := st.ListAnswers(ctx, q.ID)
	sugg, err := svc.SuggestScore(ctx, answers[0].ID)
	if err != nil {
		t.Fatalf("SuggestScore: %v", err)
	}

	fresh, _ := st.GetAnswer(ctx, answers[0].ID)
	if fresh.AISuggestion == nil || *fresh.AISuggestion != sugg {
		t.Errorf("staged suggestion = %v, want %v", fresh.AISuggestion, sugg)
	}
	if fresh.Graded() {
		t.Error("SuggestScore committed a score")
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc, _, q := newGradingFixture(t)
	ctx := context.Background()

	sess, err := svc.OpenSession(ctx, q.ID)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	got, err := svc.GetSession(sess.ID())
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.ID() != sess.ID() {
		t.Errorf("GetSession returned session %q, want %q", got.ID(), sess.ID())
	}

	if err := svc.CloseSession(sess.ID()); err != nil {
		t.Fatalf("CloseSession: %v", err)
	}
	if _, err := svc.GetSession(sess.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSession after close = %v, want ErrSessionNotFound", err)
	}
	if err := svc.CloseSession(sess.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("double close = %v, want ErrSessionNotFound", err)
	}
}

func TestOpenSessionUnknownQuestion(t *testing.T) {
	svc, _, _ := newGradingFixture(t)
	if _, err := svc.OpenSession(context.Background(), "question_999"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("OpenSession error = %v, want store.ErrNotFound", err)
	}
}
