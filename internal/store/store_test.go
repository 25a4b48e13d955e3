package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/srichai/gradebench/internal/idgen"
	"github.com/srichai/gradebench/internal/model"
)

func newTestStore() *ExamStore {
	return New(idgen.New(1), zerolog.Nop())
}

func examRequest() *model.CreateExamRequest {
	return &model.CreateExamRequest{
		Title: "Physics Midterm",
		Sections: []model.SectionInput{
			{
				Title: "Section A - Basics",
				Questions: []model.QuestionInput{
					{PromptText: "Define velocity."},
					{PromptText: "Define force."},
				},
			},
			{
				Title: "Section C - Advanced",
				Questions: []model.QuestionInput{
					{PromptText: "Derive the pendulum period."},
				},
			},
		},
	}
}

func mustCreateExam(t *testing.T, s *ExamStore) *model.Exam {
	t.Helper()
	exam, err := s.CreateExam(context.Background(), examRequest())
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	return exam
}

func addAnswer(t *testing.T, s *ExamStore, questionID, studentID string) *model.Answer {
	t.Helper()
	a, err := s.CreateAnswer(context.Background(), questionID, &model.CreateAnswerRequest{
		StudentID:  studentID,
		AnswerText: "some working",
	})
	if err != nil {
		t.Fatalf("CreateAnswer: %v", err)
	}
	return a
}

func TestCreateExamGeneratesCode(t *testing.T) {
	s := newTestStore()
	exam := mustCreateExam(t, s)

	if !regexp.MustCompile(`^[A-Z0-9]{8}$`).MatchString(exam.ExamCode) {
		t.Errorf("generated code %q is not 8-char uppercase alphanumeric", exam.ExamCode)
	}
	if exam.Status != model.ExamStatusDraft {
		t.Errorf("new exam status = %q, want draft", exam.Status)
	}
}

func TestCreateExamKeepsProvidedCode(t *testing.T) {
	s := newTestStore()
	req := examRequest()
	req.ExamCode = "PHY24MID"

	exam, err := s.CreateExam(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	if exam.ExamCode != "PHY24MID" {
		t.Errorf("exam code = %q, want PHY24MID", exam.ExamCode)
	}

	// Same code again must be rejected.
	if _, err := s.CreateExam(context.Background(), req); !errors.Is(err, ErrDuplicateExamCode) {
		t.Errorf("duplicate code error = %v, want ErrDuplicateExamCode", err)
	}
}

func TestCreateExamRequiresQuestions(t *testing.T) {
	s := newTestStore()
	req := &model.CreateExamRequest{
		Title:    "Empty Exam",
		Sections: []model.SectionInput{{Title: "Section A"}},
	}
	if _, err := s.CreateExam(context.Background(), req); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("CreateExam error = %v, want ErrNoQuestions", err)
	}
}

func TestCreateExamDerivesMaxScoreFromTier(t *testing.T) {
	s := newTestStore()
	exam := mustCreateExam(t, s)

	if got := exam.Sections[0].Questions[0].MaxScore; got != 2 {
		t.Errorf("tier-A question max score = %d, want 2", got)
	}
	if got := exam.Sections[1].Questions[0].MaxScore; got != 8 {
		t.Errorf("tier-C question max score = %d, want 8", got)
	}
}

func TestCreateExamExplicitMaxScoreWins(t *testing.T) {
	s := newTestStore()
	req := &model.CreateExamRequest{
		Title: "Legacy Exam",
		Sections: []model.SectionInput{
			{
				Title: "Section C - Advanced",
				Questions: []model.QuestionInput{
					{PromptText: "Prove something hard.", MaxScore: 10},
				},
			},
		},
	}
	exam, err := s.CreateExam(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	if got := exam.Sections[0].Questions[0].MaxScore; got != 10 {
		t.Errorf("explicit max score = %d, want legacy 10", got)
	}
}

func TestCommitScore(t *testing.T) {
	s := newTestStore()
	exam := mustCreateExam(t, s)
	q := exam.Sections[0].Questions[0] // max score 2
	a := addAnswer(t, s, q.ID, "CSE21001")

	got, err := s.CommitScore(context.Background(), a.ID, 2, "well done", model.ScoreSourceTeacher)
	if err != nil {
		t.Fatalf("CommitScore: %v", err)
	}
	if got.Score == nil || *got.Score != 2 {
		t.Fatalf("committed score = %v, want 2", got.Score)
	}
	if got.ScoreGivenBy != model.ScoreSourceTeacher || got.GradedAt == nil {
		t.Error("ScoreGivenBy and GradedAt must be set together with Score")
	}

	fresh, err := s.GetExam(context.Background(), exam.ID)
	if err != nil {
		t.Fatalf("GetExam: %v", err)
	}
	if fresh.Stats.GradedAnswers != 1 || fresh.Stats.TotalAnswers != 1 {
		t.Errorf("stats after commit = %+v, want graded=1 total=1", fresh.Stats)
	}
}

func TestCommitScoreOutOfBounds(t *testing.T) {
	s := newTestStore()
	exam := mustCreateExam(t, s)
	q := exam.Sections[0].Questions[0] // max score 2
	a := addAnswer(t, s, q.ID, "CSE21001")

	for _, score := range []int{-1, 3} {
		if _, err := s.CommitScore(context.Background(), a.ID, score, "", ""); !errors.Is(err, ErrScoreOutOfBounds) {
			t.Errorf("CommitScore(%d) error = %v, want ErrScoreOutOfBounds", score, err)
		}
	}

	// A rejected commit must leave the answer and the stats untouched.
	fresh, _ := s.GetAnswer(context.Background(), a.ID)
	if fresh.Graded() {
		t.Error("answer became graded after rejected commits")
	}
	ex, _ := s.GetExam(context.Background(), exam.ID)
	if ex.Stats.GradedAnswers != 0 {
		t.Errorf("GradedAnswers = %d after rejected commits, want 0", ex.Stats.GradedAnswers)
	}
}

func TestCommitScoreDefaultsToTeacher(t *testing.T) {
	s := newTestStore()
	exam := mustCreateExam(t, s)
	a := addAnswer(t, s, exam.Sections[0].Questions[0].ID, "CSE21001")

	got, err := s.CommitScore(context.Background(), a.ID, 1, "", "")
	if err != nil {
		t.Fatalf("CommitScore: %v", err)
	}
	if got.ScoreGivenBy != model.ScoreSourceTeacher {
		t.Errorf("default source = %q, want teacher", got.ScoreGivenBy)
	}
}

func TestRecommitOverwritesWithoutDoubleCounting(t *testing.T) {
	s := newTestStore()
	exam := mustCreateExam(t, s)
	a := addAnswer(t, s, exam.Sections[0].Questions[0].ID, "CSE21001")

	if _, err := s.CommitScore(context.Background(), a.ID, 1, "first pass", ""); err != nil {
		t.Fatalf("CommitScore: %v", err)
	}
	got, err := s.CommitScore(context.Background(), a.ID, 2, "revised", "")
	if err != nil {
		t.Fatalf("CommitScore: %v", err)
	}
	if *got.Score != 2 || got.Feedback != "revised" {
		t.Errorf("recommit = score %d feedback %q, want 2/revised", *got.Score, got.Feedback)
	}

	ex, _ := s.GetExam(context.Background(), exam.ID)
	if ex.Stats.GradedAnswers != 1 {
		t.Errorf("GradedAnswers = %d after recommit, want 1", ex.Stats.GradedAnswers)
	}
}

func TestCommitScoreIfUngraded(t *testing.T) {
	s := newTestStore()
	exam := mustCreateExam(t, s)
	a := addAnswer(t, s, exam.Sections[0].Questions[0].ID, "CSE21001")

	got, wrote, err := s.CommitScoreIfUngraded(context.Background(), a.ID, 1, "first", model.ScoreSourceTeacher)
	if err != nil {
		t.Fatalf("CommitScoreIfUngraded: %v", err)
	}
	if !wrote || got.Score == nil || *got.Score != 1 {
		t.Fatalf("first conditional commit: wrote=%v score=%v, want a committed 1", wrote, got.Score)
	}

	// A second conditional commit must leave the existing grade alone
	// and hand it back.
	got, wrote, err = s.CommitScoreIfUngraded(context.Background(), a.ID, 2, "second", model.ScoreSourceTeacher)
	if err != nil {
		t.Fatalf("CommitScoreIfUngraded: %v", err)
	}
	if wrote {
		t.Error("conditional commit overwrote an existing grade")
	}
	if *got.Score != 1 || got.Feedback != "first" {
		t.Errorf("returned answer = score %d feedback %q, want the original 1/first", *got.Score, got.Feedback)
	}

	ex, _ := s.GetExam(context.Background(), exam.ID)
	if ex.Stats.GradedAnswers != 1 {
		t.Errorf("GradedAnswers = %d, want 1", ex.Stats.GradedAnswers)
	}
}

// Explicit section orders colliding in one request are renumbered to the
// next free slot, keeping order values unique within the exam.
func TestCreateExamRenumbersDuplicateSectionOrders(t *testing.T) {
	s := newTestStore()
	req := examRequest()
	req.Sections[0].Order = 3
	req.Sections[1].Order = 3

	exam, err := s.CreateExam(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	if exam.Sections[0].Order != 3 || exam.Sections[1].Order != 4 {
		t.Errorf("section orders = %d/%d, want 3/4",
			exam.Sections[0].Order, exam.Sections[1].Order)
	}
}

func TestCreateExamHonorsExplicitQuestionOrder(t *testing.T) {
	s := newTestStore()
	req := examRequest()
	req.Sections[0].Questions[0].Order = 5

	exam, err := s.CreateExam(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	qs := exam.Sections[0].Questions
	if qs[0].Order != 5 {
		t.Errorf("explicit question order = %d, want 5", qs[0].Order)
	}
	if qs[1].Order != 1 {
		t.Errorf("positional question order = %d, want 1", qs[1].Order)
	}
}

func TestCreateExamRenumbersDuplicateQuestionOrders(t *testing.T) {
	s := newTestStore()
	req := examRequest()
	req.Sections[0].Questions[0].Order = 2
	req.Sections[0].Questions[1].Order = 2

	exam, err := s.CreateExam(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	qs := exam.Sections[0].Questions
	if qs[0].Order == qs[1].Order {
		t.Fatalf("duplicate question order %d survived", qs[0].Order)
	}
	if qs[0].Order != 2 || qs[1].Order != 3 {
		t.Errorf("question orders = %d/%d, want 2/3", qs[0].Order, qs[1].Order)
	}
}

func TestStageSuggestionDoesNotGrade(t *testing.T) {
	s := newTestStore()
	exam := mustCreateExam(t, s)
	a := addAnswer(t, s, exam.Sections[1].Questions[0].ID, "CSE21001")

	sugg := model.Suggestion{Score: 6, Feedback: "solid attempt"}
	if err := s.StageSuggestion(context.Background(), a.ID, sugg); err != nil {
		t.Fatalf("StageSuggestion: %v", err)
	}

	fresh, _ := s.GetAnswer(context.Background(), a.ID)
	if fresh.Graded() {
		t.Error("staging a suggestion must not grade the answer")
	}
	if fresh.AISuggestion == nil || *fresh.AISuggestion != sugg {
		t.Errorf("staged suggestion = %v, want %v", fresh.AISuggestion, sugg)
	}

	ex, _ := s.GetExam(context.Background(), exam.ID)
	if ex.Stats.GradedAnswers != 0 {
		t.Errorf("GradedAnswers = %d after staging, want 0", ex.Stats.GradedAnswers)
	}
}

// Committing clears any staged suggestion; it is no longer relevant.
func TestCommitClearsSuggestion(t *testing.T) {
	s := newTestStore()
	exam := mustCreateExam(t, s)
	a := addAnswer(t, s, exam.Sections[1].Questions[0].ID, "CSE21001")

	_ = s.StageSuggestion(context.Background(), a.ID, model.Suggestion{Score: 6, Feedback: "x"})
	got, err := s.CommitScore(context.Background(), a.ID, 7, "", "")
	if err != nil {
		t.Fatalf("CommitScore: %v", err)
	}
	if got.AISuggestion != nil {
		t.Error("committed answer still carries a staged suggestion")
	}
}

func TestDeleteQuestionCascades(t *testing.T) {
	s := newTestStore()
	exam := mustCreateExam(t, s)
	q := exam.Sections[0].Questions[0]
	addAnswer(t, s, q.ID, "CSE21001")
	addAnswer(t, s, q.ID, "CSE21002")

	if err := s.DeleteQuestion(context.Background(), exam.ID, q.ID); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	if _, err := s.GetQuestion(context.Background(), q.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetQuestion after delete = %v, want ErrNotFound", err)
	}

	ex, _ := s.GetExam(context.Background(), exam.ID)
	if ex.Stats.QuestionCount != 2 || ex.Stats.TotalAnswers != 0 {
		t.Errorf("stats after cascade delete = %+v, want questions=2 answers=0", ex.Stats)
	}
}

func TestDeleteExam(t *testing.T) {
	s := newTestStore()
	exam := mustCreateExam(t, s)

	if err := s.DeleteExam(context.Background(), exam.ID); err != nil {
		t.Fatalf("DeleteExam: %v", err)
	}
	if _, err := s.GetExam(context.Background(), exam.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetExam after delete = %v, want ErrNotFound", err)
	}
	if _, err := s.GetQuestion(context.Background(), exam.Sections[0].Questions[0].ID); !errors.Is(err, ErrNotFound) {
		t.Error("questions must not survive their exam")
	}
}

func TestUpdateExamStatus(t *testing.T) {
	s := newTestStore()
	exam := mustCreateExam(t, s)

	if err := s.UpdateExamStatus(context.Background(), exam.ID, model.ExamStatusActive); err != nil {
		t.Fatalf("UpdateExamStatus: %v", err)
	}
	ex, _ := s.GetExam(context.Background(), exam.ID)
	if ex.Status != model.ExamStatusActive {
		t.Errorf("status = %q, want active", ex.Status)
	}

	if err := s.UpdateExamStatus(context.Background(), exam.ID, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("unknown status error = %v, want ErrInvalidStatus", err)
	}
}

func TestListAnswersSortedByStudent(t *testing.T) {
	s := newTestStore()
	exam := mustCreateExam(t, s)
	q := exam.Sections[0].Questions[0]
	for _, student := range []string{"CSE21003", "CSE21001", "CSE21002"} {
		addAnswer(t, s, q.ID, student)
	}

	answers, err := s.ListAnswers(context.Background(), q.ID)
	if err != nil {
		t.Fatalf("ListAnswers: %v", err)
	}
	want := []string{"CSE21001", "CSE21002", "CSE21003"}
	for i, w := range want {
		if answers[i].StudentID != w {
			t.Fatalf("answers[%d].StudentID = %q, want %q", i, answers[i].StudentID, w)
		}
	}
}

func TestReadsAreIsolatedClones(t *testing.T) {
	s := newTestStore()
	exam := mustCreateExam(t, s)

	// Mutating the returned copy must not leak into the store.
	exam.Title = "hacked"
	exam.Sections[0].Questions[0].MaxScore = 99

	fresh, _ := s.GetExam(context.Background(), exam.ID)
	if fresh.Title == "hacked" || fresh.Sections[0].Questions[0].MaxScore == 99 {
		t.Error("store state was mutated through a returned clone")
	}
}

func TestStatsListenerFiresAfterMutation(t *testing.T) {
	s := newTestStore()

	var events []model.Stats
	s.SetStatsListener(func(examID string, st model.Stats) {
		events = append(events, st)
	})

	exam := mustCreateExam(t, s)
	a := addAnswer(t, s, exam.Sections[0].Questions[0].ID, "CSE21001")
	if _, err := s.CommitScore(context.Background(), a.ID, 1, "", ""); err != nil {
		t.Fatalf("CommitScore: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("listener fired %d times, want 3 (create, answer, commit)", len(events))
	}
	last := events[len(events)-1]
	if last.GradedAnswers != 1 || last.TotalAnswers != 1 {
		t.Errorf("last stats event = %+v, want graded=1 total=1", last)
	}
}
