// Package stats recomputes the derived counters of an exam.
package stats

import (
	"math"

	"github.com/srichai/gradebench/internal/model"
)

// Recompute walks the exam's full section/question/answer tree and
// returns fresh Stats. It has no side effect; the caller assigns the
// result back onto the exam. Recomputing from scratch every time was
// chosen over incremental patching because the answer removal and
// replacement paths are numerous and easy to miss.
func Recompute(exam *model.Exam) model.Stats {
	var s model.Stats
	students := make(map[string]struct{})

	for i := range exam.Sections {
		sec := &exam.Sections[i]
		s.QuestionCount += len(sec.Questions)
		for j := range sec.Questions {
			q := &sec.Questions[j]
			s.TotalAnswers += len(q.Answers)
			for k := range q.Answers {
				a := &q.Answers[k]
				if a.Graded() {
					s.GradedAnswers++
				}
				students[a.StudentID] = struct{}{}
			}
		}
	}

	s.StudentCount = len(students)
	if s.TotalAnswers > 0 {
		s.GradingProgress = int(math.Round(float64(s.GradedAnswers) / float64(s.TotalAnswers) * 100))
	}
	return s
}
