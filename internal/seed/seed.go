// Package seed loads the demo exams used when the server starts with an
// empty store. Two exams are provided: a physics exam whose advanced
// section still uses the legacy 10-point ceiling, and a mathematics exam
// on the current 8-point ceiling.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/srichai/gradebench/internal/idgen"
	"github.com/srichai/gradebench/internal/model"
	"github.com/srichai/gradebench/internal/policy"
	"github.com/srichai/gradebench/internal/store"
)

// demoSeed fixes the grading pattern so restarts produce the same demo
// state.
const demoSeed = 42

// gradedRatio is the approximate share of demo answers that start out
// already graded.
const gradedRatio = 0.6

var demoStudents = []string{
	"CSE21001", "CSE21002", "CSE21003", "CSE21004",
	"CSE21005", "CSE21006", "CSE21007", "CSE21008",
}

type questionDef struct {
	code   string
	prompt string
	answer string
}

type sectionDef struct {
	title       string
	description string
	maxScore    int
	questions   []questionDef
}

type examDef struct {
	title       string
	description string
	subject     string
	code        string
	duration    int
	sections    []sectionDef
}

// Load builds the demo exams and seeds them into the store.
func Load(st *store.ExamStore, gen *idgen.Generator, log zerolog.Logger) {
	rng := rand.New(rand.NewSource(demoSeed))

	exams := []*model.Exam{
		buildExam(gen, rng, physicsExam()),
		buildExam(gen, rng, mathExam()),
	}
	st.Seed(exams)
	log.Info().Int("exams", len(exams)).Int("students", len(demoStudents)).Msg("Demo data seeded")
}

func physicsExam() examDef {
	return examDef{
		title:       "Physics Midterm Examination",
		description: "Mechanics, waves and thermodynamics, written answers only.",
		subject:     "Physics",
		code:        "PHY24MID",
		duration:    120,
		sections: []sectionDef{
			{
				title:       "Section A - Basic Concepts",
				description: "Short definition questions.",
				maxScore:    policy.MaxScoreTierA,
				questions: []questionDef{
					{"PHY-A1", "Define scalar and vector quantities with one example of each.", "Scalars have magnitude only (mass); vectors have magnitude and direction (velocity)."},
					{"PHY-A2", "State Newton's first law of motion.", "A body remains at rest or in uniform motion unless acted on by an external force."},
					{"PHY-A3", "What is the SI unit of work, and how is it defined?", "The joule: the work done by a force of one newton over one metre."},
					{"PHY-A4", "Define frequency and state its SI unit.", "The number of oscillations per second, measured in hertz."},
					{"PHY-A5", "What is meant by the amplitude of a wave?", "The maximum displacement of a particle from its mean position."},
				},
			},
			{
				title:       "Section B - Intermediate Problems",
				description: "Two-step numerical problems.",
				maxScore:    policy.MaxScoreTierB,
				questions: []questionDef{
					{"PHY-B1", "A 2 kg block accelerates at 3 m/s^2. Find the net force and the work done over 4 m.", "F = ma = 6 N; W = Fs = 24 J."},
					{"PHY-B2", "A wave has speed 340 m/s and frequency 170 Hz. Find its wavelength and period.", "Wavelength = v/f = 2 m; period = 1/f ~ 5.9 ms."},
					{"PHY-B3", "A ball is thrown upward at 20 m/s. Find the maximum height and time of flight (g = 10 m/s^2).", "h = v^2/2g = 20 m; total time = 2v/g = 4 s."},
					{"PHY-B4", "State the principle of conservation of momentum and apply it to a 3 kg body at 4 m/s striking a stationary 1 kg body that sticks to it.", "Total momentum conserved: 12 = 4v, so v = 3 m/s."},
					{"PHY-B5", "100 g of water is heated from 20 C to 60 C. Find the heat absorbed (c = 4.2 J/gC).", "Q = mc dT = 100 * 4.2 * 40 = 16,800 J."},
				},
			},
			{
				title:       "Section C - Advanced Analysis",
				description: "Multi-part derivations. Graded on the legacy 10-point scale.",
				maxScore:    policy.MaxScoreTierCLegacy,
				questions: []questionDef{
					{"PHY-C1", "Derive the expression for the time period of a simple pendulum and discuss the small-angle approximation.", "T = 2*pi*sqrt(L/g); valid when sin(theta) ~ theta, i.e. small angular displacement."},
					{"PHY-C2", "Derive the work-energy theorem for a particle under a variable force and illustrate it with a spring.", "Integral of F dx equals the change in kinetic energy; for a spring W = kx^2/2."},
					{"PHY-C3", "Explain standing waves on a stretched string and derive the allowed harmonic frequencies.", "Interference of reflected waves fixes nodes at the ends; f_n = n*v/2L."},
					{"PHY-C4", "State the first law of thermodynamics and analyse an isothermal versus an adiabatic expansion of an ideal gas.", "dU = Q - W; isothermal keeps T constant (Q = W), adiabatic has Q = 0 so the gas cools."},
					{"PHY-C5", "Derive the escape velocity from a planet's surface and compute it for Earth.", "v = sqrt(2GM/R) ~ 11.2 km/s for Earth."},
				},
			},
		},
	}
}

func mathExam() examDef {
	return examDef{
		title:       "Mathematics Final Examination",
		description: "Algebra, calculus and probability, full working required.",
		subject:     "Mathematics",
		code:        "MTH24FIN",
		duration:    180,
		sections: []sectionDef{
			{
				title:       "Section A - Basic Skills",
				description: "One-line answers.",
				maxScore:    policy.MaxScoreTierA,
				questions: []questionDef{
					{"MTH-A1", "Solve for x: 3x - 7 = 11.", "x = 6."},
					{"MTH-A2", "Differentiate f(x) = x^3 with respect to x.", "f'(x) = 3x^2."},
					{"MTH-A3", "What is the probability of drawing an ace from a standard deck?", "4/52 = 1/13."},
					{"MTH-A4", "State the quadratic formula.", "x = (-b +/- sqrt(b^2 - 4ac)) / 2a."},
					{"MTH-A5", "Evaluate the sum of the first 10 natural numbers.", "n(n+1)/2 = 55."},
				},
			},
			{
				title:       "Section B - Intermediate Reasoning",
				description: "Show your working.",
				maxScore:    policy.MaxScoreTierB,
				questions: []questionDef{
					{"MTH-B1", "Find the turning points of f(x) = x^3 - 3x and classify them.", "f'(x) = 3x^2 - 3 = 0 at x = +/-1; maximum at x = -1, minimum at x = 1."},
					{"MTH-B2", "Solve the system: 2x + y = 7, x - y = 2.", "Adding gives 3x = 9, so x = 3, y = 1."},
					{"MTH-B3", "Evaluate the definite integral of 2x + 1 from 0 to 3.", "x^2 + x from 0 to 3 = 12."},
					{"MTH-B4", "Two dice are rolled. Find the probability the sum is at least 10.", "Favourable outcomes 6 of 36, so 1/6."},
					{"MTH-B5", "Find the sum of the geometric series 2 + 6 + 18 + ... to 6 terms.", "a(r^n - 1)/(r - 1) = 2(729 - 1)/2 = 728."},
				},
			},
			{
				title:       "Section C - Advanced Proofs",
				description: "Rigorous argument expected.",
				maxScore:    policy.MaxScoreTierC,
				questions: []questionDef{
					{"MTH-C1", "Prove that sqrt(2) is irrational.", "Assume sqrt(2) = p/q in lowest terms; then p^2 = 2q^2 forces both even, a contradiction."},
					{"MTH-C2", "Prove by induction that the sum of the first n odd numbers is n^2.", "Base n = 1 holds; step adds 2n + 1 to n^2 giving (n + 1)^2."},
					{"MTH-C3", "Derive the derivative of sin(x) from first principles.", "Limit of (sin(x+h) - sin(x))/h; using lim sin(h)/h = 1 gives cos(x)."},
					{"MTH-C4", "Show that there are infinitely many primes.", "Euclid: for any finite list, the product plus one has a prime factor outside the list."},
					{"MTH-C5", "State and prove Bayes' theorem for two events.", "P(A|B) = P(B|A)P(A)/P(B), from the two expansions of P(A and B)."},
				},
			},
		},
	}
}

func buildExam(gen *idgen.Generator, rng *rand.Rand, def examDef) *model.Exam {
	now := time.Now().UTC()
	exam := &model.Exam{
		ID:              gen.NextID(idgen.KindExam),
		Title:           def.title,
		Description:     def.description,
		Subject:         def.subject,
		ExamCode:        def.code,
		Status:          model.ExamStatusActive,
		DurationMinutes: def.duration,
		CreatedAt:       now,
	}

	for si, ss := range def.sections {
		sec := model.Section{
			ID:          gen.NextID(idgen.KindSection),
			Title:       ss.title,
			Description: ss.description,
			Order:       si,
		}
		for qi, qs := range ss.questions {
			q := model.Question{
				ID:           gen.NextID(idgen.KindQuestion),
				ExamID:       exam.ID,
				SectionID:    sec.ID,
				QuestionCode: qs.code,
				PromptText:   qs.prompt,
				ModelAnswer:  qs.answer,
				MaxScore:     ss.maxScore,
				Order:        qi,
			}
			q.Answers = buildAnswers(gen, rng, exam.ID, &q, now)
			sec.Questions = append(sec.Questions, q)
		}
		exam.Sections = append(exam.Sections, sec)
	}
	return exam
}

// buildAnswers creates one submission per demo student. Roughly 60% come
// pre-graded with a teacher score inside [0, MaxScore].
func buildAnswers(gen *idgen.Generator, rng *rand.Rand, examID string, q *model.Question, now time.Time) []model.Answer {
	answers := make([]model.Answer, 0, len(demoStudents))
	for i, studentID := range demoStudents {
		a := model.Answer{
			ID:         gen.NextID(idgen.KindAnswer),
			ExamID:     examID,
			QuestionID: q.ID,
			StudentID:  studentID,
			AnswerText: fmt.Sprintf("Handwritten response from %s for %s.", studentID, q.QuestionCode),
			AnswerImages: []string{
				fmt.Sprintf("/uploads/%s/%s/page-1.jpg", studentID, q.QuestionCode),
				fmt.Sprintf("/uploads/%s/%s/page-2.jpg", studentID, q.QuestionCode),
			},
			CreatedAt: now.Add(-time.Duration(len(demoStudents)-i) * time.Minute),
		}
		if rng.Float64() < gradedRatio {
			score := rng.Intn(q.MaxScore + 1)
			gradedAt := now.Add(-time.Duration(i) * time.Minute)
			a.Score = &score
			a.ScoreGivenBy = model.ScoreSourceTeacher
			a.Feedback = feedbackForScore(score, q.MaxScore)
			a.GradedAt = &gradedAt
		}
		answers = append(answers, a)
	}
	return answers
}

func feedbackForScore(score, maxScore int) string {
	switch {
	case float64(score) >= 0.8*float64(maxScore):
		return "Well structured answer with correct reasoning throughout."
	case float64(score) >= 0.6*float64(maxScore):
		return "Mostly correct, but a key step needs more justification."
	default:
		return "Revisit the underlying concept and show the intermediate steps."
	}
}
