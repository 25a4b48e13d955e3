package scoring

import "testing"

func TestSuggestFloor(t *testing.T) {
	tests := []struct {
		maxScore int
		want     int
	}{
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{5, 2},
		{8, 3},
		{10, 3},
	}

	for _, tt := range tests {
		if got := SuggestFloor(tt.maxScore); got != tt.want {
			t.Errorf("SuggestFloor(%d) = %d, want %d", tt.maxScore, got, tt.want)
		}
	}
}

// Over many draws every suggestion for an 8-point question must land in
// [3, 8], and both endpoints should actually occur.
func TestSuggestBounds(t *testing.T) {
	e := NewEngine(1)
	seen := make(map[int]bool)

	for i := 0; i < 1000; i++ {
		s := e.Suggest(8)
		if s.Score < 3 || s.Score > 8 {
			t.Fatalf("Suggest(8) drew %d, want within [3, 8]", s.Score)
		}
		if s.Feedback == "" {
			t.Fatal("Suggest(8) returned empty feedback")
		}
		seen[s.Score] = true
	}

	if !seen[3] || !seen[8] {
		t.Errorf("1000 draws never hit an endpoint: seen = %v", seen)
	}
}

func TestSuggestTinyMaxScore(t *testing.T) {
	e := NewEngine(2)
	for i := 0; i < 200; i++ {
		s := e.Suggest(2)
		if s.Score < 1 || s.Score > 2 {
			t.Fatalf("Suggest(2) drew %d, want within [1, 2]", s.Score)
		}
	}
}

func TestFeedbackThresholds(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		maxScore int
		want     string
	}{
		{"exactly 80 percent", 8, 10, feedbackExcellent},
		{"above 80 percent", 9, 10, feedbackExcellent},
		{"exactly 60 percent", 6, 10, feedbackGood},
		{"between 60 and 80", 7, 10, feedbackGood},
		{"below 60 percent", 5, 10, feedbackBasic},
		{"small max excellent", 2, 2, feedbackExcellent},
		{"small max basic", 1, 2, feedbackBasic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := feedbackFor(tt.score, tt.maxScore); got != tt.want {
				t.Errorf("feedbackFor(%d, %d) = %q, want %q", tt.score, tt.maxScore, got, tt.want)
			}
		})
	}
}

// Two engines with the same seed must produce the same sequence.
func TestSuggestDeterministicWithSeed(t *testing.T) {
	a := NewEngine(99)
	b := NewEngine(99)
	for i := 0; i < 50; i++ {
		sa, sb := a.Suggest(8), b.Suggest(8)
		if sa != sb {
			t.Fatalf("draw %d diverged: %v vs %v", i, sa, sb)
		}
	}
}
