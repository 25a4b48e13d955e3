// Package policy maps sections to their score tier and per-question
// maximum score. The tier is never stored on the section: it is
// re-derivable at any time from the title text or, failing that, from the
// questions' numeric ceiling. The title wins when the two disagree.
package policy

import (
	"strings"

	"github.com/srichai/gradebench/internal/model"
)

// Tier is the A/B/C classification of a section.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
)

// Per-question maximum scores by tier. Tier C accepts both the current
// cap and the legacy cap used by exams created before the tier system.
const (
	MaxScoreTierA       = 2
	MaxScoreTierB       = 5
	MaxScoreTierC       = 8
	MaxScoreTierCLegacy = 10
)

// Classification is the result of classifying a section.
type Classification struct {
	Tier     Tier `json:"tier"`
	MaxScore int  `json:"max_score"`
}

// Classify determines a section's tier and max score. The title heuristic
// runs first; if the title carries no recognizable marker, the first
// question's stored max score is bucketed into the nearest tier
// breakpoint (≤2→A, ≤5→B, else C).
func Classify(section *model.Section) Classification {
	if c, ok := classifyTitle(section.Title); ok {
		return c
	}
	if len(section.Questions) > 0 {
		return classifyMaxScore(section.Questions[0].MaxScore)
	}
	return Classification{Tier: TierC, MaxScore: MaxScoreTierC}
}

// ValidTierCCap reports whether max is an accepted tier-C per-question cap.
func ValidTierCCap(max int) bool {
	return max == MaxScoreTierC || max == MaxScoreTierCLegacy
}

func classifyTitle(title string) (Classification, bool) {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "section a") || strings.Contains(t, "basic"):
		return Classification{Tier: TierA, MaxScore: MaxScoreTierA}, true
	case strings.Contains(t, "section b") || strings.Contains(t, "intermediate"):
		return Classification{Tier: TierB, MaxScore: MaxScoreTierB}, true
	case strings.Contains(t, "section c") || strings.Contains(t, "advanced"):
		return Classification{Tier: TierC, MaxScore: MaxScoreTierC}, true
	}
	return Classification{}, false
}

func classifyMaxScore(max int) Classification {
	switch {
	case max <= MaxScoreTierA:
		return Classification{Tier: TierA, MaxScore: MaxScoreTierA}
	case max <= MaxScoreTierB:
		return Classification{Tier: TierB, MaxScore: MaxScoreTierB}
	default:
		return Classification{Tier: TierC, MaxScore: MaxScoreTierC}
	}
}
