package actionable

import (
	"fmt"
	"strings"

	"vocab-annotator-go/internal/aggregator"
	"vocab-annotator-go/internal/types"
)

// StudyCard is a one-line recommendation derived from a batch's annotations.
type StudyCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

func Generate(ins aggregator.Insight) StudyCard {
	if ins.Jobs > 0 && ins.FailedJobs == ins.Jobs {
		return StudyCard{
			Insight: "No transcript could be annotated",
			Action:  "Check that the videos exist and have English captions enabled",
			Impact:  "Nothing to review yet",
		}
	}
	if len(ins.TopTerms) > 0 {
		return StudyCard{
			Insight: fmt.Sprintf("Most frequent difficult words: %s", strings.Join(ins.TopTerms, ", ")),
			Action:  "Review these terms before watching; they recur across the batch",
			Impact:  "Fewer pauses while watching",
		}
	}
	if dominant, n := dominantType(ins.EntityTypeCounts); n > 0 {
		return StudyCard{
			Insight: fmt.Sprintf("Content centers on %s references (%d mentions)", dominant, n),
			Action:  "Skim the entity summaries for background before watching",
			Impact:  "Better context for the discussion",
		}
	}
	return StudyCard{
		Insight: "No difficult words or notable references detected",
		Action:  "No preparation needed",
		Impact:  "Low",
	}
}

func dominantType(counts map[types.EntityType]int) (types.EntityType, int) {
	var best types.EntityType
	n := 0
	for t, c := range counts {
		if c > n || (c == n && t < best) {
			best, n = t, c
		}
	}
	return best, n
}
