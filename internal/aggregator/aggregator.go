package aggregator

import (
	"sort"
	"strings"

	"vocab-annotator-go/internal/types"
)

type Insight struct {
	Jobs             int                      `json:"jobs"`
	FailedJobs       int                      `json:"failed_jobs"`
	TermCounts       map[string]int           `json:"term_counts"`
	EntityTypeCounts map[types.EntityType]int `json:"entity_type_counts"`
	TopTerms         []string                 `json:"top_terms"`
}

// TopN is how many terms Insight.TopTerms keeps.
const TopN = 5

func Aggregate(results []types.JobResult) Insight {
	terms := map[string]int{}
	kinds := map[types.EntityType]int{}
	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
			continue
		}
		for _, v := range r.Result.VocabExplanations {
			terms[strings.ToLower(v.Term)]++
		}
		for _, e := range r.Result.ContextEntities {
			kinds[e.Type]++
		}
	}

	top := make([]string, 0, len(terms))
	for t := range terms {
		top = append(top, t)
	}
	sort.Slice(top, func(i, j int) bool {
		if terms[top[i]] != terms[top[j]] {
			return terms[top[i]] > terms[top[j]]
		}
		return top[i] < top[j]
	})
	if len(top) > TopN {
		top = top[:TopN]
	}

	return Insight{
		Jobs:             len(results),
		FailedJobs:       failed,
		TermCounts:       terms,
		EntityTypeCounts: kinds,
		TopTerms:         top,
	}
}
