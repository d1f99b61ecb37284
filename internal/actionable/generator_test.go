package actionable

import (
	"strings"
	"testing"

	"vocab-annotator-go/internal/aggregator"
	"vocab-annotator-go/internal/types"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		ins  aggregator.Insight
		want string
	}{
		{"all failed", aggregator.Insight{Jobs: 2, FailedJobs: 2}, "No transcript"},
		{"terms", aggregator.Insight{Jobs: 1, TopTerms: []string{"ephemeral", "axiom"}}, "ephemeral, axiom"},
		{"entities only", aggregator.Insight{Jobs: 1, EntityTypeCounts: map[types.EntityType]int{types.EntityPerson: 3, types.EntityEvent: 1}}, "person references (3 mentions)"},
		{"nothing", aggregator.Insight{Jobs: 1}, "No difficult words"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := Generate(tt.ins)
			if !strings.Contains(card.Insight, tt.want) {
				t.Errorf("insight = %q, want it to contain %q", card.Insight, tt.want)
			}
			if card.Action == "" || card.Impact == "" {
				t.Errorf("incomplete card: %+v", card)
			}
		})
	}
}
