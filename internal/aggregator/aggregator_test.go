package aggregator

import (
	"reflect"
	"testing"

	"vocab-annotator-go/internal/types"
)

func vocab(terms ...string) []types.VocabAnnotation {
	var out []types.VocabAnnotation
	for _, t := range terms {
		out = append(out, types.VocabAnnotation{Term: t})
	}
	return out
}

func TestAggregate(t *testing.T) {
	results := []types.JobResult{
		{Result: types.PipelineResult{
			VocabExplanations: vocab("Ephemeral", "ubiquitous"),
			ContextEntities:   []types.ContextEntity{{Entity: "Apple", Type: types.EntityOrganization}},
		}},
		{Result: types.PipelineResult{
			VocabExplanations: vocab("ephemeral", "zenith", "axiom", "banal", "candid", "dogma"),
			ContextEntities:   []types.ContextEntity{{Entity: "Jobs", Type: types.EntityPerson}, {Entity: "IBM", Type: types.EntityOrganization}},
		}},
		{Error: "video is unavailable or does not exist"},
	}

	ins := Aggregate(results)
	if ins.Jobs != 3 || ins.FailedJobs != 1 {
		t.Errorf("jobs = %d failed = %d", ins.Jobs, ins.FailedJobs)
	}
	if ins.TermCounts["ephemeral"] != 2 {
		t.Errorf("term counts = %v", ins.TermCounts)
	}
	if ins.EntityTypeCounts[types.EntityOrganization] != 2 || ins.EntityTypeCounts[types.EntityPerson] != 1 {
		t.Errorf("entity counts = %v", ins.EntityTypeCounts)
	}
	want := []string{"ephemeral", "axiom", "banal", "candid", "dogma"}
	if !reflect.DeepEqual(ins.TopTerms, want) {
		t.Errorf("top terms = %v, want %v", ins.TopTerms, want)
	}
}

func TestAggregateEmpty(t *testing.T) {
	ins := Aggregate(nil)
	if ins.Jobs != 0 || len(ins.TopTerms) != 0 || ins.TermCounts == nil {
		t.Errorf("insight = %+v", ins)
	}
}
