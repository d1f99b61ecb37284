package extractor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vocab-annotator-go/internal/llm"
	"vocab-annotator-go/internal/types"
)

func fixed(resp string, err error) llm.Client {
	return llm.ClientFunc(func(context.Context, string, string) (string, error) {
		return resp, err
	})
}

func TestVocabExtract(t *testing.T) {
	var gotSystem, gotUser string
	c := llm.ClientFunc(func(_ context.Context, system, user string) (string, error) {
		gotSystem, gotUser = system, user
		return `{"explanations":[
			{"term":"  Ephemeral ","explanation":"lasting a short time","synonyms":["brief","short-lived"]},
			{"term":"   ","explanation":"blank"},
			{"term":"ubiquitous","explanation":"everywhere","synonyms":["a","b","c","d","e"]},
			{"term":"terse","explanation":"brief","synonyms":null}
		]}`, nil
	})

	res := NewVocabExtractor(c).Extract(context.Background(), "the ephemeral thing")
	if res.Failed() {
		t.Fatalf("unexpected failure: %v", res.Failure)
	}
	if !strings.Contains(gotSystem, "lexicographer") || !strings.Contains(gotUser, "the ephemeral thing") {
		t.Errorf("prompt not built from transcript: %q / %q", gotSystem, gotUser)
	}
	if len(res.Items) != 3 {
		t.Fatalf("items = %+v", res.Items)
	}
	if res.Items[0].Normalized != "ephemeral" || res.Items[0].Term != "Ephemeral" {
		t.Errorf("first item = %+v", res.Items[0])
	}
	if len(res.Items[1].Synonyms) != MaxSynonyms {
		t.Errorf("synonyms not capped: %v", res.Items[1].Synonyms)
	}
	if res.Items[2].Synonyms == nil || len(res.Items[2].Synonyms) != 0 {
		t.Errorf("null synonyms should become empty list, got %#v", res.Items[2].Synonyms)
	}
}

func TestVocabExtractFailures(t *testing.T) {
	tests := []struct {
		name      string
		client    llm.Client
		malformed bool
	}{
		{"model error", fixed("", llm.ErrModelUnavailable), false},
		{"bad schema", fixed(`{"explanations":"nope"}`, nil), true},
		{"not json", fixed(`oops`, nil), true},
		{"no client", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewVocabExtractor(tt.client).Extract(context.Background(), "text")
			if !res.Failed() {
				t.Fatal("expected failure")
			}
			if res.Items == nil || len(res.Items) != 0 {
				t.Errorf("failed stage must yield an empty list, got %#v", res.Items)
			}
			if res.Failure.Stage != StageVocabulary {
				t.Errorf("stage = %s", res.Failure.Stage)
			}
			if IsMalformed(res.Failure) != tt.malformed {
				t.Errorf("IsMalformed = %v, want %v", IsMalformed(res.Failure), tt.malformed)
			}
		})
	}
}

func TestVocabExtractEmptyList(t *testing.T) {
	res := NewVocabExtractor(fixed(`{"explanations":[]}`, nil)).Extract(context.Background(), "hi")
	if res.Failed() || len(res.Items) != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestContextExtract(t *testing.T) {
	var gotUser string
	c := llm.ClientFunc(func(_ context.Context, system, user string) (string, error) {
		if system != contextSystemPrompt {
			t.Error("context extractor used the wrong instruction set")
		}
		gotUser = user
		return `{"context_entities":[
			{"entity":"Steve Jobs","type":"Person","timestamp":7.3},
			{"entity":"","type":"event","timestamp":1},
			{"entity":"Apple","type":"company","timestamp":"0:08"},
			{"entity":"WWDC","type":"event"},
			{"entity":"Minimalism","type":"concept","timestamp":"later"},
			{"entity":"E5","type":"concept","timestamp":1},
			{"entity":"E6","type":"concept","timestamp":1},
			{"entity":"E7","type":"concept","timestamp":1}
		]}`, nil
	})

	w := types.TimeWindow{Start: 5, End: 20}
	res := NewContextExtractor(c).Extract(context.Background(), "text", w)
	if res.Failed() {
		t.Fatalf("unexpected failure: %v", res.Failure)
	}
	if !strings.Contains(gotUser, "5.00 to 20.00") {
		t.Errorf("window missing from prompt: %q", gotUser)
	}
	if len(res.Items) != MaxEntities {
		t.Fatalf("got %d items, want %d", len(res.Items), MaxEntities)
	}
	want := []EntityItem{
		{"Steve Jobs", types.EntityPerson, 7.3},
		{"Apple", types.EntityUnknown, 8},
		{"WWDC", types.EntityEvent, 5},
		{"Minimalism", types.EntityConcept, 5},
		{"E5", types.EntityConcept, 1},
	}
	for i, w := range want {
		if res.Items[i] != w {
			t.Errorf("item %d = %+v, want %+v", i, res.Items[i], w)
		}
	}
}

func TestContextExtractFailureIsIndependent(t *testing.T) {
	res := NewContextExtractor(fixed("", errors.New("timeout"))).Extract(context.Background(), "t", types.TimeWindow{End: 1})
	if !res.Failed() || res.Failure.Stage != StageContext || len(res.Items) != 0 {
		t.Errorf("result = %+v", res)
	}
	if !strings.Contains(res.Failure.Error(), "context extraction failed: timeout") {
		t.Errorf("error = %q", res.Failure.Error())
	}
}

func TestMockLLMServesBothStages(t *testing.T) {
	m := MockLLM()
	v := NewVocabExtractor(m).Extract(context.Background(), "x")
	c := NewContextExtractor(m).Extract(context.Background(), "x", types.TimeWindow{End: 10})
	if v.Failed() || len(v.Items) == 0 {
		t.Errorf("vocab = %+v", v)
	}
	if c.Failed() || len(c.Items) == 0 {
		t.Errorf("context = %+v", c)
	}
}

func TestContextExtractNonFiniteTimestampFallsBack(t *testing.T) {
	c := fixed(`{"context_entities":[
		{"entity":"Apple","type":"organization","timestamp":"NaN"},
		{"entity":"IBM","type":"organization","timestamp":"Infinity"}
	]}`, nil)
	w := types.TimeWindow{Start: 42, End: 60}
	res := NewContextExtractor(c).Extract(context.Background(), "text", w)
	if res.Failed() || len(res.Items) != 2 {
		t.Fatalf("result = %+v", res)
	}
	for _, it := range res.Items {
		if it.Timestamp != w.Start {
			t.Errorf("%s timestamp = %v, want window start %v", it.Entity, it.Timestamp, w.Start)
		}
	}
}
