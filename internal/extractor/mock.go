package extractor

import (
	"context"

	"vocab-annotator-go/internal/llm"
)

// MockLLM answers both extraction prompts with fixed JSON for offline demos.
// The canned terms line up with transcript.NewMockFetcher.
func MockLLM() llm.Client {
	return llm.ClientFunc(func(_ context.Context, system, _ string) (string, error) {
		if system == contextSystemPrompt {
			return `{"context_entities":[
				{"entity":"Steve Jobs","type":"person","timestamp":7.3},
				{"entity":"Apple","type":"organization","timestamp":8.1},
				{"entity":"Minimalism","type":"concept","timestamp":11.7}
			]}`, nil
		}
		return `{"explanations":[
			{"term":"ephemeral","explanation":"Lasting for a very short time; fleeting and quickly gone, often used for trends, feelings, or moments that do not endure.","synonyms":["brief","short-lived","fleeting"]},
			{"term":"ubiquitous","explanation":"Present, appearing, or found everywhere at the same time, so common that it seems to be in every place.","synonyms":["everywhere","pervasive","universal"]},
			{"term":"dogmatic","explanation":"Inclined to lay down principles as undeniably true without considering evidence or the opinions of others.","synonyms":["rigid","opinionated","inflexible"]}
		]}`, nil
	})
}
