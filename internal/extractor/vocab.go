package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"vocab-annotator-go/internal/llm"
	"vocab-annotator-go/internal/logger"
	"vocab-annotator-go/internal/types"
)

// MaxSynonyms caps the synonyms kept per term.
const MaxSynonyms = 4

// VocabItem is an extracted term before it is aligned to a timestamp.
type VocabItem struct {
	Term        string
	Normalized  string
	Explanation string
	Synonyms    []string
}

type vocabResponse struct {
	Explanations []struct {
		Term        string           `json:"term"`
		Explanation string           `json:"explanation"`
		Synonyms    types.StringList `json:"synonyms"`
	} `json:"explanations"`
}

type VocabExtractor struct {
	client llm.Client
}

func NewVocabExtractor(c llm.Client) *VocabExtractor {
	return &VocabExtractor{client: c}
}

// Extract asks the model for difficult words in text. Any model or decoding
// failure yields an empty result carrying a StageFailure.
func (e *VocabExtractor) Extract(ctx context.Context, text string) Result[VocabItem] {
	log := logger.New().Component("extractor-vocab")

	if e.client == nil {
		return failed[VocabItem](StageVocabulary, llm.ErrModelUnavailable)
	}
	raw, err := e.client.CompleteJSON(ctx, vocabSystemPrompt, vocabUserPrompt(text))
	if err != nil {
		log.WithField("error", err.Error()).Warn("vocabulary extraction failed")
		return failed[VocabItem](StageVocabulary, err)
	}

	var resp vocabResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		log.WithField("error", err.Error()).Warn("vocabulary response did not match schema")
		return failed[VocabItem](StageVocabulary, fmt.Errorf("%w: %v", llm.ErrMalformedResponse, err))
	}

	items := make([]VocabItem, 0, len(resp.Explanations))
	for _, x := range resp.Explanations {
		norm := strings.ToLower(strings.TrimSpace(x.Term))
		if norm == "" {
			continue
		}
		items = append(items, VocabItem{
			Term:        strings.TrimSpace(x.Term),
			Normalized:  norm,
			Explanation: strings.TrimSpace(x.Explanation),
			Synonyms:    cleanSynonyms(x.Synonyms),
		})
	}
	log.WithField("terms", len(items)).Debug("vocabulary extracted")
	return succeeded(items)
}

func cleanSynonyms(in []string) []string {
	out := make([]string, 0, min(len(in), MaxSynonyms))
	for _, s := range in {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == MaxSynonyms {
			break
		}
	}
	return out
}

// IsMalformed reports whether a stage failed because the model's output was unusable.
func IsMalformed(f *StageFailure) bool {
	return f != nil && errors.Is(f, llm.ErrMalformedResponse)
}
