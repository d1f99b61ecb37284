package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"vocab-annotator-go/internal/llm"
	"vocab-annotator-go/internal/logger"
	"vocab-annotator-go/internal/types"
)

// MaxEntities caps the entities kept from one extraction.
const MaxEntities = 5

// EntityItem is a detected entity with the model's own timestamp estimate.
type EntityItem struct {
	Entity    string
	Type      types.EntityType
	Timestamp float64
}

type contextResponse struct {
	ContextEntities []struct {
		Entity    string          `json:"entity"`
		Type      string          `json:"type"`
		Timestamp json.RawMessage `json:"timestamp"`
	} `json:"context_entities"`
}

type ContextExtractor struct {
	client llm.Client
}

func NewContextExtractor(c llm.Client) *ContextExtractor {
	return &ContextExtractor{client: c}
}

// Extract asks the model for up to MaxEntities named entities in text.
// The window is passed to the model so it can place its estimates.
func (e *ContextExtractor) Extract(ctx context.Context, text string, w types.TimeWindow) Result[EntityItem] {
	log := logger.New().Component("extractor-context")

	if e.client == nil {
		return failed[EntityItem](StageContext, llm.ErrModelUnavailable)
	}
	raw, err := e.client.CompleteJSON(ctx, contextSystemPrompt, contextUserPrompt(text, w))
	if err != nil {
		log.WithField("error", err.Error()).Warn("context extraction failed")
		return failed[EntityItem](StageContext, err)
	}

	var resp contextResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		log.WithField("error", err.Error()).Warn("context response did not match schema")
		return failed[EntityItem](StageContext, fmt.Errorf("%w: %v", llm.ErrMalformedResponse, err))
	}

	items := make([]EntityItem, 0, min(len(resp.ContextEntities), MaxEntities))
	for _, x := range resp.ContextEntities {
		name := strings.TrimSpace(x.Entity)
		if name == "" {
			continue
		}
		items = append(items, EntityItem{
			Entity:    name,
			Type:      types.ParseEntityType(x.Type),
			Timestamp: estimate(x.Timestamp, w),
		})
		if len(items) == MaxEntities {
			break
		}
	}
	log.WithField("entities", len(items)).Debug("context entities extracted")
	return succeeded(items)
}

// estimate decodes the model's timestamp, falling back to the window start
// when it is missing or unreadable.
func estimate(raw json.RawMessage, w types.TimeWindow) float64 {
	if len(raw) == 0 {
		return w.Start
	}
	var s types.Seconds
	if err := json.Unmarshal(raw, &s); err != nil {
		return w.Start
	}
	return float64(s)
}
