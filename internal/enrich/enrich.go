package enrich

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"vocab-annotator-go/internal/extractor"
	"vocab-annotator-go/internal/logger"
	"vocab-annotator-go/internal/search"
	"vocab-annotator-go/internal/types"
)

// DefaultConcurrency matches the entity cap so one request never queues searches.
const DefaultConcurrency = extractor.MaxEntities

const noSummary = "No summary available."

// Enricher attaches a search summary to each detected entity.
type Enricher struct {
	searcher    search.Searcher
	concurrency int
}

func New(s search.Searcher, concurrency int) *Enricher {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Enricher{searcher: s, concurrency: concurrency}
}

// Enrich looks every named entity up concurrently and returns them in input
// order. A failed lookup keeps the entity with a placeholder summary.
func (e *Enricher) Enrich(ctx context.Context, items []extractor.EntityItem) []types.ContextEntity {
	log := logger.New().Component("enrich")

	named := make([]extractor.EntityItem, 0, len(items))
	for _, it := range items {
		if it.Entity != "" {
			named = append(named, it)
		}
	}
	out := make([]types.ContextEntity, len(named))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, it := range named {
		i, it := i, it
		g.Go(func() error {
			out[i] = types.ContextEntity{
				Entity:    it.Entity,
				Type:      it.Type,
				Timestamp: types.RoundTimestamp(it.Timestamp),
				Summary:   e.summarize(ctx, it.Entity),
			}
			return nil
		})
	}
	_ = g.Wait()

	log.WithField("entities", len(out)).Debug("enrichment finished")
	return out
}

func (e *Enricher) summarize(ctx context.Context, entity string) string {
	if e.searcher == nil {
		return placeholder(fmt.Errorf("search is not configured"))
	}
	ans, err := e.searcher.Search(ctx, entity, 1)
	if err != nil {
		logger.New().Component("enrich").WithField("entity", entity).WithField("error", err.Error()).Warn("entity lookup failed")
		return placeholder(err)
	}
	if !ans.Found || ans.Summary == "" {
		return noSummary
	}
	return ans.Summary
}

func placeholder(err error) string {
	return fmt.Sprintf("Summary unavailable: %v", err)
}
