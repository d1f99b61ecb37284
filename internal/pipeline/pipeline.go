// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"vocab-annotator-go/internal/enrich"
	"vocab-annotator-go/internal/extractor"
	"vocab-annotator-go/internal/logger"
	"vocab-annotator-go/internal/transcript"
	"vocab-annotator-go/internal/types"
)

// Pipeline turns a transcript window into vocabulary and context annotations.
// It holds only read-only collaborators and is safe for concurrent use.
type Pipeline struct {
	vocab    *extractor.VocabExtractor
	context  *extractor.ContextExtractor
	enricher *enrich.Enricher
}

func New(vocab *extractor.VocabExtractor, ctxExtractor *extractor.ContextExtractor, enricher *enrich.Enricher) *Pipeline {
	return &Pipeline{vocab: vocab, context: ctxExtractor, enricher: enricher}
}

// Run filters segments to w and processes the excerpt. The only errors are
// transcript.ErrEmptyWindow, returned before any model call.
func (p *Pipeline) Run(ctx context.Context, segments []types.TranscriptSegment, w types.TimeWindow) (types.PipelineResult, error) {
	text, filtered, err := transcript.Filter(segments, w)
	if err != nil {
		return types.PipelineResult{}, err
	}
	return p.Process(ctx, text, filtered, w), nil
}

// Process runs the vocabulary group and the context group side by side and
// assembles whatever each produced. Stage failures are logged, never returned.
func (p *Pipeline) Process(ctx context.Context, text string, segments []types.TranscriptSegment, w types.TimeWindow) types.PipelineResult {
	log := logger.New().Component("pipeline").WithField("window", fmt.Sprintf("%.2f-%.2f", w.Start, w.End))
	start := time.Now()

	var vocab []types.VocabAnnotation
	var entities []types.ContextEntity

	var g errgroup.Group
	g.Go(func() error {
		res := p.vocab.Extract(ctx, text)
		if res.Failed() {
			log.WithField("error", res.Failure.Error()).WithField("malformed", extractor.IsMalformed(res.Failure)).Warn("vocabulary stage degraded to empty")
		}
		vocab = Align(res.Items, segments)
		return nil
	})
	g.Go(func() error {
		res := p.context.Extract(ctx, text, w)
		if res.Failed() {
			log.WithField("error", res.Failure.Error()).WithField("malformed", extractor.IsMalformed(res.Failure)).Warn("context stage degraded to empty")
		}
		entities = p.enricher.Enrich(ctx, res.Items)
		return nil
	})
	_ = g.Wait()

	log.WithField("vocab", len(vocab)).
		WithField("entities", len(entities)).
		WithField("duration_ms", time.Since(start).Milliseconds()).
		Info("pipeline finished")

	return types.PipelineResult{VocabExplanations: vocab, ContextEntities: entities}
}

// Align anchors each extracted term to its first whole-token occurrence.
// Terms that never occur are dropped, as are repeats of an earlier term.
func Align(items []extractor.VocabItem, segments []types.TranscriptSegment) []types.VocabAnnotation {
	out := make([]types.VocabAnnotation, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if it.Normalized == "" || seen[it.Normalized] {
			continue
		}
		ts, ok := transcript.Align(it.Normalized, segments)
		if !ok {
			continue
		}
		seen[it.Normalized] = true
		out = append(out, types.VocabAnnotation{
			Term:        it.Term,
			Explanation: it.Explanation,
			Synonyms:    it.Synonyms,
			Timestamp:   types.RoundTimestamp(ts),
		})
	}
	return out
}

// Runner fetches a video's transcript before running the pipeline.
type Runner struct {
	*Pipeline
	fetcher transcript.Fetcher
}

func NewRunner(f transcript.Fetcher, p *Pipeline) *Runner {
	return &Runner{Pipeline: p, fetcher: f}
}

// RunVideo returns a *transcript.FetchError or transcript.ErrEmptyWindow when
// there is nothing to annotate; otherwise it always returns a result.
func (r *Runner) RunVideo(ctx context.Context, videoID string, w types.TimeWindow) (types.PipelineResult, error) {
	segments, err := r.fetcher.Fetch(ctx, videoID)
	if err != nil {
		if _, ok := transcript.AsFetchError(err); !ok {
			err = &transcript.FetchError{Kind: transcript.KindOther, VideoID: videoID, Message: err.Error()}
		}
		return types.PipelineResult{}, err
	}
	return r.Run(ctx, segments, w)
}
