// internal/processor/processor.go
package processor

import (
	"context"
	"time"

	"vocab-annotator-go/internal/logger"
	"vocab-annotator-go/internal/types"
)

// VideoRunner annotates one window of one video.
type VideoRunner interface {
	RunVideo(ctx context.Context, videoID string, w types.TimeWindow) (types.PipelineResult, error)
}

// ProcessJob runs a single job under its own timeout and records the
// outcome instead of returning an error.
func ProcessJob(ctx context.Context, r VideoRunner, job types.Job, timeout time.Duration) types.JobResult {
	log := logger.New().Component("processor").WithField("job_id", job.ID).WithField("video_id", job.VideoID)
	start := time.Now()
	res := types.JobResult{Job: job}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out, err := r.RunVideo(ctx, job.VideoID, job.Window)
	res.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		log.WithField("error", err.Error()).Warn("job failed")
		res.Error = err.Error()
		res.Result = types.PipelineResult{VocabExplanations: []types.VocabAnnotation{}, ContextEntities: []types.ContextEntity{}}
		return res
	}
	res.Result = out
	log.WithField("duration_ms", res.DurationMs).Info("job finished")
	return res
}

// ProcessBatch runs jobs one after another, stopping early only when ctx is done.
func ProcessBatch(ctx context.Context, r VideoRunner, jobs []types.Job, timeout time.Duration) []types.JobResult {
	out := make([]types.JobResult, 0, len(jobs))
	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		out = append(out, ProcessJob(ctx, r, job, timeout))
	}
	return out
}

// Chunked splits span of one video into consecutive jobs of the given
// window size, the first starting at span.Start.
func Chunked(videoID string, span types.TimeWindow, size float64) []types.Job {
	var jobs []types.Job
	for _, w := range types.ChunkWindows(span.End-span.Start, size) {
		w = types.TimeWindow{Start: w.Start + span.Start, End: w.End + span.Start}
		jobs = append(jobs, types.Job{ID: chunkID(videoID, w), VideoID: videoID, Window: w})
	}
	return jobs
}

func chunkID(videoID string, w types.TimeWindow) string {
	return videoID + "@" + time.Duration(w.Start*float64(time.Second)).String()
}
