package types

// Job is one batch request: annotate Window of VideoID.
type Job struct {
	ID      string     `json:"id"`
	VideoID string     `json:"video_id"`
	Window  TimeWindow `json:"window"`
}

// JobResult is the outcome of a Job. Error is set when the pipeline could not run.
type JobResult struct {
	Job        Job            `json:"job"`
	Result     PipelineResult `json:"result"`
	DurationMs int64          `json:"duration_ms"`
	Error      string         `json:"error,omitempty"`
}
