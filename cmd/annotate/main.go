package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"time"

	"vocab-annotator-go/internal/actionable"
	"vocab-annotator-go/internal/aggregator"
	"vocab-annotator-go/internal/app"
	"vocab-annotator-go/internal/config"
	"vocab-annotator-go/internal/dataset"
	"vocab-annotator-go/internal/logger"
	"vocab-annotator-go/internal/processor"
	"vocab-annotator-go/internal/types"
)

func main() {
	var (
		jobsPath = flag.String("jobs", "", "xlsx workbook of video_id,start,end rows (defaults to DATASET_PATH)")
		video    = flag.String("video", "", "single video id or URL; overrides -jobs")
		start    = flag.Float64("start", 0, "window start in seconds (with -video)")
		end      = flag.Float64("end", 0, "window end in seconds (with -video)")
		chunk    = flag.Float64("chunk", 0, "split [start,end) into windows of this many seconds (with -video)")
		out      = flag.String("out", "", "write results to this xlsx workbook")
		timeout  = flag.Duration("timeout", 90*time.Second, "per-job timeout")
	)
	flag.Parse()

	cfg := config.Load()
	log := logger.New()
	l := log.Component("annotate")

	runner, err := app.BuildRunner(cfg, log)
	if err != nil {
		l.WithError(err).Fatal("failed to build pipeline")
	}

	var jobs []types.Job
	switch {
	case *video != "" && *chunk > 0:
		span := types.TimeWindow{Start: *start, End: *end}
		if err := span.Validate(); err != nil {
			l.WithError(err).Fatal("invalid window")
		}
		jobs = processor.Chunked(dataset.VideoID(*video), span, *chunk)
	case *video != "":
		w := types.TimeWindow{Start: *start, End: *end}
		if err := w.Validate(); err != nil {
			l.WithError(err).Fatal("invalid window")
		}
		jobs = []types.Job{{ID: "cli", VideoID: dataset.VideoID(*video), Window: w}}
	default:
		path := *jobsPath
		if path == "" {
			path = cfg.DatasetPath
		}
		jobs, err = dataset.LoadJobs(path)
		if err != nil {
			l.WithError(err).Fatal("failed to load jobs")
		}
	}
	if len(jobs) == 0 {
		l.Fatal("nothing to annotate")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	results := processor.ProcessBatch(ctx, runner, jobs, *timeout)
	ins := aggregator.Aggregate(results)
	card := actionable.Generate(ins)
	l.WithField("jobs", ins.Jobs).WithField("failed", ins.FailedJobs).Info(card.Insight)

	if *out != "" {
		if err := dataset.WriteResults(*out, results); err != nil {
			l.WithError(err).Fatal("failed to export results")
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		l.WithError(err).Error("failed to write results")
	}
}
