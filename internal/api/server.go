package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"vocab-annotator-go/internal/actionable"
	"vocab-annotator-go/internal/aggregator"
	"vocab-annotator-go/internal/dataset"
	"vocab-annotator-go/internal/logger"
	"vocab-annotator-go/internal/pipeline"
	"vocab-annotator-go/internal/processor"
	"vocab-annotator-go/internal/transcript"
	"vocab-annotator-go/internal/types"
)

type Options struct {
	// LLMConfigured is false when the backend has no model credentials.
	LLMConfigured bool
	DatasetPath   string
	DemoLimit     int
	JobTimeout    time.Duration
}

type Server struct {
	runner *pipeline.Runner
	opts   Options
	log    *logger.Logger
}

func NewServer(r *pipeline.Runner, opts Options, log *logger.Logger) *Server {
	if opts.DemoLimit <= 0 {
		opts.DemoLimit = 5
	}
	if opts.JobTimeout <= 0 {
		opts.JobTimeout = 60 * time.Second
	}
	return &Server{runner: r, opts: opts, log: log}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.health)
	mux.HandleFunc("/health", s.health)
	mux.HandleFunc("/explain", s.explain)
	mux.HandleFunc("/demo", s.demo)
	return s.cors(mux)
}

// cors allows the browser extension to call the API from any page.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, "+logger.RequestIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.log.WithRequest(r).Debug("health check")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Server is running"})
}

type explainRequest struct {
	YoutubeID string                    `json:"youtube_id"`
	StartTime json.RawMessage           `json:"start_time"`
	EndTime   json.RawMessage           `json:"end_time"`
	Segments  []types.TranscriptSegment `json:"segments,omitempty"`
}

func (s *Server) explain(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "explain")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req explainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		reqLog.WithField("error", err.Error()).Warn("bad request body")
		writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}
	req.YoutubeID = strings.TrimSpace(req.YoutubeID)
	if req.YoutubeID == "" && len(req.Segments) == 0 {
		writeError(w, http.StatusBadRequest, "No 'youtube_id' provided")
		return
	}
	if isMissing(req.StartTime) || isMissing(req.EndTime) {
		writeError(w, http.StatusBadRequest, "Missing start_time or end_time")
		return
	}
	var start, end types.Seconds
	if json.Unmarshal(req.StartTime, &start) != nil || json.Unmarshal(req.EndTime, &end) != nil {
		writeError(w, http.StatusBadRequest, "'start_time' and 'end_time' must be numbers")
		return
	}
	window := types.TimeWindow{Start: float64(start), End: float64(end)}
	if err := window.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.opts.LLMConfigured {
		reqLog.Error("GROQ_API_KEY not set")
		writeError(w, http.StatusInternalServerError, "Backend missing GROQ_API_KEY")
		return
	}

	reqLog = reqLog.WithFields(logrus.Fields{"video_id": req.YoutubeID, "start": window.Start, "end": window.End})
	reqLog.Info("explain request received")

	began := time.Now()
	var res types.PipelineResult
	var err error
	if len(req.Segments) > 0 {
		res, err = s.runner.Run(r.Context(), req.Segments, window)
	} else {
		res, err = s.runner.RunVideo(r.Context(), req.YoutubeID, window)
	}
	if err != nil {
		status, msg := errorStatus(err)
		reqLog.WithField("error", err.Error()).WithField("status", status).Warn("explain request rejected")
		writeError(w, status, msg)
		return
	}

	reqLog.WithFields(logrus.Fields{
		"vocab":       len(res.VocabExplanations),
		"entities":    len(res.ContextEntities),
		"duration_ms": time.Since(began).Milliseconds(),
	}).Info("explain request finished")
	writeJSON(w, http.StatusOK, res)
}

// errorStatus separates "no usable input" conditions from server faults.
func errorStatus(err error) (int, string) {
	if errors.Is(err, transcript.ErrEmptyWindow) {
		return http.StatusNotFound, "No transcript found in specified range."
	}
	if fe, ok := transcript.AsFetchError(err); ok {
		switch fe.Kind {
		case transcript.KindDisabled:
			return http.StatusForbidden, "Transcripts are disabled for this video."
		case transcript.KindNoTranscript:
			return http.StatusNotFound, "No transcript available for this video."
		case transcript.KindVideoUnavailable:
			return http.StatusNotFound, "Video is unavailable or does not exist."
		}
		return http.StatusInternalServerError, "Error fetching transcript: " + fe.Message
	}
	return http.StatusInternalServerError, err.Error()
}

type demoResponse struct {
	Results []types.JobResult    `json:"results"`
	Insight aggregator.Insight   `json:"insight"`
	Card    actionable.StudyCard `json:"card"`
}

// demo processes the first few jobs of the configured batch workbook.
func (s *Server) demo(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "demo")
	reqLog.Info("demo invoked")

	jobs, err := dataset.LoadJobs(s.opts.DatasetPath)
	if err != nil {
		reqLog.WithField("error", err.Error()).Error("dataset load error")
		writeError(w, http.StatusInternalServerError, "dataset load error")
		return
	}
	if len(jobs) > s.opts.DemoLimit {
		jobs = jobs[:s.opts.DemoLimit]
	}
	results := processor.ProcessBatch(r.Context(), s.runner, jobs, s.opts.JobTimeout)
	ins := aggregator.Aggregate(results)
	writeJSON(w, http.StatusOK, demoResponse{Results: results, Insight: ins, Card: actionable.Generate(ins)})
}

func isMissing(raw json.RawMessage) bool {
	t := strings.TrimSpace(string(raw))
	return t == "" || t == "null"
}

// writeJSON encodes v before committing the status so an unencodable value
// becomes a 500 instead of an empty body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		status = http.StatusInternalServerError
		b, _ = json.Marshal(map[string]string{"error": "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
