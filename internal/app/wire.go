package app

import (
	"fmt"

	"vocab-annotator-go/internal/config"
	"vocab-annotator-go/internal/enrich"
	"vocab-annotator-go/internal/extractor"
	"vocab-annotator-go/internal/llm"
	"vocab-annotator-go/internal/logger"
	"vocab-annotator-go/internal/pipeline"
	"vocab-annotator-go/internal/search"
	"vocab-annotator-go/internal/transcript"
)

// BuildRunner constructs the capability clients once and wires them into a
// pipeline runner. Mock flags swap in offline stand-ins.
func BuildRunner(cfg config.Config, log *logger.Logger) (*pipeline.Runner, error) {
	var model llm.Client
	if cfg.MockLLM {
		log.Info("mock LLM mode ON - returning deterministic extractions")
		model = extractor.MockLLM()
	} else if cfg.LLMAPIKey != "" {
		c, err := llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:       cfg.LLMAPIKey,
			BaseURL:      cfg.LLMBaseURL,
			Model:        cfg.LLMModel,
			Timeout:      cfg.LLMTimeout,
			MaxRetryTime: cfg.LLMMaxRetry,
		})
		if err != nil {
			return nil, fmt.Errorf("llm client: %w", err)
		}
		model = c
	} else {
		log.Warn("GROQ_API_KEY not set; extraction stages will be empty")
	}

	var searcher search.Searcher
	if cfg.MockSearch {
		log.Info("mock search mode ON")
		searcher = search.MockSearcher{}
	} else {
		searcher = search.NewClient(cfg.SearchURL, cfg.SearchAPIKey, cfg.SearchTimeout)
	}

	var fetcher transcript.Fetcher
	if cfg.MockTranscript {
		log.Info("mock transcript mode ON")
		fetcher = transcript.NewMockFetcher()
	} else {
		fetcher = transcript.NewHTTPClient(cfg.TranscriptURL, cfg.TranscriptLanguage, cfg.TranscriptTimeout)
	}

	p := pipeline.New(
		extractor.NewVocabExtractor(model),
		extractor.NewContextExtractor(model),
		enrich.New(searcher, cfg.EnrichConcurrency),
	)
	return pipeline.NewRunner(fetcher, p), nil
}
