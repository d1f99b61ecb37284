package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	LLMAPIKey   string
	LLMBaseURL  string
	LLMModel    string
	LLMTimeout  time.Duration
	LLMMaxRetry time.Duration

	SearchURL     string
	SearchAPIKey  string
	SearchTimeout time.Duration

	TranscriptURL      string
	TranscriptLanguage string
	TranscriptTimeout  time.Duration

	EnrichConcurrency int
	DatasetPath       string
	DemoLimit         int

	MockLLM        bool
	MockSearch     bool
	MockTranscript bool
}

// Load reads .env files (when present) and then the process environment.
func Load(files ...string) Config {
	_ = godotenv.Load(files...) // loads .env

	return Config{
		Port:        envOr("PORT", "8080"),
		Environment: envOr("ENVIRONMENT", "local"),

		LLMAPIKey:   os.Getenv("GROQ_API_KEY"),
		LLMBaseURL:  envOr("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
		LLMModel:    envOr("LLM_MODEL", "llama-3.1-8b-instant"),
		LLMTimeout:  seconds("LLM_TIMEOUT_SEC", 25),
		LLMMaxRetry: seconds("LLM_MAX_RETRY_SEC", 45),

		SearchURL:     envOr("SEARCH_API_URL", "https://api.tavily.com/search"),
		SearchAPIKey:  os.Getenv("TAVILY_API_KEY"),
		SearchTimeout: seconds("SEARCH_TIMEOUT_SEC", 15),

		TranscriptURL:      os.Getenv("TRANSCRIPT_API_URL"),
		TranscriptLanguage: envOr("TRANSCRIPT_LANGUAGE", "en"),
		TranscriptTimeout:  seconds("TRANSCRIPT_TIMEOUT_SEC", 15),

		EnrichConcurrency: intOr("ENRICH_CONCURRENCY", 5),
		DatasetPath:       envOr("DATASET_PATH", "video_jobs.xlsx"),
		DemoLimit:         intOr("DEMO_LIMIT", 5),

		MockLLM:        boolOr("USE_MOCK_LLM"),
		MockSearch:     boolOr("USE_MOCK_SEARCH"),
		MockTranscript: boolOr("USE_MOCK_TRANSCRIPT"),
	}
}

// Validate reports settings the service cannot run without.
func (c Config) Validate() error {
	var errs []error
	if !c.MockLLM && c.LLMAPIKey == "" {
		errs = append(errs, errors.New("GROQ_API_KEY not set"))
	}
	if !c.MockTranscript && c.TranscriptURL == "" {
		errs = append(errs, errors.New("TRANSCRIPT_API_URL not set"))
	}
	if c.EnrichConcurrency < 1 {
		errs = append(errs, errors.New("ENRICH_CONCURRENCY must be at least 1"))
	}
	return errors.Join(errs...)
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func intOr(k string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k))); err == nil {
		return n
	}
	return def
}

func seconds(k string, def int) time.Duration {
	return time.Duration(intOr(k, def)) * time.Second
}

func boolOr(k string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(k)))
	return b
}
