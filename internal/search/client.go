package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"vocab-annotator-go/internal/logger"
)

// Answer is the summarized result of one query. Found is false when the
// service returned neither an inline answer nor any result.
type Answer struct {
	Summary string `json:"summary"`
	Source  string `json:"source,omitempty"`
	Found   bool   `json:"found"`
}

// Searcher looks up a query and returns at most one summarized answer.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) (Answer, error)
}

// Error is a failed search call.
type Error struct {
	Query   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("search %q failed: %s", e.Query, e.Message)
}

type searchRequest struct {
	Query         string `json:"query"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
	SearchDepth   string `json:"search_depth"`
}

type searchResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// Client calls a Tavily-compatible search API.
type Client struct {
	URL          string
	APIKey       string
	HTTP         *http.Client
	MaxRetryTime time.Duration
}

func NewClient(url, apiKey string, timeout time.Duration) *Client {
	return &Client{
		URL:          url,
		APIKey:       apiKey,
		HTTP:         &http.Client{Timeout: timeout},
		MaxRetryTime: 10 * time.Second,
	}
}

func (c *Client) Search(ctx context.Context, query string, maxResults int) (Answer, error) {
	log := logger.New().Component("search-client").WithField("query", query)

	if c.URL == "" {
		return Answer{}, &Error{Query: query, Message: "SEARCH_API_URL not configured"}
	}
	if c.APIKey == "" {
		return Answer{}, &Error{Query: query, Message: "search API key not configured"}
	}
	if maxResults < 1 {
		maxResults = 1
	}

	payload, _ := json.Marshal(searchRequest{
		Query:         query,
		MaxResults:    maxResults,
		IncludeAnswer: true,
		SearchDepth:   "basic",
	})

	var parsed searchResponse
	var lastErr error
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.APIKey)

		resp, err := c.HTTP.Do(req)
		if err != nil {
			lastErr = err
			log.WithField("error", err.Error()).Warn("search API request failed")
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		log.Debug("search API raw response:\n" + string(body))

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("search API status %d", resp.StatusCode)
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("search API status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
			return backoff.Permanent(lastErr)
		}
		parsed = searchResponse{}
		if err := json.Unmarshal(body, &parsed); err != nil {
			lastErr = fmt.Errorf("failed to parse search API JSON: %w", err)
			return backoff.Permanent(lastErr)
		}
		lastErr = nil
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.MaxRetryTime
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return Answer{}, &Error{Query: query, Message: lastErr.Error()}
	}

	if a := strings.TrimSpace(parsed.Answer); a != "" {
		src := ""
		if len(parsed.Results) > 0 {
			src = parsed.Results[0].URL
		}
		return Answer{Summary: a, Source: src, Found: true}, nil
	}
	if len(parsed.Results) > 0 && strings.TrimSpace(parsed.Results[0].Content) != "" {
		r := parsed.Results[0]
		return Answer{Summary: strings.TrimSpace(r.Content), Source: r.URL, Found: true}, nil
	}
	return Answer{}, nil
}

// MockSearcher answers every query with a canned sentence.
type MockSearcher struct{}

func (MockSearcher) Search(_ context.Context, query string, _ int) (Answer, error) {
	return Answer{
		Summary: fmt.Sprintf("%s is a frequently referenced subject; this is a mock summary.", query),
		Source:  "mock://search",
		Found:   true,
	}, nil
}
