package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sashabaranov/go-openai"
	"vocab-annotator-go/internal/logger"
)

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint
// (Groq by default) with JSON response mode forced.
type OpenAIClient struct {
	client       *openai.Client
	model        string
	maxRetryTime time.Duration
}

type OpenAIConfig struct {
	APIKey       string
	BaseURL      string
	Model        string
	Timeout      time.Duration
	MaxRetryTime time.Duration
}

func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	if cfg.MaxRetryTime <= 0 {
		cfg.MaxRetryTime = 45 * time.Second
	}
	return &OpenAIClient{
		client:       openai.NewClientWithConfig(oc),
		model:        cfg.Model,
		maxRetryTime: cfg.MaxRetryTime,
	}, nil
}

func (c *OpenAIClient) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	log := logger.New().Component("llm-client").WithField("model", c.model)

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		// zero is dropped by omitempty and would fall back to the API default of 1
		Temperature: math.SmallestNonzeroFloat32,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	var content string
	op := func() error {
		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err != nil {
			log.WithField("error", err.Error()).Warn("llm request failed")
			if !retryable(err) {
				return backoff.Permanent(fmt.Errorf("%w: %v", ErrModelUnavailable, err))
			}
			return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		}
		if len(resp.Choices) == 0 {
			return backoff.Permanent(fmt.Errorf("%w: no choices returned", ErrMalformedResponse))
		}
		raw := resp.Choices[0].Message.Content
		content = ExtractJSON(raw)
		if content == "" {
			log.Debug("llm raw:\n" + raw)
			return backoff.Permanent(fmt.Errorf("%w: no JSON object in output", ErrMalformedResponse))
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.maxRetryTime
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		if !errors.Is(err, ErrModelUnavailable) && !errors.Is(err, ErrMalformedResponse) {
			err = fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		}
		return "", err
	}
	return content, nil
}

// retryable reports whether a failed call is worth repeating: network
// errors, rate limiting and server-side failures.
func retryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
