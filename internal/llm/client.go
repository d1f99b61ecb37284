package llm

import (
	"context"
	"errors"
)

var (
	// ErrModelUnavailable covers transport failures, timeouts and API errors.
	ErrModelUnavailable = errors.New("language model unavailable")
	// ErrMalformedResponse means the model answered but not with a JSON object.
	ErrMalformedResponse = errors.New("malformed language model response")
)

// Client sends a system instruction plus a user message and returns the
// model's answer as a JSON object string.
type Client interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// ClientFunc adapts a plain function to Client.
type ClientFunc func(ctx context.Context, system, user string) (string, error)

func (f ClientFunc) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	return f(ctx, system, user)
}
