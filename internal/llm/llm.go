// Package llm wraps the generative text service behind a small client
// interface plus composable middleware for cross-cutting concerns.
package llm

import (
	"context"
	"errors"
)

// Client is the generative text surface the narrative analyzer consumes.
type Client interface {
	Name() string
	GenerateText(ctx context.Context, prompt string) (string, error)
	Close() error
}

// Factory builds a client for one user-supplied credential. The analyzer
// creates a fresh client per request since the credential is per-request.
type Factory func(ctx context.Context, apiKey string) (Client, error)

var (
	// ErrAuth means the service rejected the credential (400/403).
	ErrAuth = errors.New("llm: credential rejected")

	// ErrRateLimited means the service throttled the request (429).
	ErrRateLimited = errors.New("llm: rate limited")

	// ErrEmptyResponse means the service returned no usable candidate text.
	ErrEmptyResponse = errors.New("llm: empty response from model")
)
