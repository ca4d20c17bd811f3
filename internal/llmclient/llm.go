// Package llmclient wraps the external text-generation service. Clients are
// thin: one attempt per call, bounded timeout, no retries. Recovery policy
// belongs to the caller.
package llmclient

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingCredential means no API key is configured. It is a configuration
// error, not a request error: callers should skip the network path entirely.
var ErrMissingCredential = errors.New("llmclient: api key is not configured")

// ErrEmptyPayload means the service answered 2xx but the response carried no
// generated text.
var ErrEmptyPayload = errors.New("llmclient: empty payload in response")

// ServiceError covers non-2xx statuses, network failures and timeouts. Body
// is capped to keep logs bounded.
type ServiceError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("llmclient: unexpected status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("llmclient: request failed: %v", e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Envelope is the raw, vendor-shaped response body decoded into generic JSON.
// Its nesting is not contractually stable; extraction is the caller's job.
type Envelope = map[string]any

// Generator issues one generation request and returns the raw envelope.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Envelope, error)
	Name() string
}

const maxErrBody = 2048

func capBody(s string) string {
	if len(s) > maxErrBody {
		return s[:maxErrBody]
	}
	return s
}
