package llmclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	genai "google.golang.org/genai"
)

// Config is injected explicitly; nothing here reads the process environment,
// which keeps tests deterministic.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

const (
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 30 * time.Second
)

// GeminiClient calls the Gemini API through the official genai client. When
// no credential is configured the client is constructed anyway and every
// Generate call fails fast with ErrMissingCredential, before any dial.
type GeminiClient struct {
	cli     *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	g := &GeminiClient{model: model, timeout: timeout}

	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return g, nil
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     key,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, err
	}
	g.cli = cli
	return g, nil
}

func (g *GeminiClient) Name() string { return "gemini:" + g.model }

// Generate sends the prompt and returns the vendor envelope as generic JSON.
// One attempt, no retry.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (Envelope, error) {
	if g.cli == nil {
		return nil, ErrMissingCredential
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, wrapServiceError(err)
	}
	if len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 ||
		strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text) == "" {
		return nil, ErrEmptyPayload
	}

	// Round-trip through JSON so extraction sees the wire shape
	// (candidates[0].content.parts[0].text) instead of SDK types.
	b, err := json.Marshal(resp)
	if err != nil {
		return nil, &ServiceError{Err: err}
	}
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, &ServiceError{Err: err}
	}
	return env, nil
}

func wrapServiceError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &ServiceError{StatusCode: apiErr.Code, Body: capBody(apiErr.Message), Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &ServiceError{StatusCode: apiErrPtr.Code, Body: capBody(apiErrPtr.Message), Err: err}
	}
	return &ServiceError{Err: err}
}
