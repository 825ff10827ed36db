// Package llm wraps the hosted Gemini API for structured extraction. The
// model receives the raw document inline plus an instruction prompt and is
// constrained to return JSON matching a caller-supplied schema.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	genai "google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model produced no usable candidate.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// DefaultModel is used when the config leaves the model unset.
const DefaultModel = "gemini-2.0-flash"

// Client is a thin wrapper around the official genai client.
type Client struct {
	cli   *genai.Client
	model string
	log   *slog.Logger
}

// NewClient creates a Gemini-backed extraction client.
func NewClient(ctx context.Context, apiKey, model string, log *slog.Logger) (*Client, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{cli: cli, model: model, log: log}, nil
}

// ExtractJSON sends the document bytes inline with the prompt and requests a
// JSON response. When schema is non-nil the response is schema-constrained.
func (c *Client) ExtractJSON(ctx context.Context, prompt, mimeType string, data []byte, schema *genai.Schema) (string, error) {
	c.log.Info("llm extraction request", "model", c.model, "mime", mimeType, "bytes", len(data))

	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	if schema != nil {
		cfg.ResponseSchema = schema
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
			{Text: prompt},
		},
	}}

	resp, err := c.cli.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}
