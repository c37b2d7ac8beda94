// Package groq implements a minimal client for the Groq OpenAI-compatible
// chat-completions API. The service only ever needs single-turn completions,
// so the surface is one method.
package groq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/vk/travelbotgo/internal/ctxlog"
)

// ErrNoAPIKey is returned when no API key is configured. Callers treat it
// as "AI disabled" and switch to their deterministic fallbacks without an
// HTTP round trip.
var ErrNoAPIKey = errors.New("groq: no API key configured")

// Model is the chat model used for every completion.
const Model = "llama3-8b-8192"

// requestTimeout bounds a single completion call. Kept below the service's
// overall upstream timeout so a slow model degrades to fallbacks instead of
// stalling the request.
const requestTimeout = 15 * time.Second

// Client talks to the Groq chat-completions endpoint.
type Client struct {
	http   *resty.Client
	apiKey string
}

// NewClient creates a Groq client. An empty apiKey produces a client whose
// Complete always returns ErrNoAPIKey.
func NewClient(baseURL, apiKey string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetAuthToken(apiKey)

	return &Client{
		http:   httpClient,
		apiKey: apiKey,
	}
}

// Close releases the underlying HTTP client resources.
func (c *Client) Close() error {
	return c.http.Close()
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a single user prompt and returns the model's reply text,
// trimmed of surrounding whitespace.
func (c *Client) Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Requesting chat completion.", "model", Model, "max_tokens", maxTokens)

	body := completionRequest{
		Model:       Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	var result completionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("groq completion request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("groq completion returned %s: %s", resp.Status(), resp.String())
	}
	if len(result.Choices) == 0 {
		return "", errors.New("groq completion returned no choices")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
