// Package backend is the HTTP client for the chat-completion service
// that powers generation. It owns transport-level concerns only:
// request shape, auth, timeout, and error classification. What goes
// into the prompt and what comes out of the raw text is decided
// elsewhere.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"
)

const defaultAPIURL = "https://api.openai.com/v1/chat/completions"

// maxConcurrent bounds in-flight backend calls across the process.
const maxConcurrent = 8

// ErrEmptyCompletion is returned when the backend answers 2xx but the
// payload carries no usable text.
var ErrEmptyCompletion = errors.New("empty completion content")

// TransportError wraps a network or timeout failure. The whole call is
// safe to retry.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "backend transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx backend response, carrying the status and a
// body excerpt.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend status %d: %s", e.Status, e.Body)
}

// Transient reports whether retrying this status could plausibly
// succeed (rate limiting or a server-side failure).
func (e *StatusError) Transient() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type response struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type Client struct {
	model       string
	maxTokens   int
	temperature float64
	apiURL      string
	client      *http.Client
	sem         *semaphore.Weighted
}

func NewClient(model string, maxTokens int, temperature float64) *Client {
	return &Client{
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		apiURL:      defaultAPIURL,
		client:      &http.Client{Timeout: 30 * time.Second},
		sem:         semaphore.NewWeighted(maxConcurrent),
	}
}

// SetTestTransport points the client at a test server.
func (c *Client) SetTestTransport(url string) {
	c.apiURL = url
}

// Complete issues exactly one chat-completion call and returns the raw
// text of the first choice. No internal retry: regeneration is always
// a fresh, caller-initiated call.
func (c *Client) Complete(ctx context.Context, apiKey, system, user string) (string, error) {
	reqBody := request{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", &TransportError{Err: err}
	}
	defer c.sem.Release(1)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Status: resp.StatusCode, Body: excerpt(respBody)}
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	return apiResp.Choices[0].Message.Content, nil
}

func excerpt(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max]) + "…"
	}
	return string(body)
}
