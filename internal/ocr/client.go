// Package ocr is the HTTP client for the screenshot-text extraction
// collaborator. A failed or empty extraction is terminal for the
// opener flow: no retry, surfaced to the caller.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIURL = "https://api.ocr.space/parse/image"

// ErrNoText is returned when the OCR service succeeds but finds no
// usable text in the image.
var ErrNoText = errors.New("ocr: no text recognized")

// StatusError is a non-2xx OCR response, carrying the status and a
// body excerpt.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ocr status %d: %s", e.Status, e.Body)
}

type request struct {
	ImageBase64 string `json:"image_base64"`
}

type response struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}

type Client struct {
	apiURL string
	client *http.Client
}

func NewClient() *Client {
	return &Client{
		apiURL: defaultAPIURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetTestTransport points the client at a test server.
func (c *Client) SetTestTransport(url string) {
	c.apiURL = url
}

// PerformOCR extracts text from a base64-encoded image.
func (c *Client) PerformOCR(ctx context.Context, imageBase64, apiKey string) (string, error) {
	body, err := json.Marshal(request{ImageBase64: imageBase64})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if !apiResp.Success || apiResp.Text == "" {
		return "", ErrNoText
	}
	return apiResp.Text, nil
}
