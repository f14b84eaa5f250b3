package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is where the reference backend serves the API.
	DefaultBaseURL = "http://localhost:8080/api"
	defaultTimeout = 15 * time.Second
)

// Config holds content API client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Debug   bool
}

// Client is a typed client for the content backend. Every call goes to the
// network: there is no retry, backoff or caching.
type Client struct {
	httpClient *http.Client
	baseURL    string
	debug      bool
}

// NewClient creates a new content API client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		debug:      cfg.Debug,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest sends body as JSON and decodes a JSON response into result.
// 204 and empty bodies leave result untouched.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, result any) error {
	op := method + " " + path
	url := c.baseURL + path

	var reader io.Reader
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	if c.debug {
		ev := log.Debug().Str("method", method).Str("endpoint", url)
		if payload != nil {
			ev = ev.Int("request_bytes", len(payload))
		}
		ev.Msg("[CONTENT API] Outgoing request")
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if c.debug {
		log.Debug().
			Str("endpoint", path).
			Int("status_code", resp.StatusCode).
			Int("response_bytes", len(respBody)).
			Msg("[CONTENT API] Incoming response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, respBody)}
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(respBody)) == 0 || result == nil {
		return nil
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return &ParseError{Op: op, ContentType: contentType}
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return &ParseError{Op: op, ContentType: contentType, Err: err}
	}
	return nil
}

// errorMessage extracts the message of an error body. Plain text bodies are
// used as-is; JSON bodies carrying a "message" field yield that field.
func errorMessage(status int, body []byte) string {
	msg := strings.TrimSpace(string(body))
	if strings.HasPrefix(msg, "{") {
		var envelope struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Message != "" {
			return envelope.Message
		}
	}
	if msg == "" {
		return http.StatusText(status)
	}
	return msg
}
