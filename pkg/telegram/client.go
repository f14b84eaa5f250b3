package telegram

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
	// BaseURL is the Telegram Bot API base URL.
	BaseURL = "https://api.telegram.org"
)

// Config holds Telegram bot configuration.
type Config struct {
	BaseURL  string
	BotToken string
	ChatID   string
	Debug    bool
}

// Client is a minimal Bot API client that can post text messages to one chat.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	chatID     string
	debug      bool
}

// NewClient constructs a new Telegram client with sane defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = BaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.BotToken,
		chatID:     cfg.ChatID,
		debug:      cfg.Debug,
	}
}

// SendMessageRequest is the sendMessage payload.
type SendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// Response is the Bot API envelope.
type Response struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

// APIError is returned when the Bot API answers ok=false.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram error (%d): %s", e.Code, e.Description)
}

// SendMessage posts text to the configured chat.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	var resp Response
	if err := c.doRequest(ctx, "/sendMessage", SendMessageRequest{ChatID: c.chatID, Text: text}, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return &APIError{Code: resp.ErrorCode, Description: resp.Description}
	}
	return nil
}

// doRequest POSTs a JSON payload to a bot method and decodes the envelope.
func (c *Client) doRequest(ctx context.Context, method string, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	// The token is part of the URL and is never logged.
	if c.debug {
		log.Debug().
			Str("method", method).
			RawJSON("request", payload).
			Msg("[TELEGRAM] Outgoing request")
	}

	url := c.baseURL + "/bot" + c.token + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("method", method).
			Int("status_code", resp.StatusCode).
			Int("response_bytes", len(respBody)).
			Msg("[TELEGRAM] Incoming response")
	}

	// Bot API errors come back as non-2xx with the same JSON envelope.
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}
