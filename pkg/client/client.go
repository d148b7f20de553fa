// Package client talks to a deployed chatrelay endpoint. The server keeps no
// conversation state, so the client holds the history and resends it with
// every message.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/papercomputeco/chatrelay/pkg/llm"
)

// RemoteError is returned when the endpoint answers with success=false.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client sends chat messages to one endpoint and keeps the returned history.
// A Client is not safe for concurrent use.
type Client struct {
	url        string
	httpClient *http.Client
	history    []llm.Turn
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithHistory seeds the conversation.
func WithHistory(history []llm.Turn) Option {
	return func(c *Client) {
		c.history = append([]llm.Turn(nil), history...)
	}
}

// New creates a Client for the endpoint at url.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url: url,
		httpClient: &http.Client{
			// Slightly above the server's own inference timeout.
			Timeout: 90 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send posts message with the current history and returns the assistant's
// reply. On success the history is replaced by the one the server returned;
// on failure it is left unchanged.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(llm.ChatRequest{
		Message:             &message,
		ConversationHistory: c.history,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var envelope struct {
		llm.ChatResponse
		Error string `json:"error"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", &RemoteError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	if !envelope.Success {
		msg := envelope.Error
		if msg == "" {
			msg = string(respBody)
		}
		return "", &RemoteError{StatusCode: resp.StatusCode, Message: msg}
	}

	c.history = envelope.ConversationHistory
	return envelope.Response, nil
}

// History returns a copy of the conversation so far.
func (c *Client) History() []llm.Turn {
	return append([]llm.Turn(nil), c.history...)
}

// Reset forgets the conversation.
func (c *Client) Reset() {
	c.history = nil
}
