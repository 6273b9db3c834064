// Package relay forwards composed prompts to the hosted inference service.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// maxReplyBodySize caps how much of an upstream body is read (4MB).
const maxReplyBodySize = 4 << 20

// replyPlaceholder is returned when a 2xx upstream body carries neither a
// "response" nor a "message" field, so callers always get a reply string.
const replyPlaceholder = "I'm sorry, I couldn't come up with a response just now. Please try asking again."

// UpstreamError reports a non-2xx status from the inference service. The
// body is kept for diagnostics and is never shown to the end user.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream inference service returned status %d", e.StatusCode)
}

// Config holds the upstream endpoint and the injected credentials. The API
// key and account identifiers must come from configuration, never literals.
type Config struct {
	URL        string
	APIKey     string
	IdentityID string // account-level user_id sent upstream
	AgentID    string
	Timeout    time.Duration
}

// Client performs one blocking request-response exchange per chat turn.
// There is no retry policy: a failed call is terminal for that turn.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a relay client. A zero timeout defaults to 30s.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// wireRequest is the flat record the inference service accepts.
type wireRequest struct {
	UserID    string `json:"user_id"`
	AgentID   string `json:"agent_id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Send posts the composed prompt upstream and returns the extracted reply
// text. sessionID is conversation-scoped so the remote service can tell
// separate conversations apart.
func (c *Client) Send(ctx context.Context, sessionID, prompt string) (string, error) {
	body, err := json.Marshal(wireRequest{
		UserID:    c.cfg.IdentityID,
		AgentID:   c.cfg.AgentID,
		SessionID: sessionID,
		Message:   prompt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal relay request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call inference service: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close upstream response body", "error", closeErr)
		}
	}()

	replyBody, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBodySize))
	if err != nil {
		return "", fmt.Errorf("read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("inference service error",
			"status", resp.StatusCode,
			"session_id", sessionID,
			"body_length", len(replyBody),
		)
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(replyBody)}
	}

	return extractReply(replyBody), nil
}

// extractReply pulls the reply text out of the upstream JSON: prefer
// "response", fall back to "message", else the fixed placeholder.
func extractReply(body []byte) string {
	if v := gjson.GetBytes(body, "response"); v.Exists() && v.String() != "" {
		return v.String()
	}
	if v := gjson.GetBytes(body, "message"); v.Exists() && v.String() != "" {
		return v.String()
	}
	return replyPlaceholder
}
