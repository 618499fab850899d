// Package haste is a minimal client for hastebin-style paste services, used
// to overflow evaluation output that is too large for a chat message.
package haste

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/florabot/evalengine/internal/helpers"
)

// DefaultBaseURL is the public hastebin endpoint.
const DefaultBaseURL = "https://hastebin.com"

const defaultTimeout = 30 * time.Second

// ErrNoKey indicates the service accepted the upload but returned no usable
// document key. In practice this means the content was too large for the
// service.
var ErrNoKey = errors.New("paste service returned no document key")

// Client uploads text documents to one paste service. A single upload is one
// best-effort attempt; there is no retry or backoff.
type Client struct {
	baseURL    string
	httpClient *http.Client

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Client for the paste service at baseURL. An empty baseURL
// selects the public hastebin endpoint.
func New(baseURL string, handler slog.Handler) *Client {
	handler, logger := helpers.SetupLogger(handler, "haste", "Client")

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logHandler: handler,
		logger:     logger,
	}
}

func (c *Client) String() string {
	return fmt.Sprintf("haste.Client{baseURL: %s}", c.baseURL)
}

// Upload posts content and returns the shareable document link.
//
// Transport-level failures (connection, non-2xx status, undecodable body)
// are returned wrapped; a decoded response without a key is ErrNoKey.
func (c *Client) Upload(ctx context.Context, content string) (string, error) {
	logger := c.logger.WithGroup("Upload")

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/documents",
		strings.NewReader(content),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.WarnContext(ctx, "paste upload failed", "error", err)
		return "", fmt.Errorf("paste service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.WarnContext(ctx, "paste service rejected upload", "status", resp.Status)
		return "", fmt.Errorf("paste service returned status %s", resp.Status)
	}

	var body struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode paste response: %w", err)
	}

	if body.Key == "" {
		logger.WarnContext(ctx, "paste response carried no key", "size", len(content))
		return "", ErrNoKey
	}

	link := c.baseURL + "/" + body.Key
	logger.DebugContext(ctx, "uploaded paste", "link", link, "size", len(content))
	return link, nil
}
