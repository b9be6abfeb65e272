// Package proxy implements the analysis gateway against a journal server
// running "clarity serve". The upstream credential stays on that server;
// the client only holds a scoped bearer token.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/mental-clarity/internal/config"
	"github.com/heartmarshall/mental-clarity/internal/domain"
)

const maxErrorBody = 4 << 10

// Client calls the analysis endpoints of a journal server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Analysis *string `json:"analysis"`
}

type pingResponse struct {
	Reply *string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewClient creates a Client from the analysis settings (ProxyURL, ProxyToken).
func NewClient(cfg config.AnalysisConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.ProxyURL, "/"),
		token:      cfg.ProxyToken,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "proxy"),
	}
}

// Analyze posts the journal text to /v1/analyze and returns the analysis.
func (c *Client) Analyze(ctx context.Context, content string) (string, error) {
	var out analyzeResponse
	if err := c.post(ctx, "analyze", "/v1/analyze", analyzeRequest{Text: content}, &out); err != nil {
		return "", err
	}
	if out.Analysis == nil {
		return "", &domain.RemoteAnalysisError{Op: "analyze", StatusCode: http.StatusOK, Err: errors.New("response has no analysis field")}
	}
	return *out.Analysis, nil
}

// Ping asks the server to run the connectivity probe against its upstream.
func (c *Client) Ping(ctx context.Context) (string, error) {
	var out pingResponse
	if err := c.post(ctx, "ping", "/v1/ping", nil, &out); err != nil {
		return "", err
	}
	if out.Reply == nil {
		return "", &domain.RemoteAnalysisError{Op: "ping", StatusCode: http.StatusOK, Err: errors.New("response has no reply field")}
	}
	return *out.Reply, nil
}

func (c *Client) post(ctx context.Context, op, path string, in, out any) error {
	var body io.Reader = http.NoBody
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &domain.RemoteAnalysisError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return &domain.RemoteAnalysisError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	c.log.DebugContext(ctx, "proxy request", slog.String("op", op), slog.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.RemoteAnalysisError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(raw))
		var env errorResponse
		if json.Unmarshal(raw, &env) == nil && env.Error != "" {
			msg = env.Error
		}
		return &domain.RemoteAnalysisError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(msg)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.RemoteAnalysisError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode json: %w", err)}
	}
	return nil
}
