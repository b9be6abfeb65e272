package openai

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
	"github.com/heartmarshall/mental-clarity/internal/provider"
)

const defaultBaseURL = "https://api.openai.com/v1"

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 4 << 10

// Provider calls an OpenAI-compatible chat completions endpoint.
type Provider struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	system     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from the analysis settings. An empty
// BaseURL selects the public OpenAI API.
func NewProvider(cfg config.AnalysisConfig, logger *slog.Logger) *Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = provider.DefaultMaxTokens
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.ModelOrDefault(),
		maxTokens:  maxTokens,
		system:     provider.SystemPrompt(cfg.Language),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "openai"),
	}
}

// Analyze sends the journal text with the analyst instruction and returns
// the completion verbatim. Every call goes to the remote service.
func (p *Provider) Analyze(ctx context.Context, content string) (string, error) {
	return p.complete(ctx, "analyze", []chatMessage{
		{Role: "system", Content: p.system},
		{Role: "user", Content: content},
	}, p.maxTokens)
}

// Ping sends the connectivity probe prompt.
func (p *Provider) Ping(ctx context.Context) (string, error) {
	return p.complete(ctx, "ping", []chatMessage{
		{Role: "user", Content: provider.PingPrompt},
	}, provider.PingMaxTokens)
}

func (p *Provider) complete(ctx context.Context, op string, messages []chatMessage, maxTokens int) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:     p.model,
		Messages:  messages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", &domain.RemoteAnalysisError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &domain.RemoteAnalysisError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	p.log.DebugContext(ctx, "openai request",
		slog.String("op", op),
		slog.String("model", p.model),
		slog.Int("max_tokens", maxTokens),
	)

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &domain.RemoteAnalysisError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &domain.RemoteAnalysisError{Op: op, StatusCode: resp.StatusCode, Err: errorFromBody(body)}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &domain.RemoteAnalysisError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode json: %w", err)}
	}

	if len(out.Choices) == 0 || out.Choices[0].Message.Content == nil {
		return "", &domain.RemoteAnalysisError{Op: op, StatusCode: resp.StatusCode, Err: errors.New("response has no completion content")}
	}

	text := *out.Choices[0].Message.Content

	p.log.DebugContext(ctx, "openai response",
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
		slog.Int("chars", len(text)),
		slog.Duration("took", time.Since(start)),
	)

	return text, nil
}

// errorFromBody extracts the API error message, falling back to the raw body.
func errorFromBody(body []byte) error {
	var env apiError
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		return errors.New(env.Error.Message)
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = "empty response body"
	}
	return errors.New(msg)
}
