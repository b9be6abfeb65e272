package anthropic

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/mental-clarity/internal/config"
	"github.com/heartmarshall/mental-clarity/internal/domain"
	"github.com/heartmarshall/mental-clarity/internal/provider"
)

// Provider calls the Anthropic Messages API.
type Provider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	system    string
	log       *slog.Logger
}

// NewProvider creates a Provider from the analysis settings. The SDK's
// built-in retries are disabled: a failed call surfaces immediately.
func NewProvider(cfg config.AnalysisConfig, logger *slog.Logger) *Provider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = provider.DefaultMaxTokens
	}

	return &Provider{
		client:    anthropic.NewClient(opts...),
		model:     cfg.ModelOrDefault(),
		maxTokens: int64(maxTokens),
		system:    provider.SystemPrompt(cfg.Language),
		log:       logger.With("adapter", "anthropic"),
	}
}

// Analyze sends the journal text with the analyst instruction as the system
// prompt and returns the reply verbatim.
func (p *Provider) Analyze(ctx context.Context, content string) (string, error) {
	return p.complete(ctx, "analyze", p.system, content, p.maxTokens)
}

// Ping sends the connectivity probe prompt.
func (p *Provider) Ping(ctx context.Context) (string, error) {
	return p.complete(ctx, "ping", "", provider.PingPrompt, provider.PingMaxTokens)
}

func (p *Provider) complete(ctx context.Context, op, system, user string, maxTokens int64) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	p.log.DebugContext(ctx, "anthropic request",
		slog.String("op", op),
		slog.String("model", p.model),
		slog.Int64("max_tokens", maxTokens),
	)

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &domain.RemoteAnalysisError{Op: op, StatusCode: apiErr.StatusCode, Err: err}
		}
		return "", &domain.RemoteAnalysisError{Op: op, Err: err}
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", &domain.RemoteAnalysisError{Op: op, StatusCode: http.StatusOK, Err: errors.New("response has no text content")}
	}

	p.log.DebugContext(ctx, "anthropic response",
		slog.String("op", op),
		slog.String("stop_reason", string(msg.StopReason)),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)

	return sb.String(), nil
}
