package gemini

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/prevue-ai/interview-server/pkg/config"
	"github.com/prevue-ai/interview-server/pkg/metrics"
)

// Client wraps the Gemini SDK behind the one call shape the interview
// pipeline needs: prompt in, text out. All callers share one rate limiter so
// the evaluation workers cannot starve the interactive endpoints of quota.
type Client struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient creates a Gemini client. A missing API key is tolerated; calls
// then fail per request so the rest of the API keeps serving.
func NewClient(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) (*Client, error) {
	c := &Client{
		model:   cfg.Model,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		logger:  logger,
	}

	if cfg.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, generation endpoints will fail")
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	c.client = client
	return c, nil
}

// Configured reports whether an API key was provided
func (c *Client) Configured() bool {
	return c.client != nil
}

// Generate sends a prompt and returns the model's text. kind labels the call
// in metrics.
func (c *Client) Generate(ctx context.Context, kind, prompt string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("gemini API key not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	metrics.GeminiRequests.WithLabelValues(kind).Inc()

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		metrics.GeminiFailures.WithLabelValues(kind).Inc()
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	if result == nil {
		metrics.GeminiFailures.WithLabelValues(kind).Inc()
		return "", fmt.Errorf("gemini returned no response")
	}

	text, err := result.Text()
	if err != nil {
		metrics.GeminiFailures.WithLabelValues(kind).Inc()
		return "", fmt.Errorf("failed to extract gemini response text: %w", err)
	}
	return text, nil
}
