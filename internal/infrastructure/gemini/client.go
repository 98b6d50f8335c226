package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"softday/wellness-api/internal/domain/llm"
	"softday/wellness-api/internal/infrastructure/metrics"
)

const maxAttempts = 3

// Config controls the Gemini client.
type Config struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
	// Backoff is the base retry delay; attempt n waits Backoff << n.
	Backoff time.Duration
}

// Client calls the Gemini generateContent endpoint with a bounded retry
// budget. It implements llm.Provider.
type Client struct {
	httpClient *resty.Client
	cfg        Config
	log        zerolog.Logger
}

// NewClient creates a Resty-backed Gemini client.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = time.Second
	}
	return &Client{
		httpClient: resty.New().
			SetHeader("Content-Type", "application/json").
			SetTimeout(cfg.Timeout),
		cfg: cfg,
		log: log.With().Str("component", "gemini-client").Logger(),
	}
}

// Generate posts the request and returns the completion text. It issues up
// to three attempts, retrying 429, 503 and transport timeouts with
// exponential backoff (1s, 2s by default) before attempts two and three.
// Non-retryable statuses fail immediately with *llm.UpstreamError, and a
// 200 response without the candidate text shape fails with
// llm.ErrMalformedResponse. Callers must not retry on top of this.
func (c *Client) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	start := time.Now()
	text, err := c.generate(ctx, req)
	if err != nil {
		metrics.RecordCompletion("error", time.Since(start).Seconds())
		return "", err
	}
	metrics.RecordCompletion("ok", time.Since(start).Seconds())
	return text, nil
}

func (c *Client) generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			if err := c.wait(ctx, attempt); err != nil {
				return "", err
			}
		}

		resp, err := c.httpClient.R().
			SetContext(ctx).
			SetBody(req).
			SetQueryParam("key", c.cfg.APIKey).
			Post(c.cfg.APIURL)

		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			c.log.Warn().Err(err).Int("attempt", attempt+1).Msg("completion request failed")
			lastErr = fmt.Errorf("%w: %v", llm.ErrTimeout, err)
			continue
		}

		switch status := resp.StatusCode(); {
		case status == http.StatusOK:
			return extractText(resp.Body())

		case status == http.StatusTooManyRequests:
			c.log.Warn().Int("attempt", attempt+1).Msg("completion rate limited")
			lastErr = fmt.Errorf("%w: status 429", llm.ErrRateLimited)

		case status == http.StatusServiceUnavailable:
			c.log.Warn().Int("attempt", attempt+1).Msg("completion service unavailable")
			lastErr = &llm.UpstreamError{Status: status, Body: upstreamMessage(resp.Body())}

		default:
			return "", &llm.UpstreamError{Status: status, Body: upstreamMessage(resp.Body())}
		}
	}

	return "", lastErr
}

// wait sleeps for the backoff delay of the given attempt, honouring context
// cancellation.
func (c *Client) wait(ctx context.Context, attempt int) error {
	delay := c.cfg.Backoff << (attempt - 1)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func extractText(body []byte) (string, error) {
	var parsed llm.GenerateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrMalformedResponse, err)
	}

	text, ok := parsed.Text()
	if !ok {
		return "", fmt.Errorf("%w: missing candidate text", llm.ErrMalformedResponse)
	}
	return text, nil
}

// upstreamMessage prefers the structured error message when the body carries
// the {error:{message}} shape, falling back to the raw body.
func upstreamMessage(body []byte) string {
	var envelope struct {
		Error *llm.APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return string(body)
}

// Ensure interface compliance.
var _ llm.Provider = (*Client)(nil)
