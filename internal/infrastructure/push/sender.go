// Package push delivers notification payloads to a web-push relay endpoint.
package push

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"softday/wellness-api/internal/domain/alert"
	"softday/wellness-api/internal/domain/user"
)

// Config holds the relay gateway settings.
type Config struct {
	GatewayURL string
	Timeout    time.Duration
}

// HTTPSender posts payloads to the configured push gateway, which handles
// VAPID signing and delivery to the browser push service.
type HTTPSender struct {
	httpClient *resty.Client
	cfg        Config
	log        zerolog.Logger
}

// NewHTTPSender builds a sender backed by the relay gateway.
func NewHTTPSender(cfg Config, log zerolog.Logger) *HTTPSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &HTTPSender{
		httpClient: resty.New().SetTimeout(cfg.Timeout),
		cfg:        cfg,
		log:        log.With().Str("component", "push-sender").Logger(),
	}
}

// deliveryRequest is the gateway's expected envelope.
type deliveryRequest struct {
	Endpoint string `json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
	Payload  string `json:"payload"`
}

// Send posts one payload for one subscription. HTTP 404 and 410 from the
// gateway mean the subscription no longer exists upstream.
func (s *HTTPSender) Send(ctx context.Context, sub user.PushSubscription, payload []byte) error {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(deliveryRequest{
			Endpoint: sub.Endpoint,
			P256dh:   sub.P256dh,
			Auth:     sub.Auth,
			Payload:  string(payload),
		}).
		Post(s.cfg.GatewayURL)
	if err != nil {
		return fmt.Errorf("push gateway request: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		s.log.Debug().Str("endpoint", sub.Endpoint).Msg("push delivered")
		return nil
	case http.StatusNotFound, http.StatusGone:
		return alert.ErrSubscriptionGone
	default:
		return fmt.Errorf("push gateway returned status %d: %s", resp.StatusCode(), resp.String())
	}
}

var _ alert.Sender = (*HTTPSender)(nil)
