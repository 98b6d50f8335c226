package push_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"softday/wellness-api/internal/domain/alert"
	"softday/wellness-api/internal/domain/user"
	"softday/wellness-api/internal/infrastructure/push"
)

var testSub = user.PushSubscription{
	Endpoint: "https://push.example/sub",
	P256dh:   "key-p256dh",
	Auth:     "key-auth",
}

func TestSendDeliversEnvelope(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sender := push.NewHTTPSender(push.Config{GatewayURL: server.URL}, zerolog.Nop())
	if err := sender.Send(context.Background(), testSub, []byte(`{"title":"hi"}`)); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if received["endpoint"] != testSub.Endpoint {
		t.Errorf("endpoint = %q", received["endpoint"])
	}
	if received["p256dh"] != testSub.P256dh || received["auth"] != testSub.Auth {
		t.Error("subscription keys should be passed through untouched")
	}
	if received["payload"] != `{"title":"hi"}` {
		t.Errorf("payload = %q", received["payload"])
	}
}

func TestSendMapsGoneSubscription(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusGone} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		sender := push.NewHTTPSender(push.Config{GatewayURL: server.URL}, zerolog.Nop())
		err := sender.Send(context.Background(), testSub, []byte("{}"))
		if !errors.Is(err, alert.ErrSubscriptionGone) {
			t.Errorf("Send() with status %d error = %v, want ErrSubscriptionGone", status, err)
		}
		server.Close()
	}
}

func TestSendFailsOnGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sender := push.NewHTTPSender(push.Config{GatewayURL: server.URL}, zerolog.Nop())
	err := sender.Send(context.Background(), testSub, []byte("{}"))
	if err == nil || errors.Is(err, alert.ErrSubscriptionGone) {
		t.Fatalf("Send() error = %v, want a plain gateway failure", err)
	}
}
