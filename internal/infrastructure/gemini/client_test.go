package gemini_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"softday/wellness-api/internal/domain/llm"
	"softday/wellness-api/internal/infrastructure/gemini"
)

const candidateBody = `{"candidates":[{"content":{"parts":[{"text":"{\"reply\":\"hi\"}"}]}}]}`

func newTestClient(url string) *gemini.Client {
	return gemini.NewClient(gemini.Config{
		APIURL:  url,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
		Backoff: time.Millisecond,
	}, zerolog.Nop())
}

func TestGenerateSuccess(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key query param")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(candidateBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.Generate(context.Background(), llm.GenerateRequest{
		Contents: []llm.Content{llm.NewUserTurn("hello")},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != `{"reply":"hi"}` {
		t.Errorf("text = %q", text)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestGenerateRetriesRateLimit(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(candidateBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Generate(context.Background(), llm.GenerateRequest{}); err != nil {
		t.Fatalf("Generate() error = %v, want recovery on third attempt", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestGenerateExhaustsRetryBudget(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Generate(context.Background(), llm.GenerateRequest{})
	if !errors.Is(err, llm.ErrRateLimited) {
		t.Fatalf("Generate() error = %v, want ErrRateLimited", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want exactly 3 attempts", calls)
	}
}

func TestGenerateRetriesServiceUnavailable(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Generate(context.Background(), llm.GenerateRequest{})

	var upstream *llm.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("Generate() error = %v, want *UpstreamError", err)
	}
	if upstream.Status != http.StatusServiceUnavailable {
		t.Errorf("status = %d", upstream.Status)
	}
	if upstream.Body != "overloaded" {
		t.Errorf("body = %q, want parsed upstream message", upstream.Body)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestGenerateNonRetryableFailsImmediately(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"invalid request"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Generate(context.Background(), llm.GenerateRequest{})

	var upstream *llm.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("Generate() error = %v, want *UpstreamError", err)
	}
	if upstream.Status != http.StatusBadRequest {
		t.Errorf("status = %d", upstream.Status)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want no retries on 400", calls)
	}
}

func TestGenerateMalformedSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Generate(context.Background(), llm.GenerateRequest{})
	if !errors.Is(err, llm.ErrMalformedResponse) {
		t.Fatalf("Generate() error = %v, want ErrMalformedResponse", err)
	}
}

func TestGenerateContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(server.URL)
	_, err := client.Generate(ctx, llm.GenerateRequest{})
	if err == nil {
		t.Fatal("Generate() with cancelled context should fail")
	}
}
