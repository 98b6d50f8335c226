package llm

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by Provider implementations after the retry
// budget is exhausted.
var (
	// ErrRateLimited means the upstream kept answering 429 across all attempts.
	ErrRateLimited = errors.New("llm: rate limited")

	// ErrTimeout means every attempt timed out or failed to connect.
	ErrTimeout = errors.New("llm: request timed out")

	// ErrMalformedResponse means the upstream answered 200 without the
	// expected candidates/content/parts/text shape.
	ErrMalformedResponse = errors.New("llm: malformed upstream response")
)

// UpstreamError carries a non-retryable upstream failure with its HTTP
// status and response body.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm: upstream error: status %d: %s", e.Status, e.Body)
}

// IsRetryable reports whether the error would have been retried by the
// provider. Exposed for metrics labelling only; callers must not retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTimeout)
}
