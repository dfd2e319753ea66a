package reliability

import (
	"strings"
	"time"
)

// IsRetryableHTTPStatus classifies retryable HTTP status codes.
func IsRetryableHTTPStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

// IsRateLimitHTTPStatus reports whether a status code means the upstream is
// throttling us, as opposed to failing.
func IsRateLimitHTTPStatus(code int) bool {
	return code == 429
}

// IsRateLimitMessage classifies rate-limit errors from providers that only
// surface a free-text message instead of a typed status.
func IsRateLimitMessage(msg string) bool {
	m := strings.ToLower(msg)
	for _, marker := range []string{"429", "rate limit", "rate_limit", "resource_exhausted", "resource exhausted", "too many requests"} {
		if strings.Contains(m, marker) {
			return true
		}
	}
	return false
}

// ExponentialBackoff computes a deterministic capped backoff duration.
func ExponentialBackoff(attempt int, base, cap time.Duration) time.Duration {
	if attempt <= 0 {
		return base
	}
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= cap {
			return cap
		}
	}
	return d
}
