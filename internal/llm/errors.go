package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the model returned content that does not
// match the requested profile schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrRequestRejected indicates the provider refused the request itself,
// e.g. a bad API key or an unknown model. Sending it again cannot help.
type ErrRequestRejected struct {
	StatusCode int
	Err        error
}

func (e *ErrRequestRejected) Error() string {
	return fmt.Sprintf("LLM request rejected (HTTP %d): %v", e.StatusCode, e.Err)
}

func (e *ErrRequestRejected) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the profile was cut off at MaxTokens.
// Content holds the partial output.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrorKind is a coarse classification of a provider failure. It is stored
// with every failed request and decides whether a request is retried.
type ErrorKind string

const (
	KindNone        ErrorKind = ""
	KindCanceled    ErrorKind = "canceled"
	KindRateLimit   ErrorKind = "rate_limit"
	KindUnavailable ErrorKind = "unavailable"
	KindInvalid     ErrorKind = "invalid_response"
	KindTruncated   ErrorKind = "truncated"
	KindRejected    ErrorKind = "rejected"
	KindOther       ErrorKind = "other"
)

// KindOf classifies err. A nil error is KindNone.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var (
		rl      *ErrRateLimit
		unavail *ErrProviderUnavailable
		invalid *ErrInvalidResponse
		maxTok  *ErrMaxTokensExceeded
		reject  *ErrRequestRejected
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.As(err, &maxTok):
		return KindTruncated
	case errors.As(err, &invalid):
		return KindInvalid
	case errors.As(err, &rl):
		return KindRateLimit
	case errors.As(err, &unavail):
		return KindUnavailable
	case errors.As(err, &reject):
		return KindRejected
	}
	return KindOther
}

// Transient reports whether a request failing with this kind may succeed
// when sent again unchanged.
func (k ErrorKind) Transient() bool {
	switch k {
	case KindRateLimit, KindUnavailable, KindOther:
		return true
	}
	return false
}

// statusError maps the HTTP status of a failed provider call onto the error
// types above. header may be nil.
func statusError(status int, header http.Header, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter(header, time.Now()), Err: err}
	case status == http.StatusRequestTimeout, status >= 500:
		return &ErrProviderUnavailable{Err: err}
	case status >= 400:
		return &ErrRequestRejected{StatusCode: status, Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// retryAfter reads Retry-After in either delta-seconds or HTTP-date form.
// It returns zero when the header is absent or already in the past.
func retryAfter(header http.Header, now time.Time) time.Duration {
	v := header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(max(secs, 0)) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}
