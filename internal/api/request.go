package api

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Request describes one API call before signing.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is marshaled to JSON unless it is already []byte or
	// json.RawMessage. The encoded bytes are signed and transmitted
	// unchanged on every attempt.
	Body any
	// IdempotencyKey, when set, is sent unchanged on every attempt and
	// makes a non-idempotent method safe to retry.
	IdempotencyKey string
}

// Meta carries response metadata beyond the decoded body.
type Meta struct {
	StatusCode int
	// RequestID is the server-assigned request identifier.
	RequestID string
	// NextCursor is the continuation cursor for paged listings. The
	// X-Next-Cursor header takes precedence over the body's paging block.
	NextCursor string
}

// RequestInfo describes one attempt of one request for observers.
type RequestInfo struct {
	Method string
	Path   string
	// Attempt is zero-based.
	Attempt int
	// StatusCode is zero when the attempt failed before a response arrived.
	StatusCode int
	Err        error
	Duration   time.Duration
}

// Observer receives a callback after every attempt, successful or not.
type Observer func(RequestInfo)

// idempotentMethod reports whether the HTTP method is safe to repeat
// without an idempotency key.
func idempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// provablyPreSend reports whether the request provably never left this
// host. Only a failed dial qualifies; anything after connection
// establishment may have reached the server.
func provablyPreSend(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial"
	}
	return false
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(header http.Header) (time.Duration, bool) {
	value := header.Get("Retry-After")
	if value == "" {
		return 0, false
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}
