package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custovault/client-go/internal/apierrors"
	"github.com/custovault/client-go/internal/signing"
)

// Default configuration values.
const (
	DefaultBaseURL    = "https://api.custovault.io"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second
	DefaultMaxDelay   = 30 * time.Second
	DefaultUserAgent  = "custovault-client-go"
)

// NoRetries disables retrying when assigned to Config.MaxRetries.
const NoRetries = -1

// Config holds the API client configuration.
type Config struct {
	// BaseURL is the API endpoint.
	BaseURL string
	// APIKey identifies the API user. Sent as X-API-Key on every request.
	APIKey string
	// Signer mints the per-attempt bearer token.
	Signer *signing.Signer
	// HTTPClient is the underlying HTTP client. Defaults to a client
	// without a per-attempt timeout so the per-call deadline governs the
	// whole retry loop.
	HTTPClient *http.Client
	// Timeout bounds a whole Do call, backoff included, when the caller's
	// context carries no deadline. Zero selects DefaultTimeout; a negative
	// value disables the default deadline.
	Timeout time.Duration
	// MaxRetries is the number of retries after the first attempt. Zero
	// selects DefaultMaxRetries; NoRetries disables retrying.
	MaxRetries int
	// RetryDelay is the base backoff delay.
	RetryDelay time.Duration
	// MaxDelay caps the backoff delay, including Retry-After overrides.
	MaxDelay time.Duration
	// RetryOn replaces the default set of retryable status codes.
	RetryOn []int
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Observer, when set, receives a callback after every attempt.
	Observer Observer
}

// Client is the HTTP API client.
type Client struct {
	baseURL    string
	apiKey     string
	signer     *signing.Signer
	httpClient *http.Client
	retry      *RetryConfig
	timeout    time.Duration
	userAgent  string
	observer   Observer
}

// NewClient creates an API client from the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apierrors.ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Signer == nil {
		return nil, apierrors.ErrMissingCredential
	}

	retry := DefaultRetryConfig()
	switch {
	case cfg.MaxRetries < 0:
		retry.MaxRetries = 0
	case cfg.MaxRetries > 0:
		retry.MaxRetries = cfg.MaxRetries
	}
	if cfg.RetryDelay > 0 {
		retry.BaseDelay = cfg.RetryDelay
	}
	if cfg.MaxDelay > 0 {
		retry.MaxDelay = cfg.MaxDelay
	}
	if len(cfg.RetryOn) > 0 {
		codes := make(map[int]bool, len(cfg.RetryOn))
		for _, code := range cfg.RetryOn {
			codes[code] = true
		}
		retry.RetryableOn = func(statusCode int) bool { return codes[statusCode] }
	}

	timeout := cfg.Timeout
	switch {
	case timeout == 0:
		timeout = DefaultTimeout
	case timeout < 0:
		timeout = 0
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		signer:     cfg.Signer,
		httpClient: httpClient,
		retry:      retry,
		timeout:    timeout,
		userAgent:  userAgent,
		observer:   cfg.Observer,
	}, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// SetHTTPClient replaces the underlying HTTP client.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

func (c *Client) isRetryable(statusCode int) bool {
	return c.retry.RetryableOn(statusCode)
}

func (c *Client) observe(info RequestInfo) {
	if c.observer != nil {
		c.observer(info)
	}
}

// Do executes one API call as a bounded attempt loop. The body is encoded
// once; every attempt signs and transmits those exact bytes with a freshly
// minted token. On success the response body is decoded into result when
// result is non-nil.
func (c *Client) Do(ctx context.Context, req *Request, result any) (*Meta, error) {
	bodyBytes, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	uri := req.Path
	if len(req.Query) > 0 {
		uri += "?" + req.Query.Encode()
	}
	fullURL := c.baseURL + uri

	if c.timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
	}

	eligible := idempotentMethod(req.Method) || req.IdempotencyKey != ""

	for attempt := 0; ; attempt++ {
		token, err := c.signer.Sign(uri, bodyBytes, time.Now())
		if err != nil {
			return nil, fmt.Errorf("sign request: %w", err)
		}

		var reader io.Reader
		if bodyBytes != nil {
			reader = bytes.NewReader(bodyBytes)
		}
		httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, reader)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		httpReq.Header.Set("X-API-Key", c.apiKey)
		httpReq.Header.Set("Authorization", "Bearer "+token.Serialized)
		httpReq.Header.Set("Accept", "application/json")
		httpReq.Header.Set("User-Agent", c.userAgent)
		if bodyBytes != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}
		if req.IdempotencyKey != "" {
			httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
		}

		start := time.Now()
		resp, doErr := c.httpClient.Do(httpReq)

		var status int
		var header http.Header
		var respBody []byte
		if doErr == nil {
			status = resp.StatusCode
			header = resp.Header
			respBody, doErr = io.ReadAll(resp.Body)
			resp.Body.Close()
			if doErr != nil {
				doErr = fmt.Errorf("read response body: %w", doErr)
				status = 0
			}
		}
		c.observe(RequestInfo{
			Method:     req.Method,
			Path:       req.Path,
			Attempt:    attempt,
			StatusCode: status,
			Err:        doErr,
			Duration:   time.Since(start),
		})

		if doErr != nil {
			if ctx.Err() != nil {
				return nil, &apierrors.TransportError{URL: fullURL, Attempts: attempt + 1, Err: doErr}
			}
			if !eligible && !provablyPreSend(doErr) {
				return nil, &apierrors.TransportError{URL: fullURL, Attempts: attempt + 1, Err: doErr}
			}
			if attempt >= c.retry.MaxRetries {
				return nil, &apierrors.TransportError{URL: fullURL, Attempts: attempt + 1, Exhausted: true, Err: doErr}
			}
			if waitErr := c.retry.Wait(ctx, attempt); waitErr != nil {
				return nil, &apierrors.TransportError{URL: fullURL, Attempts: attempt + 1, Err: waitErr}
			}
			continue
		}

		if status >= 200 && status < 300 {
			return decodeSuccess(status, header, respBody, result)
		}

		apiErr := parseAPIError(status, header, respBody)
		if eligible && c.retry.RetryableOn(status) {
			if attempt >= c.retry.MaxRetries {
				return nil, &apierrors.TransportError{URL: fullURL, Attempts: attempt + 1, Exhausted: true, Err: apiErr}
			}
			delay := c.retry.Delay(attempt)
			if after, ok := retryAfter(header); ok {
				delay = after
				if delay > c.retry.MaxDelay {
					delay = c.retry.MaxDelay
				}
			}
			if waitErr := c.retry.WaitFor(ctx, delay); waitErr != nil {
				return nil, &apierrors.TransportError{URL: fullURL, Attempts: attempt + 1, Err: waitErr}
			}
			continue
		}
		return nil, apiErr
	}
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		return json.Marshal(body)
	}
}

func decodeSuccess(status int, header http.Header, body []byte, result any) (*Meta, error) {
	meta := &Meta{
		StatusCode: status,
		RequestID:  header.Get("X-Request-Id"),
		NextCursor: header.Get("X-Next-Cursor"),
	}

	if result != nil && status != http.StatusNoContent && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return nil, &apierrors.APIError{
				Kind:       apierrors.KindDecoding,
				StatusCode: status,
				Message:    "cannot decode response body",
				RequestID:  meta.RequestID,
				Raw:        body,
			}
		}
	}

	if meta.NextCursor == "" {
		meta.NextCursor = cursorFromBody(body)
	}
	return meta, nil
}

// cursorFromBody extracts the continuation cursor from a list response
// body. Used only when the X-Next-Cursor header is absent.
func cursorFromBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var envelope struct {
		Paging struct {
			After string `json:"after"`
		} `json:"paging"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Paging.After
}

func parseAPIError(statusCode int, header http.Header, body []byte) *apierrors.APIError {
	var envelope struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"requestId"`
	}

	message := ""
	if err := json.Unmarshal(body, &envelope); err == nil {
		message = envelope.Message
	}
	if envelope.Code == "" && message == "" {
		message = strings.TrimSpace(string(body))
	}

	requestID := envelope.RequestID
	if requestID == "" {
		requestID = header.Get("X-Request-Id")
	}

	return &apierrors.APIError{
		Kind:       apierrors.Classify(statusCode, envelope.Code),
		StatusCode: statusCode,
		Code:       envelope.Code,
		Message:    message,
		RequestID:  requestID,
		Raw:        body,
	}
}
