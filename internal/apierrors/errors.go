// Package apierrors provides shared error types for the CustoVault client.
//
// Every remote failure surfaces as an *APIError carrying one of a closed
// set of kinds, so callers branch on errors.Is against the sentinels below
// instead of raw status codes.
package apierrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrMissingCredential is returned when no signing credential is provided.
	ErrMissingCredential = errors.New("signing credential is required")

	// ErrUnauthorized is returned when the API key or request signature is rejected.
	ErrUnauthorized = errors.New("invalid or expired API credentials")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrValidation is returned when the server rejects the request as malformed.
	ErrValidation = errors.New("request validation failed")

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrServerFault is returned when the server reports an internal failure.
	ErrServerFault = errors.New("server fault")

	// ErrDecoding is returned when a response body cannot be decoded.
	ErrDecoding = errors.New("response decoding failed")

	// ErrVaultNotFound is returned when a vault account is not found.
	ErrVaultNotFound = errors.New("vault account not found")

	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAssetNotFound is returned when an asset is not found.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrWebhookNotFound is returned when a webhook is not found.
	ErrWebhookNotFound = errors.New("webhook not found")

	// ErrRetriesExhausted is returned when a request fails after every
	// permitted attempt.
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// Kind classifies an API error into one of a closed set of categories.
type Kind int

const (
	// KindUnknown covers statuses and codes outside the known set.
	KindUnknown Kind = iota
	// KindUnauthorized covers rejected credentials and signatures.
	KindUnauthorized
	// KindRateLimited covers throttled requests.
	KindRateLimited
	// KindValidation covers requests the server rejected as malformed.
	KindValidation
	// KindNotFound covers missing resources.
	KindNotFound
	// KindServerFault covers server-side failures.
	KindServerFault
	// KindDecoding covers responses the client could not decode.
	KindDecoding
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindRateLimited:
		return "rate_limited"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindServerFault:
		return "server_fault"
	case KindDecoding:
		return "decoding"
	default:
		return "unknown"
	}
}

// Classify maps an HTTP status and the remote error code from the response
// envelope to a Kind. The remote code wins when recognized; the status is
// the fallback.
func Classify(statusCode int, remoteCode string) Kind {
	switch remoteCode {
	case "UNAUTHORIZED", "INVALID_API_KEY", "INVALID_SIGNATURE", "TOKEN_EXPIRED":
		return KindUnauthorized
	case "RATE_LIMIT_EXCEEDED":
		return KindRateLimited
	case "VALIDATION_ERROR", "INVALID_REQUEST":
		return KindValidation
	case "INTERNAL_ERROR":
		return KindServerFault
	}
	if remoteCode != "" && strings.HasSuffix(remoteCode, "_NOT_FOUND") {
		return KindNotFound
	}

	switch {
	case statusCode == 401 || statusCode == 403:
		return KindUnauthorized
	case statusCode == 404:
		return KindNotFound
	case statusCode == 400 || statusCode == 409 || statusCode == 422:
		return KindValidation
	case statusCode == 429:
		return KindRateLimited
	case statusCode >= 500:
		return KindServerFault
	}
	return KindUnknown
}

// ResourceType indicates which type of resource an error relates to.
type ResourceType string

const (
	// ResourceUnknown indicates the resource type is not specified.
	ResourceUnknown ResourceType = ""
	// ResourceVault indicates the error relates to a vault account.
	ResourceVault ResourceType = "vault"
	// ResourceTransaction indicates the error relates to a transaction.
	ResourceTransaction ResourceType = "transaction"
	// ResourceAsset indicates the error relates to an asset.
	ResourceAsset ResourceType = "asset"
	// ResourceWebhook indicates the error relates to a webhook.
	ResourceWebhook ResourceType = "webhook"
)

// APIError represents an HTTP error from the CustoVault API.
type APIError struct {
	Kind         Kind
	StatusCode   int
	Code         string
	Message      string
	RequestID    string
	ResourceType ResourceType
	Raw          []byte
}

func (e *APIError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	if e.RequestID != "" {
		if msg != "" {
			return fmt.Sprintf("API error %d: %s (request_id: %s)", e.StatusCode, msg, e.RequestID)
		}
		return fmt.Sprintf("API error %d (request_id: %s)", e.StatusCode, e.RequestID)
	}
	if msg != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.Kind {
	case KindUnauthorized:
		return target == ErrUnauthorized
	case KindRateLimited:
		return target == ErrRateLimited
	case KindValidation:
		return target == ErrValidation
	case KindServerFault:
		return target == ErrServerFault
	case KindDecoding:
		return target == ErrDecoding
	case KindNotFound:
		if target == ErrNotFound {
			return true
		}
		// Use ResourceType for precise error matching
		switch e.ResourceType {
		case ResourceVault:
			return target == ErrVaultNotFound
		case ResourceTransaction:
			return target == ErrTransactionNotFound
		case ResourceAsset:
			return target == ErrAssetNotFound
		case ResourceWebhook:
			return target == ErrWebhookNotFound
		default:
			// Fallback: match every resource sentinel for unknown resource type
			return target == ErrVaultNotFound || target == ErrTransactionNotFound ||
				target == ErrAssetNotFound || target == ErrWebhookNotFound
		}
	}
	return false
}

// WithResourceType returns a copy of the error with the resource type set.
// If the error is not an *APIError, it is returned unchanged.
func WithResourceType(err error, rt ResourceType) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			Kind:         apiErr.Kind,
			StatusCode:   apiErr.StatusCode,
			Code:         apiErr.Code,
			Message:      apiErr.Message,
			RequestID:    apiErr.RequestID,
			ResourceType: rt,
			Raw:          apiErr.Raw,
		}
	}
	return err
}

// TransportError represents a failure of the request loop itself: a network
// fault, a context expiry, or exhaustion of the retry budget. The last
// underlying error is reachable through Unwrap.
type TransportError struct {
	URL       string
	Attempts  int
	Exhausted bool
	Err       error
}

func (e *TransportError) Error() string {
	if e.Exhausted {
		return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("transport error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *TransportError) Is(target error) bool {
	return e.Exhausted && target == ErrRetriesExhausted
}
