package custovault

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custovault/client-go/internal/apierrors"
	"github.com/custovault/client-go/internal/signing"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingCredential is returned when no signing credential is provided.
	ErrMissingCredential = errors.New("credential is required")

	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = errors.New("client has been closed")

	// ErrUnauthorized is returned when the API key or request signature is rejected.
	ErrUnauthorized = errors.New("invalid or expired API credentials")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrValidation is returned when the server rejects a request as malformed.
	ErrValidation = errors.New("request validation failed")

	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrVaultNotFound is returned when a vault account is not found.
	ErrVaultNotFound = errors.New("vault account not found")

	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAssetNotFound is returned when an asset is not found.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrWebhookNotFound is returned when a webhook is not found.
	ErrWebhookNotFound = errors.New("webhook not found")

	// ErrServerFault is returned when the server reports an internal failure.
	ErrServerFault = errors.New("server error")

	// ErrDecoding is returned when a response body cannot be decoded.
	ErrDecoding = errors.New("response decoding failed")

	// ErrRetriesExhausted is returned when a request fails after every
	// permitted attempt.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrSignatureInvalid is returned when webhook signature verification fails.
	ErrSignatureInvalid = errors.New("signature verification failed")

	// ErrMalformedSignatureHeader is returned when a webhook signature header
	// cannot be parsed.
	ErrMalformedSignatureHeader = errors.New("malformed signature header")

	// ErrTimestampExpired is returned when a webhook timestamp falls outside
	// the configured tolerance.
	ErrTimestampExpired = errors.New("webhook timestamp outside tolerance")

	// ErrDecryptionFailed is returned when an encrypted webhook payload
	// cannot be decrypted.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidImportData is returned when imported keypair data is invalid.
	ErrInvalidImportData = errors.New("invalid import data")

	// ErrStatusNotReached is returned by WaitForTransaction when the
	// transaction reaches a terminal status other than the awaited one.
	ErrStatusNotReached = errors.New("transaction settled before reaching the awaited status")
)

// Credential and signing errors, surfaced by NewCredential, CredentialFromFile
// and request signing.
var (
	// ErrMissingKeyID is returned when a credential is created without a key id.
	ErrMissingKeyID = signing.ErrMissingKeyID

	// ErrNoKeyMaterial is returned when a credential is created without a
	// private key.
	ErrNoKeyMaterial = signing.ErrNoKeyMaterial

	// ErrUnsupportedKey is returned when the private key type cannot be used
	// for request signing.
	ErrUnsupportedKey = signing.ErrUnsupportedKey

	// ErrPayloadTooLarge is returned when a request body exceeds the maximum
	// signable size.
	ErrPayloadTooLarge = signing.ErrPayloadTooLarge
)

// CustoVaultError is implemented by all SDK errors.
type CustoVaultError interface {
	error
	CustoVaultError() // marker method
}

// APIError represents an HTTP error from the CustoVault API.
type APIError struct {
	StatusCode int
	Code       string // remote error code, e.g. "VAULT_NOT_FOUND"
	Message    string
	RequestID  string // if returned by server

	kind     apierrors.Kind
	resource apierrors.ResourceType
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

// CustoVaultError implements the CustoVaultError interface.
func (e *APIError) CustoVaultError() {}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.kind {
	case apierrors.KindUnauthorized:
		return target == ErrUnauthorized
	case apierrors.KindRateLimited:
		return target == ErrRateLimited
	case apierrors.KindValidation:
		return target == ErrValidation
	case apierrors.KindServerFault:
		return target == ErrServerFault
	case apierrors.KindDecoding:
		return target == ErrDecoding
	case apierrors.KindNotFound:
		if target == ErrNotFound {
			return true
		}
		switch e.resource {
		case apierrors.ResourceVault:
			return target == ErrVaultNotFound
		case apierrors.ResourceTransaction:
			return target == ErrTransactionNotFound
		case apierrors.ResourceAsset:
			return target == ErrAssetNotFound
		case apierrors.ResourceWebhook:
			return target == ErrWebhookNotFound
		default:
			return target == ErrVaultNotFound || target == ErrTransactionNotFound ||
				target == ErrAssetNotFound || target == ErrWebhookNotFound
		}
	}
	return false
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

// CustoVaultError implements the CustoVaultError interface.
func (e *TransportError) CustoVaultError() {}

// TimeoutError represents an operation that exceeded its deadline.
type TimeoutError struct {
	Operation string
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %v", e.Operation, e.Timeout)
}

// Unwrap allows errors.Is checks against context.DeadlineExceeded.
func (e *TimeoutError) Unwrap() error {
	return context.DeadlineExceeded
}

// CustoVaultError implements the CustoVaultError interface.
func (e *TimeoutError) CustoVaultError() {}

// SignatureVerificationError indicates an unverifiable webhook delivery.
type SignatureVerificationError struct {
	// Malformed reports that the signature header could not be parsed,
	// as opposed to a well-formed signature that did not verify.
	Malformed bool
	Message   string
}

func (e *SignatureVerificationError) Error() string {
	if e.Malformed {
		return fmt.Sprintf("malformed signature header: %s", e.Message)
	}
	return fmt.Sprintf("signature verification failed: %s", e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *SignatureVerificationError) Is(target error) bool {
	if e.Malformed {
		return target == ErrMalformedSignatureHeader
	}
	return target == ErrSignatureInvalid
}

// CustoVaultError implements the CustoVaultError interface.
func (e *SignatureVerificationError) CustoVaultError() {}

// DecryptionError represents a failure to decrypt a webhook payload.
type DecryptionError struct {
	Stage   string // "kem", "hkdf", "aes"
	Message string
	Err     error
}

func (e *DecryptionError) Error() string {
	detail := e.Message
	if e.Err != nil {
		detail = e.Err.Error()
	}
	if e.Stage != "" {
		return fmt.Sprintf("decryption failed at %s: %s", e.Stage, detail)
	}
	return fmt.Sprintf("decryption failed: %s", detail)
}

// Unwrap returns the underlying error.
func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecryptionError) Is(target error) bool {
	return target == ErrDecryptionFailed
}

// CustoVaultError implements the CustoVaultError interface.
func (e *DecryptionError) CustoVaultError() {}

// wrapError converts internal API errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var transportErr *apierrors.TransportError
	if errors.As(err, &transportErr) {
		return &TransportError{
			URL:       transportErr.URL,
			Attempts:  transportErr.Attempts,
			Exhausted: transportErr.Exhausted,
			Err:       wrapError(transportErr.Err),
		}
	}

	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.StatusCode,
			Code:       apiErr.Code,
			Message:    apiErr.Message,
			RequestID:  apiErr.RequestID,
			kind:       apiErr.Kind,
			resource:   apiErr.ResourceType,
		}
	}

	return err
}
