package custovault

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/custovault/client-go/internal/crypto"
)

const (
	// SignatureHeader carries the delivery signature, one or more
	// comma-separated scheme=signature entries.
	SignatureHeader = "X-Custovault-Signature"
	// TimestampHeader carries the delivery time as unix seconds.
	TimestampHeader = "X-Custovault-Timestamp"

	// DefaultTimestampTolerance is how old or far ahead a delivery
	// timestamp may be before verification rejects it.
	DefaultTimestampTolerance = 5 * time.Minute

	// timestampLeeway absorbs clock skew between the platform and the
	// receiving host. Applied on the verifying side only.
	timestampLeeway = 30 * time.Second
)

// SignatureScheme identifies a webhook signing scheme.
type SignatureScheme string

const (
	// SchemeRSASHA512 is the v1 scheme: PKCS #1 v1.5 RSA over SHA-512,
	// signature in standard base64.
	SchemeRSASHA512 SignatureScheme = "v1"
	// SchemeMLDSA65 is the v2 scheme: ML-DSA-65, signature in
	// URL-safe base64.
	SchemeMLDSA65 SignatureScheme = "v2"
)

// WebhookVerifier verifies inbound webhook deliveries. Verification is
// purely local: the keys are supplied at construction and no network
// calls are made. A verifier is safe for concurrent use.
type WebhookVerifier struct {
	rsaKey    *rsa.PublicKey
	mldsaKey  []byte
	tolerance time.Duration
	now       func() time.Time
}

// verifierConfig holds raw key material until NewWebhookVerifier parses it.
type verifierConfig struct {
	rsaPEM      []byte
	mldsaKey    []byte
	mldsaKeyB64 string
	tolerance   time.Duration
}

// VerifierOption configures a WebhookVerifier.
type VerifierOption func(*verifierConfig)

// WithRSAPublicKey sets the PEM-encoded RSA public key for the v1 scheme.
func WithRSAPublicKey(pemBytes []byte) VerifierOption {
	return func(c *verifierConfig) {
		c.rsaPEM = pemBytes
	}
}

// WithMLDSAPublicKey sets the raw ML-DSA-65 public key for the v2 scheme.
func WithMLDSAPublicKey(key []byte) VerifierOption {
	return func(c *verifierConfig) {
		c.mldsaKey = key
	}
}

// WithMLDSAPublicKeyBase64 sets the ML-DSA-65 public key from the
// URL-safe base64 form published in the CustoVault console.
func WithMLDSAPublicKeyBase64(key string) VerifierOption {
	return func(c *verifierConfig) {
		c.mldsaKeyB64 = key
	}
}

// WithTimestampTolerance overrides the accepted delivery timestamp age.
// Default: 5 minutes
func WithTimestampTolerance(tolerance time.Duration) VerifierOption {
	return func(c *verifierConfig) {
		c.tolerance = tolerance
	}
}

// NewWebhookVerifier creates a verifier from the workspace's published
// webhook signing keys. At least one key is required; configure both to
// accept deliveries during a scheme rotation.
func NewWebhookVerifier(opts ...VerifierOption) (*WebhookVerifier, error) {
	cfg := &verifierConfig{
		tolerance: DefaultTimestampTolerance,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	v := &WebhookVerifier{
		tolerance: cfg.tolerance,
		now:       time.Now,
	}

	if cfg.rsaPEM != nil {
		key, err := crypto.ParseRSAPublicKey(cfg.rsaPEM)
		if err != nil {
			return nil, fmt.Errorf("parse RSA public key: %w", err)
		}
		v.rsaKey = key
	}

	mldsaKey := cfg.mldsaKey
	if cfg.mldsaKeyB64 != "" {
		decoded, err := crypto.FromBase64URL(cfg.mldsaKeyB64)
		if err != nil {
			return nil, fmt.Errorf("decode ML-DSA public key: %w", err)
		}
		mldsaKey = decoded
	}
	if mldsaKey != nil {
		if len(mldsaKey) != crypto.MLDSAPublicKeySize {
			return nil, fmt.Errorf("%w: ML-DSA public key is %d bytes, want %d",
				crypto.ErrInvalidPublicKeySize, len(mldsaKey), crypto.MLDSAPublicKeySize)
		}
		v.mldsaKey = mldsaKey
	}

	if v.rsaKey == nil && v.mldsaKey == nil {
		return nil, fmt.Errorf("at least one verification key is required")
	}

	return v, nil
}

// Verify checks an inbound delivery against the exact raw body bytes and
// the signature headers of the request. body must be read before any
// parsing middleware touches it; re-serialized JSON does not verify.
func (v *WebhookVerifier) Verify(body []byte, header http.Header) (*WebhookEvent, error) {
	return v.VerifyPayload(body, header.Get(SignatureHeader), header.Get(TimestampHeader))
}

// VerifyPayload is Verify for callers holding the header values directly.
//
// A missing or undecodable signature header fails with
// ErrMalformedSignatureHeader; a well-formed header where no entry
// validates against a configured key fails with ErrSignatureInvalid; a
// timestamp header outside the tolerance fails with ErrTimestampExpired.
// The timestamp check is skipped when the header is absent.
func (v *WebhookVerifier) VerifyPayload(body []byte, signatureHeader, timestampHeader string) (*WebhookEvent, error) {
	entries, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return nil, err
	}

	timestamp, err := parseTimestampHeader(timestampHeader)
	if err != nil {
		return nil, err
	}

	scheme, err := v.verifyEntries(body, entries)
	if err != nil {
		return nil, err
	}

	if !timestamp.IsZero() {
		if err := v.checkTimestamp(timestamp); err != nil {
			return nil, err
		}
	}

	return &WebhookEvent{
		Raw:       body,
		Scheme:    scheme,
		Verified:  true,
		Timestamp: timestamp,
	}, nil
}

type signatureEntry struct {
	scheme SignatureScheme
	sig    []byte
}

func parseSignatureHeader(header string) ([]signatureEntry, error) {
	if header == "" {
		return nil, &SignatureVerificationError{Malformed: true, Message: "missing " + SignatureHeader + " header"}
	}

	var entries []signatureEntry
	sawUnknown := false
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		scheme, value, ok := strings.Cut(part, "=")
		if !ok || value == "" {
			return nil, &SignatureVerificationError{Malformed: true, Message: fmt.Sprintf("entry %q is not scheme=signature", part)}
		}
		switch SignatureScheme(scheme) {
		case SchemeRSASHA512:
			sig, err := crypto.FromBase64(value)
			if err != nil {
				return nil, &SignatureVerificationError{Malformed: true, Message: "undecodable v1 signature"}
			}
			entries = append(entries, signatureEntry{scheme: SchemeRSASHA512, sig: sig})
		case SchemeMLDSA65:
			sig, err := crypto.FromBase64URL(value)
			if err != nil {
				return nil, &SignatureVerificationError{Malformed: true, Message: "undecodable v2 signature"}
			}
			entries = append(entries, signatureEntry{scheme: SchemeMLDSA65, sig: sig})
		default:
			// Unknown schemes are skipped so future rotations do not
			// break existing receivers.
			sawUnknown = true
		}
	}

	if len(entries) == 0 {
		if sawUnknown {
			return nil, &SignatureVerificationError{Message: "no supported signature scheme in header"}
		}
		return nil, &SignatureVerificationError{Malformed: true, Message: "no signature entries in header"}
	}
	return entries, nil
}

func parseTimestampHeader(header string) (time.Time, error) {
	if header == "" {
		return time.Time{}, nil
	}
	secs, err := strconv.ParseInt(header, 10, 64)
	if err != nil {
		return time.Time{}, &SignatureVerificationError{Malformed: true, Message: "unparseable " + TimestampHeader + " header"}
	}
	return time.Unix(secs, 0), nil
}

// verifyEntries tries each parsed entry against its configured key and
// returns the first scheme that validates the body.
func (v *WebhookVerifier) verifyEntries(body []byte, entries []signatureEntry) (SignatureScheme, error) {
	attempted := false
	for _, e := range entries {
		switch e.scheme {
		case SchemeRSASHA512:
			if v.rsaKey == nil {
				continue
			}
			attempted = true
			if crypto.VerifyRSASHA512(v.rsaKey, body, e.sig) == nil {
				return SchemeRSASHA512, nil
			}
		case SchemeMLDSA65:
			if v.mldsaKey == nil {
				continue
			}
			attempted = true
			if crypto.Verify(v.mldsaKey, body, e.sig) == nil {
				return SchemeMLDSA65, nil
			}
		}
	}
	if !attempted {
		return "", &SignatureVerificationError{Message: "no signature for a configured key"}
	}
	return "", &SignatureVerificationError{Message: "signature does not match body"}
}

func (v *WebhookVerifier) checkTimestamp(timestamp time.Time) error {
	age := v.now().Sub(timestamp)
	if age < 0 {
		age = -age
	}
	if age > v.tolerance+timestampLeeway {
		return fmt.Errorf("%w: timestamp %d is %v from now", ErrTimestampExpired, timestamp.Unix(), age)
	}
	return nil
}

// WebhookEvent is a webhook delivery that passed signature verification.
// Verified is set only by the verifier; an event without it must never
// be trusted.
type WebhookEvent struct {
	// Raw is the exact body bytes the signature was checked against.
	Raw []byte
	// Scheme is the signature scheme that validated the delivery.
	Scheme SignatureScheme
	// Verified reports that signature verification succeeded.
	Verified bool
	// Timestamp is the delivery time from the timestamp header; zero
	// when the header was absent.
	Timestamp time.Time
}

// Event is a decoded webhook notification.
type Event struct {
	Type      WebhookEventType `json:"type"`
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"createdAt"`
	Workspace string           `json:"workspace"`
	Data      json.RawMessage  `json:"data"`
}

// Decode parses the raw body into an Event. Verification proves only
// authenticity; interpreting the content stays an explicit caller step.
func (e *WebhookEvent) Decode() (*Event, error) {
	var event Event
	if err := json.Unmarshal(e.Raw, &event); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return &event, nil
}
