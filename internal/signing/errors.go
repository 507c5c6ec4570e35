package signing

import "errors"

var (
	// ErrMissingKeyID is returned when a credential is created without a key id.
	ErrMissingKeyID = errors.New("key id is required")

	// ErrNoKeyMaterial is returned when a credential is created without key bytes.
	ErrNoKeyMaterial = errors.New("no key material provided")

	// ErrUnsupportedKey is returned when the private key type or curve cannot
	// be used for request signing.
	ErrUnsupportedKey = errors.New("unsupported signing key")

	// ErrPayloadTooLarge is returned when a request body exceeds the maximum
	// signable size. The request is refused before any bytes are sent.
	ErrPayloadTooLarge = errors.New("request body exceeds maximum signable size")
)
