package crypto

import "errors"

var (
	// ErrInvalidSecretKeySize is returned when the secret key size is invalid.
	ErrInvalidSecretKeySize = errors.New("invalid secret key size")

	// ErrInvalidPublicKeySize is returned when the public key size is invalid.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrInvalidCiphertextSize is returned when the ciphertext size is invalid.
	ErrInvalidCiphertextSize = errors.New("invalid ciphertext size")

	// ErrSignatureVerificationFailed is returned when signature verification fails.
	ErrSignatureVerificationFailed = errors.New("signature verification failed")

	// ErrServerKeyMismatch is returned when the payload's server public key
	// does not match the pinned key from webhook registration.
	ErrServerKeyMismatch = errors.New("server public key mismatch: payload key differs from pinned key")

	// ErrDecryptionFailed is returned when decryption fails.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrInvalidPayload is returned when the encrypted payload structure is invalid.
	// This includes malformed JSON, missing required fields, or invalid encoding.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrInvalidSize is returned when a decoded field has an incorrect size.
	ErrInvalidSize = errors.New("invalid size")

	// ErrNoPEMData is returned when no PEM block is found in key material.
	ErrNoPEMData = errors.New("no PEM data found")

	// ErrNotRSAPublicKey is returned when a parsed public key is not RSA.
	ErrNotRSAPublicKey = errors.New("not an RSA public key")

	// ErrRSAKeyTooSmall is returned when an RSA key is below the minimum
	// accepted modulus size.
	ErrRSAKeyTooSmall = errors.New("RSA key too small")

	// ErrUnsupportedPrivateKey is returned when a private key is neither
	// RSA nor ECDSA.
	ErrUnsupportedPrivateKey = errors.New("unsupported private key type")
)
