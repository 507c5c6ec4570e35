package custovault

import (
	"github.com/google/uuid"

	"github.com/custovault/client-go/internal/signing"
)

// Credential is an API credential: the key id issued by the CustoVault
// console paired with its private signing key. Credentials are immutable,
// and fmt verbs print a redacted form that never includes key material.
type Credential = signing.Credential

// NewCredential creates a credential from a key id and a PEM-encoded
// private key (PKCS #1, PKCS #8, or SEC 1). RSA and ECDSA keys are
// supported.
func NewCredential(keyID string, privateKeyPEM []byte) (*Credential, error) {
	return signing.NewCredential(keyID, privateKeyPEM)
}

// CredentialFromFile creates a credential from a key id and a PEM key file.
func CredentialFromFile(keyID, path string) (*Credential, error) {
	return signing.CredentialFromFile(keyID, path)
}

// NewIdempotencyKey returns a fresh UUIDv4 idempotency key. The platform
// replays the recorded response for a reused key instead of re-executing
// the request, so a key must never be shared across distinct submissions.
func NewIdempotencyKey() string {
	return uuid.NewString()
}
