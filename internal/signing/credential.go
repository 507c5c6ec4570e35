package signing

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/go-jose/go-jose/v4"

	internalcrypto "github.com/custovault/client-go/internal/crypto"
)

// Credential is an immutable CustoVault API credential: the key id issued by
// the console plus the matching private signing key.
type Credential struct {
	keyID string
	key   crypto.Signer
	alg   jose.SignatureAlgorithm
}

// NewCredential creates a credential from a key id and a PEM-encoded private
// key (PKCS #1, PKCS #8, or SEC 1). RSA keys sign RS256; ECDSA keys sign
// ES256/ES384/ES512 according to their curve.
func NewCredential(keyID string, privateKeyPEM []byte) (*Credential, error) {
	if keyID == "" {
		return nil, ErrMissingKeyID
	}
	if len(privateKeyPEM) == 0 {
		return nil, ErrNoKeyMaterial
	}

	key, err := internalcrypto.ParsePrivateKey(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	alg, err := algorithmFor(key)
	if err != nil {
		return nil, err
	}

	return &Credential{keyID: keyID, key: key, alg: alg}, nil
}

// CredentialFromFile creates a credential from a key id and a PEM key file.
func CredentialFromFile(keyID, path string) (*Credential, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read private key file: %w", err)
	}
	return NewCredential(keyID, pemBytes)
}

func algorithmFor(key crypto.Signer) (jose.SignatureAlgorithm, error) {
	switch k := key.(type) {
	case *rsa.PrivateKey:
		return jose.RS256, nil
	case *ecdsa.PrivateKey:
		switch k.Curve {
		case elliptic.P256():
			return jose.ES256, nil
		case elliptic.P384():
			return jose.ES384, nil
		case elliptic.P521():
			return jose.ES512, nil
		default:
			return "", fmt.Errorf("%w: curve %s", ErrUnsupportedKey, k.Curve.Params().Name)
		}
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedKey, key)
	}
}

// KeyID returns the credential's key id.
func (c *Credential) KeyID() string {
	return c.keyID
}

// Algorithm returns the JWT signing algorithm selected for the key.
func (c *Credential) Algorithm() jose.SignatureAlgorithm {
	return c.alg
}

// String identifies the credential by key id only. Key material is never
// included so credentials are safe to log.
func (c *Credential) String() string {
	return fmt.Sprintf("Credential(%s)", c.keyID)
}

// GoString implements fmt.GoStringer with the same redaction as String.
func (c *Credential) GoString() string {
	return c.String()
}
