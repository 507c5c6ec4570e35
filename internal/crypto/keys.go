package crypto

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// ParseRSAPublicKey parses a PEM-encoded RSA public key in either PKIX
// ("PUBLIC KEY") or PKCS #1 ("RSA PUBLIC KEY") form. Keys smaller than
// RSAMinKeyBits are rejected.
func ParseRSAPublicKey(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, ErrNoPEMData
	}

	if block.Type == "RSA PUBLIC KEY" {
		pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse PKCS#1 public key: %w", err)
		}
		return checkRSAKeySize(pub)
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse PKIX public key: %w", err)
	}

	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotRSAPublicKey, parsed)
	}
	return checkRSAKeySize(pub)
}

func checkRSAKeySize(pub *rsa.PublicKey) (*rsa.PublicKey, error) {
	if bits := pub.N.BitLen(); bits < RSAMinKeyBits {
		return nil, fmt.Errorf("%w: %d bits, want at least %d", ErrRSAKeyTooSmall, bits, RSAMinKeyBits)
	}
	return pub, nil
}

// ParsePrivateKey parses a PEM-encoded private key. It accepts PKCS #1
// ("RSA PRIVATE KEY"), SEC 1 ("EC PRIVATE KEY"), and PKCS #8
// ("PRIVATE KEY") encodings and returns the key as a crypto.Signer.
// Only RSA and ECDSA keys are supported.
func ParsePrivateKey(pemBytes []byte) (crypto.Signer, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, ErrNoPEMData
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse PKCS#1 private key: %w", err)
		}
		return key, nil
	case "EC PRIVATE KEY":
		key, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse EC private key: %w", err)
		}
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse PKCS#8 private key: %w", err)
	}

	switch key := parsed.(type) {
	case *rsa.PrivateKey:
		return key, nil
	case *ecdsa.PrivateKey:
		return key, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedPrivateKey, parsed)
	}
}
